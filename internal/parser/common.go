package parser

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(htmlBody string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
}

func cleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}

func truncate(value string, max int) string {
	if max <= 0 {
		return value
	}
	value = strings.TrimSpace(value)
	if len(value) <= max {
		return value
	}
	return strings.TrimSpace(value[:max])
}

// textLines collects the trimmed text nodes under a selection, in document
// order, skipping blanks and fragments shorter than three characters.
func textLines(sel *goquery.Selection) []string {
	var lines []string
	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				line := cleanText(c.Text())
				if len(line) > 2 {
					lines = append(lines, line)
				}
				return
			}
			walk(c)
		})
	}
	walk(sel)
	return lines
}

// jobCell walks up from a link to the enclosing table cell or block that
// holds the rest of the job card.
func jobCell(link *goquery.Selection) *goquery.Selection {
	return link.Closest("td, li, div, tr")
}

func isRemote(values ...string) bool {
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), "remote") {
			return true
		}
	}
	return false
}
