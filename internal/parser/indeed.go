package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/source"
)

var indeedJobURL = regexp.MustCompile(`indeed\.com.*(jk=|vjk=)[a-f0-9]+`)

// Navigation links that show up in alert emails but are not job cards.
var indeedLinkNoise = []string{
	"unsubscribe", "help", "view all", "see all", "homepage",
	"messages", "notifications", "easily apply", "responsive employer",
}

// Indeed parses Indeed job alert emails. Cards stack title, company and
// location on consecutive lines inside a table cell.
type Indeed struct{}

func (i *Indeed) Source() string { return source.ParserIndeed }

func (i *Indeed) Parse(_ context.Context, msg models.RawMessage) []models.CandidateJob {
	doc, err := parseDoc(msg.Body)
	if err != nil {
		return nil
	}
	return parseIndeedDoc(doc)
}

func parseIndeedDoc(doc *goquery.Document) []models.CandidateJob {
	var jobs []models.CandidateJob
	seen := map[string]struct{}{}

	doc.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !indeedJobURL.MatchString(href) {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}

		title := cleanText(link.Text())
		if len(title) < 5 || isIndeedNoise(title) {
			return
		}
		seen[href] = struct{}{}

		var company, location, raw string
		cell := jobCell(link)
		if cell.Length() > 0 {
			lines := textLines(cell)
			raw = truncate(strings.Join(firstN(lines, 6), " "), 1000)
			company, location = indeedCompanyLocation(lines, title)
		}
		if raw == "" {
			raw = title
		}
		if company == "" {
			company = "Unknown"
		}

		jobs = append(jobs, models.CandidateJob{
			Title:    truncate(title, 200),
			Company:  truncate(company, 100),
			Location: truncate(location, 100),
			URL:      href,
			Source:   source.ParserIndeed,
			Remote:   isRemote(location),
			RawText:  raw,
		})
	})

	return jobs
}

func isIndeedNoise(text string) bool {
	lower := strings.ToLower(text)
	for _, noise := range indeedLinkNoise {
		if strings.Contains(lower, noise) {
			return true
		}
	}
	return false
}

var ratingLine = regexp.MustCompile(`^\d+\.?\d*\s*\d`)

// indeedCompanyLocation picks the company and location from the card's
// text lines: the company is the first non-rating, non-salary line after
// the title, the location the first plausible place name after that.
func indeedCompanyLocation(lines []string, title string) (string, string) {
	for i, line := range lines {
		if !strings.Contains(line, title) || i+1 >= len(lines) {
			continue
		}
		for j := i + 1; j < len(lines) && j < i+4; j++ {
			candidate := lines[j]
			if ratingLine.MatchString(candidate) || strings.Contains(candidate, "$") {
				continue
			}
			company := candidate
			for k := j + 1; k < len(lines) && k < j+3; k++ {
				if looksLikeLocation(lines[k]) {
					return company, lines[k]
				}
			}
			return company, ""
		}
		break
	}
	return "", ""
}

func looksLikeLocation(line string) bool {
	if isRemote(line) || strings.Contains(line, ",") {
		return true
	}
	for _, state := range []string{"CA", "NY", "TX", "FL", "WA"} {
		if strings.Contains(line, state) {
			return true
		}
	}
	return false
}

func firstN(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[:n]
}
