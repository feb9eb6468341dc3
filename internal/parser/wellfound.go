package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/source"
)

var wellfoundJobURL = regexp.MustCompile(`(wellfound\.com|angel\.co)/(jobs|l/)`)

// Wellfound parses Wellfound (ex AngelList Talent) alert emails. Cards
// render "Title at Company" with the location on a following line.
type Wellfound struct{}

func (w *Wellfound) Source() string { return source.ParserWellfound }

func (w *Wellfound) Parse(_ context.Context, msg models.RawMessage) []models.CandidateJob {
	doc, err := parseDoc(msg.Body)
	if err != nil {
		return nil
	}
	return parseWellfoundDoc(doc)
}

func parseWellfoundDoc(doc *goquery.Document) []models.CandidateJob {
	var jobs []models.CandidateJob
	seen := map[string]struct{}{}

	doc.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !wellfoundJobURL.MatchString(href) {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}

		text := cleanText(link.Text())
		if len(text) < 3 {
			return
		}

		title, company := splitTitleAt(text)
		var location, raw string
		cell := jobCell(link)
		if cell.Length() > 0 {
			raw = truncate(cleanText(cell.Text()), 1000)
			for _, line := range textLines(cell) {
				if company == "" {
					if _, c := splitTitleAt(line); c != "" {
						company = c
						continue
					}
				}
				if looksLikeLocation(line) && line != title {
					location = truncate(line, 100)
				}
			}
		}

		jobs = append(jobs, models.CandidateJob{
			Title:    truncate(title, 200),
			Company:  truncate(company, 100),
			Location: location,
			URL:      href,
			Source:   source.ParserWellfound,
			Remote:   isRemote(location),
			RawText:  raw,
		})
	})

	return jobs
}

// splitTitleAt splits "Senior Engineer at Acme" into title and company.
func splitTitleAt(text string) (string, string) {
	idx := strings.Index(text, " at ")
	if idx <= 0 {
		return text, ""
	}
	return cleanText(text[:idx]), cleanText(text[idx+4:])
}
