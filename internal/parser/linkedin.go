package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/source"
)

var linkedInJobURL = regexp.MustCompile(`linkedin\.com/(comm/)?jobs/view`)

// LinkedIn parses LinkedIn job alert emails. Alert cards link to
// /comm/jobs/view and pack "Title · Company · Location" into one cell.
type LinkedIn struct{}

func (l *LinkedIn) Source() string { return source.ParserLinkedIn }

func (l *LinkedIn) Parse(_ context.Context, msg models.RawMessage) []models.CandidateJob {
	doc, err := parseDoc(msg.Body)
	if err != nil {
		return nil
	}
	return parseLinkedInDoc(doc)
}

func parseLinkedInDoc(doc *goquery.Document) []models.CandidateJob {
	var jobs []models.CandidateJob
	seen := map[string]struct{}{}

	doc.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !linkedInJobURL.MatchString(href) {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}

		title := cleanText(link.Find("h2, h3, strong, span").First().Text())
		if title == "" {
			title = cleanText(link.Text())
		}
		if len(title) < 3 {
			return
		}

		var company, location, raw string
		cell := jobCell(link)
		if cell.Length() > 0 {
			raw = cleanText(cell.Text())
			parts := strings.Split(raw, "·")
			if len(parts) > 1 {
				company = truncate(cleanText(parts[1]), 100)
			}
			if len(parts) > 2 {
				location = truncate(cleanText(parts[2]), 100)
			}
		}
		if raw == "" {
			raw = title
		}

		jobs = append(jobs, models.CandidateJob{
			Title:    truncate(title, 200),
			Company:  company,
			Location: location,
			URL:      href,
			Source:   source.ParserLinkedIn,
			Remote:   isRemote(location),
			RawText:  truncate(raw, 1000),
		})
	})

	return jobs
}
