package parser

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/source"
)

var greenhouseJobURL = regexp.MustCompile(`(boards|job-boards)\.greenhouse\.io/[^/]+/jobs/\d+`)

// Greenhouse parses ATS notification emails. Board URLs carry the company
// slug as the first path segment.
type Greenhouse struct{}

func (g *Greenhouse) Source() string { return source.ParserGreenhouse }

func (g *Greenhouse) Parse(_ context.Context, msg models.RawMessage) []models.CandidateJob {
	doc, err := parseDoc(msg.Body)
	if err != nil {
		return nil
	}
	return parseGreenhouseDoc(doc)
}

func parseGreenhouseDoc(doc *goquery.Document) []models.CandidateJob {
	var jobs []models.CandidateJob
	seen := map[string]struct{}{}

	doc.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !greenhouseJobURL.MatchString(href) {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}

		title := cleanText(link.Text())
		if len(title) < 3 {
			return
		}

		company := greenhouseCompany(href)
		var location, raw string
		cell := jobCell(link)
		if cell.Length() > 0 {
			raw = truncate(cleanText(cell.Text()), 1000)
			for _, line := range textLines(cell) {
				if line != title && looksLikeLocation(line) {
					location = truncate(line, 100)
					break
				}
			}
		}

		jobs = append(jobs, models.CandidateJob{
			Title:    truncate(title, 200),
			Company:  truncate(company, 100),
			Location: location,
			URL:      href,
			Source:   source.ParserGreenhouse,
			Remote:   isRemote(location),
			RawText:  raw,
		})
	})

	return jobs
}

// greenhouseCompany extracts the board slug, e.g.
// boards.greenhouse.io/acme/jobs/123 -> "Acme".
func greenhouseCompany(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	words := strings.Split(parts[0], "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
