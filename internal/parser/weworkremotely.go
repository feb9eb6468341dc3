package parser

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/source"
)

// WeWorkRemotely parses the WWR RSS payload, either fetched from the live
// feeds or forwarded in a digest email. Item titles follow the
// "Company: Job Title" convention and every listing is remote.
type WeWorkRemotely struct{}

func (w *WeWorkRemotely) Source() string { return source.ParserWeWorkRemotely }

type rssFeed struct {
	Items []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

func (w *WeWorkRemotely) Parse(_ context.Context, msg models.RawMessage) []models.CandidateJob {
	return ParseWWRFeed([]byte(msg.Body))
}

// ParseWWRFeed decodes an RSS document into candidate jobs.
func ParseWWRFeed(data []byte) []models.CandidateJob {
	var feed rssFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil
	}

	var jobs []models.CandidateJob
	for _, item := range feed.Items {
		title := cleanText(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		company := ""
		if idx := strings.Index(title, ":"); idx > 0 {
			company = cleanText(title[:idx])
			title = cleanText(title[idx+1:])
		}

		description := stripHTML(item.Description)

		job := models.CandidateJob{
			Title:       truncate(title, 200),
			Company:     truncate(company, 100),
			Location:    "Remote",
			URL:         link,
			Description: truncate(description, 2000),
			Source:      source.ParserWeWorkRemotely,
			Remote:      true,
			RawText:     truncate(description, 1000),
		}
		if job.RawText == "" {
			job.RawText = title
		}
		if ts, err := parsePubDate(item.PubDate); err == nil {
			job.PostedAt = ts
		}
		jobs = append(jobs, job)
	}
	return jobs
}

func stripHTML(fragment string) string {
	doc, err := parseDoc(fragment)
	if err != nil {
		return cleanText(fragment)
	}
	return cleanText(doc.Text())
}

func parsePubDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	layouts := []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC3339}
	var lastErr error
	for _, layout := range layouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
