// Package export renders job listings in table, CSV, TSV, JSON and
// Markdown formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/muesli/termenv"

	"github.com/jobradar/jobradar/internal/models"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "tsv":
		return FormatTSV, nil
	case "table", "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func WriteJobs(w io.Writer, jobs []models.Job, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, jobs)
	case FormatCSV:
		return writeCSV(w, jobs, ',')
	case FormatTSV:
		return writeCSV(w, jobs, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, jobs)
	default:
		return writeTable(w, jobs, opts)
	}
}

func writeJSON(w io.Writer, jobs []models.Job) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jobs)
}

func writeCSV(w io.Writer, jobs []models.Job, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, job := range jobs {
		if err := writer.Write(csvRow(job)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, jobs []models.Job, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, job := range jobs {
		fmt.Fprintln(tw, strings.Join(tableRow(job, output, opts), "\t"))
	}
	return tw.Flush()
}

// writeMarkdown produces the long-form report including the analysis
// breakdown for each job.
func writeMarkdown(w io.Writer, jobs []models.Job) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, job := range jobs {
		urlLine := "  URL: -"
		if u := safe(job.URL); u != "" {
			urlLine = fmt.Sprintf("  URL: [Open listing](<%s>)", u)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(job.Title), safe(job.Company)),
			fmt.Sprintf("  Score: %.1f  Status: %s", job.CompositeScore, job.Status),
			fmt.Sprintf("  Location: %s", safe(job.Location)),
			fmt.Sprintf("  Source: %s", safe(job.Source)),
			urlLine,
		}
		if job.Remote {
			lines = append(lines, "  Remote: yes")
		}
		if !job.PostedAt.IsZero() {
			lines = append(lines, fmt.Sprintf("  Posted: %s", job.PostedAt.Format(time.RFC3339)))
		}
		if a := job.Analysis; a != nil && job.AnalysisStatus == models.AnalysisDone {
			lines = append(lines, fmt.Sprintf("  Qualification: %d/100", a.QualificationScore))
			if len(a.Strengths) > 0 {
				lines = append(lines, fmt.Sprintf("  Strengths: %s", strings.Join(a.Strengths, "; ")))
			}
			if len(a.Gaps) > 0 {
				lines = append(lines, fmt.Sprintf("  Gaps: %s", strings.Join(a.Gaps, "; ")))
			}
			if a.ResumeToUse != "" {
				lines = append(lines, fmt.Sprintf("  Resume: %s", safe(a.ResumeToUse)))
			}
			if a.Recommendation != "" {
				lines = append(lines, fmt.Sprintf("  Recommendation: %s", safe(a.Recommendation)))
			}
		}
		if job.Notes != "" {
			lines = append(lines, fmt.Sprintf("  Notes: %s", safe(job.Notes)))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"id",
		"score",
		"status",
		"title",
		"company",
		"location",
		"source",
		"url",
		"remote",
		"posted_at",
		"first_seen_at",
		"analysis_status",
	}
}

func csvRow(job models.Job) []string {
	posted := ""
	if !job.PostedAt.IsZero() {
		posted = job.PostedAt.Format(time.RFC3339)
	}
	firstSeen := ""
	if !job.FirstSeenAt.IsZero() {
		firstSeen = job.FirstSeenAt.Format(time.RFC3339)
	}
	return []string{
		job.DedupKey,
		strconv.FormatFloat(job.CompositeScore, 'f', 1, 64),
		string(job.Status),
		job.Title,
		job.Company,
		job.Location,
		job.Source,
		job.URL,
		boolString(job.Remote),
		posted,
		firstSeen,
		string(job.AnalysisStatus),
	}
}

func boolString(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func tableHeader() []string {
	return []string{
		"id",
		"score",
		"status",
		"title",
		"company",
		"url",
	}
}

func tableRow(job models.Job, output *termenv.Output, opts WriteOptions) []string {
	const linkColor = "#87CEEB"

	u := safe(job.URL)
	displayURL := "-"
	if u != "" {
		displayURL = u
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(u)
		}
		if opts.ColorEnabled {
			displayURL = output.String(displayURL).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			displayURL = hyperlink(u, displayURL)
		}
	}

	scoreText := strconv.FormatFloat(job.CompositeScore, 'f', 1, 64)
	if opts.ColorEnabled {
		scoreText = output.String(scoreText).Foreground(output.Color(scoreColor(job.CompositeScore))).String()
	}

	return []string{
		job.DedupKey,
		scoreText,
		string(job.Status),
		safe(job.Title),
		safe(job.Company),
		displayURL,
	}
}

func scoreColor(score float64) string {
	switch {
	case score >= 70:
		return "2"
	case score >= 40:
		return "3"
	default:
		return "1"
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
