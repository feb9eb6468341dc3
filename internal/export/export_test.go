package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jobradar/jobradar/internal/models"
)

func sampleJobs() []models.Job {
	return []models.Job{
		{
			DedupKey:       "abc123",
			Title:          "Senior Go Engineer",
			Company:        "Acme Corp",
			Location:       "Remote",
			URL:            "https://example.com/jobs/1",
			Source:         "linkedin",
			Remote:         true,
			PostedAt:       time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC),
			Status:         models.StatusApplied,
			CompositeScore: 76.4,
			AnalysisStatus: models.AnalysisDone,
			Analysis: &models.Analysis{
				QualificationScore: 82,
				Strengths:          []string{"Go", "distributed systems"},
				Gaps:               []string{"Kubernetes"},
				Recommendation:     "Apply with the backend resume.",
			},
		},
		{
			DedupKey:       "def456",
			Title:          "Data Engineer",
			Company:        "Globex",
			Status:         models.StatusNew,
			CompositeScore: 41.0,
			AnalysisStatus: models.AnalysisPending,
		},
	}
}

func TestWriteJobsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,score,status,title") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "76.4") || !strings.Contains(lines[1], "applied") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestWriteJobsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded []models.Job
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].DedupKey != "abc123" {
		t.Fatalf("unexpected decoded jobs: %+v", decoded)
	}
}

func TestWriteJobsMarkdownIncludesAnalysis(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"**Senior Go Engineer** (Acme Corp)",
		"Qualification: 82/100",
		"Strengths: Go; distributed systems",
		"Gaps: Kubernetes",
		"Recommendation: Apply with the backend resume.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJobsMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, nil, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No results.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestWriteJobsTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Senior Go Engineer") || !strings.Contains(out, "76.4") {
		t.Fatalf("unexpected table: %q", out)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("markdown"); err != nil || f != FormatMarkdown {
		t.Fatalf("ParseFormat(markdown) = %v, %v", f, err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
