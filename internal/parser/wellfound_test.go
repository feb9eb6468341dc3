package parser

import "testing"

func TestParseWellfoundDoc(t *testing.T) {
	html := `
<table><tr><td>
  <a href="https://wellfound.com/jobs/3100-senior-engineer">Senior Engineer at Rocketry</a><br>
  Remote
</td></tr></table>`
	jobs := parseWellfoundDoc(mustDoc(t, html))
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	job := jobs[0]
	if job.Title != "Senior Engineer" {
		t.Fatalf("unexpected title: %q", job.Title)
	}
	if job.Company != "Rocketry" {
		t.Fatalf("unexpected company: %q", job.Company)
	}
	if !job.Remote {
		t.Fatalf("expected remote job")
	}
}

func TestSplitTitleAt(t *testing.T) {
	title, company := splitTitleAt("Backend Engineer at Globex")
	if title != "Backend Engineer" || company != "Globex" {
		t.Fatalf("splitTitleAt() = %q, %q", title, company)
	}

	title, company = splitTitleAt("Backend Engineer")
	if title != "Backend Engineer" || company != "" {
		t.Fatalf("splitTitleAt() = %q, %q", title, company)
	}
}
