package parser

import "testing"

func TestParseGreenhouseDoc(t *testing.T) {
	html := `
<table><tr><td>
  <a href="https://boards.greenhouse.io/acme-labs/jobs/7012345">Staff Software Engineer</a><br>
  New York, NY
</td></tr></table>`
	jobs := parseGreenhouseDoc(mustDoc(t, html))
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	job := jobs[0]
	if job.Title != "Staff Software Engineer" {
		t.Fatalf("unexpected title: %q", job.Title)
	}
	if job.Company != "Acme Labs" {
		t.Fatalf("unexpected company: %q", job.Company)
	}
	if job.Location != "New York, NY" {
		t.Fatalf("unexpected location: %q", job.Location)
	}
}

func TestParseGreenhouseDocIgnoresOtherLinks(t *testing.T) {
	html := `<a href="https://www.greenhouse.io/blog">Read our blog</a>`
	jobs := parseGreenhouseDoc(mustDoc(t, html))
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(jobs))
	}
}

func TestGreenhouseCompany(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", "Acme"},
		{"https://job-boards.greenhouse.io/initech-systems/jobs/9", "Initech Systems"},
		{"https://boards.greenhouse.io/", ""},
	}
	for _, tt := range tests {
		if got := greenhouseCompany(tt.href); got != tt.want {
			t.Errorf("greenhouseCompany(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
