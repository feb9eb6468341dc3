package parser

import "testing"

const linkedInAlert = `
<table>
  <tr>
    <td>
      <a href="https://www.linkedin.com/comm/jobs/view/4001?trk=email">
        <strong>Senior Go Engineer</strong>
      </a>
      Senior Go Engineer · Acme Corp · Remote
    </td>
  </tr>
  <tr>
    <td>
      <a href="https://www.linkedin.com/comm/jobs/view/4002?trk=email">
        <strong>Platform Engineer</strong>
      </a>
      Platform Engineer · Beta Inc · Denver, CO
    </td>
  </tr>
  <tr>
    <td><a href="https://www.linkedin.com/help">Help Center</a></td>
  </tr>
</table>`

func TestParseLinkedInDoc(t *testing.T) {
	jobs := parseLinkedInDoc(mustDoc(t, linkedInAlert))
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Title != "Senior Go Engineer" {
		t.Fatalf("unexpected title: %q", jobs[0].Title)
	}
	if jobs[0].Company != "Acme Corp" {
		t.Fatalf("unexpected company: %q", jobs[0].Company)
	}
	if !jobs[0].Remote {
		t.Fatalf("expected remote from location")
	}
	if jobs[1].Location != "Denver, CO" {
		t.Fatalf("unexpected location: %q", jobs[1].Location)
	}
}

func TestParseLinkedInDocDedupesLinks(t *testing.T) {
	html := `
<div>
  <a href="https://www.linkedin.com/comm/jobs/view/5"><span>Backend Engineer</span></a>
  <a href="https://www.linkedin.com/comm/jobs/view/5"><span>Backend Engineer</span></a>
</div>`
	jobs := parseLinkedInDoc(mustDoc(t, html))
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job after dedupe, got %d", len(jobs))
	}
}

func TestParseLinkedInDocSkipsShortTitles(t *testing.T) {
	html := `<a href="https://www.linkedin.com/comm/jobs/view/6"><span>Go</span></a>`
	jobs := parseLinkedInDoc(mustDoc(t, html))
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs for short title, got %d", len(jobs))
	}
}
