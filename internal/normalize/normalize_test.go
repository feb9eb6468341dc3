package normalize

import "testing"

func TestCanonicalURLStripsTracking(t *testing.T) {
	got := CanonicalURL("https://x.com/job?id=5&utm_source=abc")
	want := CanonicalURL("https://x.com/job?id=5")
	if got != want {
		t.Fatalf("tracking params should not change canonical form: %q vs %q", got, want)
	}
}

func TestCanonicalURL(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"https://Example.COM/jobs/view/123/", "https://example.com/jobs/view/123"},
		{"https://example.com/job?b=2&a=1", "https://example.com/job?a=1&b=2"},
		{"https://example.com/job?id=9&trk=email&ref=alerts", "https://example.com/job?id=9"},
		{"https://example.com/job?utm_medium=email&utm_campaign=x&jk=abc", "https://example.com/job?jk=abc"},
		{"https://example.com/job#frag", "https://example.com/job"},
		{"  https://example.com/a  ", "https://example.com/a"},
	}
	for _, tc := range cases {
		got := CanonicalURL(tc.raw)
		if got != tc.want {
			t.Fatalf("CanonicalURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestCanonicalURLUnparseable(t *testing.T) {
	if got := CanonicalURL("not a url"); got != "not a url" {
		t.Fatalf("expected passthrough for unparseable input, got %q", got)
	}
	if got := CanonicalURL(""); got != "" {
		t.Fatalf("expected empty canonical for empty input, got %q", got)
	}
}

func TestField(t *testing.T) {
	got := Field("  Senior   Software\tEngineer  ")
	if got != "Senior Software Engineer" {
		t.Fatalf("Field() = %q", got)
	}
}

func TestDedupKeyPrefersURL(t *testing.T) {
	withURL := DedupKey("https://example.com/job?id=1&utm_source=x", "Engineer", "Acme")
	withOther := DedupKey("https://example.com/job?id=1", "Different Title", "Other Co")
	if withURL != withOther {
		t.Fatalf("same canonical URL must yield the same key")
	}

	noURL := DedupKey("", " Senior  Engineer ", "ACME Corp")
	noURLAgain := DedupKey("", "senior engineer", "acme corp")
	if noURL != noURLAgain {
		t.Fatalf("title+company key must be normalization-stable")
	}
	if noURL == withURL {
		t.Fatalf("url key and title key should differ")
	}
}

func TestDedupKeyLength(t *testing.T) {
	key := DedupKey("https://example.com/a", "", "")
	if len(key) != 16 {
		t.Fatalf("expected 16-char key, got %d", len(key))
	}
}

func TestContentHashChangesWithDescription(t *testing.T) {
	a := ContentHash("Engineer", "build things")
	b := ContentHash("Engineer", "build other things")
	if a == b {
		t.Fatalf("different descriptions must hash differently")
	}
	if a != ContentHash(" Engineer ", "Build  Things") {
		t.Fatalf("content hash should ignore case and spacing")
	}
}
