package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <item>
      <title>Acme: Go Developer</title>
      <link>https://weworkremotely.com/remote-jobs/acme-go-developer</link>
      <pubDate>Mon, 18 Aug 2025 10:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

type stubGetter struct {
	bodies map[string]string
	errs   map[string]error
}

func (s *stubGetter) Get(_ context.Context, rawURL string) ([]byte, error) {
	if err, ok := s.errs[rawURL]; ok {
		return nil, err
	}
	return []byte(s.bodies[rawURL]), nil
}

func TestFetchCombinesFeeds(t *testing.T) {
	getter := &stubGetter{
		bodies: map[string]string{
			"https://a.example/rss": feedFixture,
			"https://b.example/rss": feedFixture,
		},
	}
	f := New(getter, []string{"https://a.example/rss", "https://b.example/rss"}, zerolog.Nop())

	jobs, errs := f.Fetch(context.Background())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(jobs))
	}
	if jobs[0].Company != "Acme" || jobs[0].Title != "Go Developer" {
		t.Fatalf("unexpected candidate: %+v", jobs[0])
	}
}

func TestFetchIsolatesFailures(t *testing.T) {
	getter := &stubGetter{
		bodies: map[string]string{"https://ok.example/rss": feedFixture},
		errs:   map[string]error{"https://down.example/rss": errors.New("connection refused")},
	}
	f := New(getter, []string{"https://down.example/rss", "https://ok.example/rss"}, zerolog.Nop())

	jobs, errs := f.Fetch(context.Background())
	if len(jobs) != 1 {
		t.Fatalf("healthy feed should still load, got %d jobs", len(jobs))
	}
	if len(errs) != 1 || errs[0].Stage != "feed" {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}
