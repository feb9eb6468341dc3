// Package feed ingests RSS job feeds alongside the mailbox sources.
package feed

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/parser"
)

// Getter fetches a URL body. Satisfied by network.Client.
type Getter interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// Fetcher pulls candidate jobs from configured RSS feeds. Feed failures
// are per-URL: one dead feed never sinks the scan.
type Fetcher struct {
	client Getter
	urls   []string
	log    zerolog.Logger
}

func New(client Getter, urls []string, log zerolog.Logger) *Fetcher {
	return &Fetcher{client: client, urls: urls, log: log}
}

// Fetch downloads every feed and returns the combined candidates plus
// the per-feed errors.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.CandidateJob, []models.ScanError) {
	var jobs []models.CandidateJob
	var errs []models.ScanError

	for _, u := range f.urls {
		if ctx.Err() != nil {
			break
		}
		body, err := f.client.Get(ctx, u)
		if err != nil {
			f.log.Warn().Err(err).Str("feed", u).Msg("feed fetch failed")
			errs = append(errs, models.ScanError{Stage: "feed", Ref: u, Err: err.Error()})
			continue
		}

		parsed := parser.ParseWWRFeed(body)
		f.log.Debug().Str("feed", u).Int("candidates", len(parsed)).Msg("fetched feed")
		jobs = append(jobs, parsed...)
	}
	return jobs, errs
}
