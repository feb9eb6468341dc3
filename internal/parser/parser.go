// Package parser turns raw alert messages into candidate job records.
// Each registered source maps to a specialized parser; messages from
// sources without one fall back to generic AI-assisted extraction.
package parser

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/source"
)

// Parser extracts candidate jobs from one message. Implementations are
// best-effort: they return what they can and never fail the batch.
type Parser interface {
	Source() string
	Parse(ctx context.Context, msg models.RawMessage) []models.CandidateJob
}

// Extractor is the generic AI extraction capability used when no
// specialized parser claims a message.
type Extractor interface {
	ExtractJobs(ctx context.Context, body string) ([]models.CandidateJob, error)
}

// Dispatch routes messages to parsers by source match, first match wins.
type Dispatch struct {
	registry *source.Registry
	parsers  map[string]Parser
	fallback Parser
	log      zerolog.Logger
}

func NewDispatch(registry *source.Registry, extractor Extractor, log zerolog.Logger) *Dispatch {
	parsers := map[string]Parser{
		source.ParserLinkedIn:       &LinkedIn{},
		source.ParserIndeed:         &Indeed{},
		source.ParserGreenhouse:     &Greenhouse{},
		source.ParserWellfound:      &Wellfound{},
		source.ParserWeWorkRemotely: &WeWorkRemotely{},
	}
	return &Dispatch{
		registry: registry,
		parsers:  parsers,
		fallback: &Generic{Extractor: extractor, Log: log},
		log:      log,
	}
}

// Parse extracts candidates from one message. Any internal failure is
// logged and yields an empty list; it never aborts the batch.
func (d *Dispatch) Parse(ctx context.Context, msg models.RawMessage) (jobs []models.CandidateJob) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Str("sender", msg.Sender).
				Interface("panic", r).
				Msg("parser panicked, skipping message")
			jobs = nil
		}
	}()

	src, ok := d.registry.Match(msg)
	if !ok {
		d.log.Debug().Str("sender", msg.Sender).Msg("no source matched message")
		return nil
	}

	p := d.fallback
	if src.Parser != "" {
		if specialized, ok := d.parsers[src.Parser]; ok {
			p = specialized
		}
	}

	parsed := p.Parse(ctx, msg)

	jobs = make([]models.CandidateJob, 0, len(parsed))
	for _, job := range parsed {
		if !job.Valid() {
			continue
		}
		if job.Source == "" {
			job.Source = p.Source()
		}
		if job.PostedAt.IsZero() {
			job.PostedAt = msg.ReceivedAt
		}
		jobs = append(jobs, job)
	}

	d.log.Debug().
		Str("source", src.ID).
		Int("candidates", len(jobs)).
		Msg("parsed message")
	return jobs
}
