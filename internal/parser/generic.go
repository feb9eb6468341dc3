package parser

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jobradar/jobradar/internal/models"
)

// Generic asks the AI capability to pull structured fields out of the
// message body. It is the default arm for user-defined sources without a
// specialized parser.
type Generic struct {
	Extractor Extractor
	Log       zerolog.Logger
}

func (g *Generic) Source() string { return "generic" }

func (g *Generic) Parse(ctx context.Context, msg models.RawMessage) []models.CandidateJob {
	if g.Extractor == nil {
		return nil
	}

	jobs, err := g.Extractor.ExtractJobs(ctx, msg.Body)
	if err != nil {
		g.Log.Warn().Err(err).Str("sender", msg.Sender).Msg("generic extraction failed")
		return nil
	}
	return jobs
}
