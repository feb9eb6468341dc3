// Package ai provides the model providers behind job extraction and
// detailed analysis.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobradar/jobradar/internal/config"
	"github.com/jobradar/jobradar/internal/models"
)

// Provider is a model backend. Analyze is the expensive detailed pass;
// ExtractJobs backs the generic parser for unstructured alerts.
type Provider interface {
	Name() string
	ExtractJobs(ctx context.Context, body string) ([]models.CandidateJob, error)
	Analyze(ctx context.Context, job models.Job, resumes []Resume) (*models.Analysis, error)
}

// ProviderError wraps a backend failure and marks whether retrying makes
// sense (rate limits, timeouts, 5xx).
type ProviderError struct {
	Provider  string
	Transient bool
	Err       error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsTransient reports whether the error is a retryable provider failure.
func IsTransient(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Transient
}

// New builds the provider selected in config.
func New(cfg config.AI) (Provider, error) {
	switch cfg.Provider {
	case "gemini", "":
		return NewGemini(cfg)
	case "openai":
		return NewOpenAI(cfg), nil
	}
	return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
}
