// Package analyze runs the expensive detailed AI pass over jobs that
// cleared the baseline filter.
package analyze

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobradar/jobradar/internal/ai"
	"github.com/jobradar/jobradar/internal/models"
)

// Store is the persistence surface the analyzer needs.
type Store interface {
	SetAnalysis(ctx context.Context, dedupKey string, analysis *models.Analysis, status models.AnalysisStatus) error
}

// Options tune concurrency and retry behavior.
type Options struct {
	Concurrency  int
	MaxAttempts  int
	InitialDelay time.Duration
}

// Analyzer fans jobs out to a bounded pool of provider calls. Failures
// are isolated per job: one bad posting never aborts the batch.
type Analyzer struct {
	provider ai.Provider
	store    Store
	resumes  []ai.Resume
	opts     Options
	log      zerolog.Logger
}

func New(provider ai.Provider, store Store, resumes []ai.Resume, opts Options, log zerolog.Logger) *Analyzer {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 3
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 2 * time.Second
	}
	return &Analyzer{provider: provider, store: store, resumes: resumes, opts: opts, log: log}
}

// Result summarizes one batch.
type Result struct {
	Analyzed int
	Failed   int
	Errors   []models.ScanError
}

// Run analyzes every job in the slice. Jobs whose analysis is already
// current are expected to be filtered out by the caller.
func (a *Analyzer) Run(ctx context.Context, jobs []models.Job) Result {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result Result
	)
	sem := make(chan struct{}, a.opts.Concurrency)

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(job models.Job) {
			defer wg.Done()
			defer func() { <-sem }()

			analysis, err := a.analyzeOne(ctx, job)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, models.ScanError{
					Source: job.Source,
					Stage:  "analyze",
					Ref:    job.DedupKey,
					Err:    err.Error(),
				})
				if serr := a.store.SetAnalysis(ctx, job.DedupKey, nil, models.AnalysisFailed); serr != nil {
					a.log.Error().Err(serr).Str("job", job.DedupKey).Msg("failed to record analysis failure")
				}
				return
			}
			if serr := a.store.SetAnalysis(ctx, job.DedupKey, analysis, models.AnalysisDone); serr != nil {
				result.Failed++
				result.Errors = append(result.Errors, models.ScanError{
					Source: job.Source,
					Stage:  "analyze",
					Ref:    job.DedupKey,
					Err:    serr.Error(),
				})
				return
			}
			result.Analyzed++
		}(job)
	}

	wg.Wait()
	return result
}

// analyzeOne retries transient provider failures with exponential backoff.
func (a *Analyzer) analyzeOne(ctx context.Context, job models.Job) (*models.Analysis, error) {
	delay := a.opts.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= a.opts.MaxAttempts; attempt++ {
		analysis, err := a.provider.Analyze(ctx, job, a.resumes)
		if err == nil {
			return analysis, nil
		}
		lastErr = err

		if !ai.IsTransient(err) || attempt == a.opts.MaxAttempts {
			break
		}
		a.log.Warn().Err(err).
			Str("job", job.DedupKey).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("analysis failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, lastErr
}
