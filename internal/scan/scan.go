// Package scan orchestrates the ingestion pipeline: fetch, parse,
// normalize, filter, analyze and rescore.
package scan

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jobradar/jobradar/internal/analyze"
	"github.com/jobradar/jobradar/internal/baseline"
	"github.com/jobradar/jobradar/internal/config"
	"github.com/jobradar/jobradar/internal/mail"
	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/normalize"
	"github.com/jobradar/jobradar/internal/score"
	"github.com/jobradar/jobradar/internal/status"
	"github.com/jobradar/jobradar/internal/store"
)

var ErrScanInProgress = errors.New("a scan is already running")

// Parser turns one message into candidate jobs.
type Parser interface {
	Parse(ctx context.Context, msg models.RawMessage) []models.CandidateJob
}

// Feeds supplies candidates from RSS feeds.
type Feeds interface {
	Fetch(ctx context.Context) ([]models.CandidateJob, []models.ScanError)
}

// Analyzer runs the detailed pass over a batch of jobs.
type Analyzer interface {
	Run(ctx context.Context, jobs []models.Job) analyze.Result
}

// Store is the persistence surface the pipeline needs.
type Store interface {
	Upsert(ctx context.Context, job models.Job) (store.UpsertResult, error)
	Get(ctx context.Context, dedupKey string) (models.Job, error)
	List(ctx context.Context, f store.Filter) ([]models.Job, error)
	SetStatus(ctx context.Context, dedupKey string, st models.Status) error
	SetBaseline(ctx context.Context, dedupKey string, scoreVal int) error
	SetCompositeScore(ctx context.Context, dedupKey string, scoreVal float64) error
}

// Session runs scans one at a time.
type Session struct {
	mailbox  mail.Mailbox
	parser   Parser
	feeds    Feeds
	store    Store
	filter   *baseline.Filter
	analyzer Analyzer
	cfg      config.Config
	log      zerolog.Logger
	now      func() time.Time

	running atomic.Bool
}

func NewSession(mailbox mail.Mailbox, parser Parser, feeds Feeds, st Store, filter *baseline.Filter, analyzer Analyzer, cfg config.Config, log zerolog.Logger) *Session {
	return &Session{
		mailbox:  mailbox,
		parser:   parser,
		feeds:    feeds,
		store:    st,
		filter:   filter,
		analyzer: analyzer,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Run executes one full scan. Only one scan runs at a time; concurrent
// callers get ErrScanInProgress. Cancellation stops between stages and
// keeps everything already persisted.
func (s *Session) Run(ctx context.Context, since time.Time) (models.ScanResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return models.ScanResult{}, ErrScanInProgress
	}
	defer s.running.Store(false)

	result := models.ScanResult{RunID: uuid.NewString()}
	log := s.log.With().Str("run", result.RunID).Logger()
	log.Info().Time("since", since).Msg("scan started")

	messages, err := s.mailbox.Fetch(ctx, since)
	if err != nil {
		return result, err
	}

	candidates := s.parseAll(ctx, messages)
	if s.feeds != nil {
		feedJobs, feedErrs := s.feeds.Fetch(ctx)
		candidates = append(candidates, feedJobs...)
		result.Errors = append(result.Errors, feedErrs...)
	}
	result.JobsFound = len(candidates)

	if err := ctx.Err(); err != nil {
		return result, err
	}

	toAnalyze := s.ingest(ctx, candidates, &result)

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if s.analyzer != nil && len(toAnalyze) > 0 {
		ar := s.analyzer.Run(ctx, toAnalyze)
		result.JobsAnalyzed = ar.Analyzed
		result.Errors = append(result.Errors, ar.Errors...)
	}

	s.rescore(ctx, &result)
	s.followUps(ctx, messages, &result)

	log.Info().
		Int("found", result.JobsFound).
		Int("new", result.JobsNew).
		Int("updated", result.JobsUpdated).
		Int("analyzed", result.JobsAnalyzed).
		Int("errors", len(result.Errors)).
		Msg("scan finished")
	return result, ctx.Err()
}

// parseAll fans messages out to a bounded number of parser goroutines.
func (s *Session) parseAll(ctx context.Context, messages []models.RawMessage) []models.CandidateJob {
	workers := s.cfg.ParseConcurrency
	if workers <= 0 {
		workers = 4
	}

	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		candidates []models.CandidateJob
	)
	sem := make(chan struct{}, workers)

	for _, msg := range messages {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(msg models.RawMessage) {
			defer wg.Done()
			defer func() { <-sem }()

			parsed := s.parser.Parse(ctx, msg)
			if len(parsed) == 0 {
				return
			}
			mu.Lock()
			candidates = append(candidates, parsed...)
			mu.Unlock()
		}(msg)
	}
	wg.Wait()
	return candidates
}

// ingest normalizes and upserts candidates, scores the new or changed
// ones, and returns the jobs that earned the detailed analysis.
func (s *Session) ingest(ctx context.Context, candidates []models.CandidateJob, result *models.ScanResult) []models.Job {
	now := s.now()
	var toAnalyze []models.Job
	seen := map[string]struct{}{}

	for _, cand := range candidates {
		if ctx.Err() != nil {
			break
		}

		key := normalize.DedupKey(cand.URL, cand.Title, cand.Company)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		job := models.Job{
			DedupKey:    key,
			Title:       normalize.Field(cand.Title),
			Company:     normalize.Field(cand.Company),
			Location:    normalize.Field(cand.Location),
			URL:         normalize.CanonicalURL(cand.URL),
			Description: cand.Description,
			Source:      cand.Source,
			Remote:      cand.Remote,
			PostedAt:    cand.PostedAt,
			FirstSeenAt: now,
			LastSeenAt:  now,
			ContentHash: normalize.ContentHash(cand.Title, cand.Description),
		}

		up, err := s.store.Upsert(ctx, job)
		if err != nil {
			result.Errors = append(result.Errors, models.ScanError{
				Source: cand.Source, Stage: "ingest", Ref: key, Err: err.Error(),
			})
			continue
		}
		if up.Created {
			result.JobsNew++
		} else {
			result.JobsUpdated++
		}
		if !up.Created && !up.ContentChanged {
			continue
		}

		stored, err := s.store.Get(ctx, key)
		if err != nil {
			result.Errors = append(result.Errors, models.ScanError{
				Source: cand.Source, Stage: "ingest", Ref: key, Err: err.Error(),
			})
			continue
		}

		baselineScore := s.filter.Score(stored)
		if err := s.store.SetBaseline(ctx, key, baselineScore); err != nil {
			result.Errors = append(result.Errors, models.ScanError{
				Source: cand.Source, Stage: "baseline", Ref: key, Err: err.Error(),
			})
			continue
		}
		stored.BaselineScore = baselineScore

		if baselineScore == 0 {
			// Hit an exclude keyword; pass without spending analysis.
			if stored.Status == models.StatusNew {
				if err := s.store.SetStatus(ctx, key, models.StatusPassed); err != nil {
					result.Errors = append(result.Errors, models.ScanError{
						Source: cand.Source, Stage: "baseline", Ref: key, Err: err.Error(),
					})
				}
			}
			continue
		}
		if baselineScore >= s.cfg.MinBaselineScore && stored.AnalysisStatus == models.AnalysisPending {
			toAnalyze = append(toAnalyze, stored)
		}
	}
	return toAnalyze
}

// rescore recomputes composite scores across all live jobs so recency
// decay stays current.
func (s *Session) rescore(ctx context.Context, result *models.ScanResult) {
	jobs, err := s.store.List(ctx, store.Filter{})
	if err != nil {
		result.Errors = append(result.Errors, models.ScanError{Stage: "score", Err: err.Error()})
		return
	}

	now := s.now()
	for _, job := range jobs {
		composite := score.Composite(job, now, s.cfg.Scoring)
		if err := s.store.SetCompositeScore(ctx, job.DedupKey, composite); err != nil {
			result.Errors = append(result.Errors, models.ScanError{
				Stage: "score", Ref: job.DedupKey, Err: err.Error(),
			})
		}
	}
}

// followUps advances job statuses from interview, offer and rejection
// emails found in the batch.
func (s *Session) followUps(ctx context.Context, messages []models.RawMessage, result *models.ScanResult) {
	tracked, err := s.store.List(ctx, store.Filter{Statuses: []models.Status{
		models.StatusApplied, models.StatusInterviewing, models.StatusInterested,
	}})
	if err != nil {
		result.Errors = append(result.Errors, models.ScanError{Stage: "followup", Err: err.Error()})
		return
	}
	if len(tracked) == 0 {
		return
	}

	for _, msg := range messages {
		match, ok := status.Detect(tracked, msg, s.cfg.FollowUpThreshold)
		if !ok {
			continue
		}
		if err := s.store.SetStatus(ctx, match.Job.DedupKey, match.Signal.Status); err != nil {
			result.Errors = append(result.Errors, models.ScanError{
				Stage: "followup", Ref: match.Job.DedupKey, Err: err.Error(),
			})
			continue
		}
		result.FollowUps++
		s.log.Info().
			Str("job", match.Job.DedupKey).
			Str("status", string(match.Signal.Status)).
			Int("confidence", match.Confidence).
			Msg("follow-up detected")

		for i := range tracked {
			if tracked[i].DedupKey == match.Job.DedupKey {
				tracked[i].Status = match.Signal.Status
			}
		}
	}
}
