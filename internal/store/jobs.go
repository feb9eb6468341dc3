package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/normalize"
)

// UpsertResult reports what an upsert did with an incoming job.
type UpsertResult struct {
	Created        bool
	ContentChanged bool
}

// Upsert inserts a new job or merges an incoming record into an existing
// one. Merging preserves first_seen_at, status, notes and analysis, bumps
// last_seen_at, and fills description and location only when they were
// empty. The content hash is recomputed over the merged title and
// description, so only content the store actually keeps can reset
// analysis_status to pending.
func (s *Store) Upsert(ctx context.Context, job models.Job) (UpsertResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpsertResult{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var existing models.Job
	row := tx.QueryRowContext(ctx, selectJob+" WHERE dedup_key = ?", job.DedupKey)
	err = scanJob(row, &existing)

	var result UpsertResult
	switch {
	case err == sql.ErrNoRows:
		if job.Status == "" {
			job.Status = models.StatusNew
		}
		if job.AnalysisStatus == "" {
			job.AnalysisStatus = models.AnalysisPending
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO jobs (dedup_key, title, company, location, url, description,
				source, remote, posted_at, first_seen_at, last_seen_at, status, notes,
				baseline_score, content_hash, analysis, analysis_status, composite_score, deleted)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			job.DedupKey, job.Title, job.Company, job.Location, job.URL, job.Description,
			job.Source, boolInt(job.Remote), timeDB(job.PostedAt),
			timeDB(job.FirstSeenAt), timeDB(job.LastSeenAt),
			string(job.Status), job.Notes, job.BaselineScore, job.ContentHash,
			analysisDB(job.Analysis), string(job.AnalysisStatus), job.CompositeScore,
			boolInt(job.Deleted),
		)
		if err != nil {
			return UpsertResult{}, err
		}
		result.Created = true

	case err == nil:
		merged := existing
		merged.Title = job.Title
		merged.Company = job.Company
		merged.URL = job.URL
		merged.Source = job.Source
		merged.Remote = job.Remote
		merged.LastSeenAt = job.LastSeenAt
		if merged.Description == "" {
			merged.Description = job.Description
		}
		if merged.Location == "" {
			merged.Location = job.Location
		}
		if !job.PostedAt.IsZero() {
			merged.PostedAt = job.PostedAt
		}
		if hash := normalize.ContentHash(merged.Title, merged.Description); hash != existing.ContentHash {
			merged.ContentHash = hash
			merged.AnalysisStatus = models.AnalysisPending
			result.ContentChanged = true
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE jobs SET title = ?, company = ?, location = ?, url = ?, description = ?,
				source = ?, remote = ?, posted_at = ?, last_seen_at = ?,
				content_hash = ?, analysis_status = ?
			WHERE dedup_key = ?`,
			merged.Title, merged.Company, merged.Location, merged.URL, merged.Description,
			merged.Source, boolInt(merged.Remote), timeDB(merged.PostedAt),
			timeDB(merged.LastSeenAt), merged.ContentHash, string(merged.AnalysisStatus),
			merged.DedupKey,
		)
		if err != nil {
			return UpsertResult{}, err
		}

	default:
		return UpsertResult{}, err
	}

	committed = true
	return result, tx.Commit()
}

// Get returns the job with the given dedup key.
func (s *Store) Get(ctx context.Context, dedupKey string) (models.Job, error) {
	var job models.Job
	row := s.db.QueryRowContext(ctx, selectJob+" WHERE dedup_key = ?", dedupKey)
	if err := scanJob(row, &job); err != nil {
		if err == sql.ErrNoRows {
			return models.Job{}, fmt.Errorf("job %s: %w", dedupKey, ErrNotFound)
		}
		return models.Job{}, err
	}
	return job, nil
}

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Statuses       []models.Status
	Source         string
	MinScore       float64
	AnalysisStatus models.AnalysisStatus
	IncludeDeleted bool
	Limit          int
}

// List returns jobs matching the filter, newest last seen first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Job, error) {
	var where []string
	var args []any

	if !f.IncludeDeleted {
		where = append(where, "deleted = 0")
	}
	if len(f.Statuses) > 0 {
		ph := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			ph[i] = "?"
			args = append(args, string(st))
		}
		where = append(where, "status IN ("+strings.Join(ph, ", ")+")")
	}
	if f.Source != "" {
		where = append(where, "source = ?")
		args = append(args, f.Source)
	}
	if f.MinScore > 0 {
		where = append(where, "composite_score >= ?")
		args = append(args, f.MinScore)
	}
	if f.AnalysisStatus != "" {
		where = append(where, "analysis_status = ?")
		args = append(args, string(f.AnalysisStatus))
	}

	query := selectJob
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY last_seen_at DESC, dedup_key"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var job models.Job
		if err := scanJob(rows, &job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// SetStatus updates the lifecycle state and optionally appends a note.
func (s *Store) SetStatus(ctx context.Context, dedupKey string, status models.Status) error {
	return s.updateOne(ctx, dedupKey, "UPDATE jobs SET status = ? WHERE dedup_key = ?", string(status), dedupKey)
}

// SetNotes replaces the freeform notes for a job.
func (s *Store) SetNotes(ctx context.Context, dedupKey, notes string) error {
	return s.updateOne(ctx, dedupKey, "UPDATE jobs SET notes = ? WHERE dedup_key = ?", notes, dedupKey)
}

// SetBaseline records the baseline filter score.
func (s *Store) SetBaseline(ctx context.Context, dedupKey string, score int) error {
	return s.updateOne(ctx, dedupKey, "UPDATE jobs SET baseline_score = ? WHERE dedup_key = ?", score, dedupKey)
}

// SetAnalysis stores the detailed analysis result and its outcome state.
func (s *Store) SetAnalysis(ctx context.Context, dedupKey string, analysis *models.Analysis, status models.AnalysisStatus) error {
	return s.updateOne(ctx, dedupKey,
		"UPDATE jobs SET analysis = ?, analysis_status = ? WHERE dedup_key = ?",
		analysisDB(analysis), string(status), dedupKey)
}

// ResetAnalysis refreshes the content hash and queues the job for
// re-analysis. The previous analysis stays visible until the next run.
func (s *Store) ResetAnalysis(ctx context.Context, dedupKey, contentHash string) error {
	return s.updateOne(ctx, dedupKey,
		"UPDATE jobs SET content_hash = ?, analysis_status = ? WHERE dedup_key = ?",
		contentHash, string(models.AnalysisPending), dedupKey)
}

// SetCompositeScore records the weighted composite score.
func (s *Store) SetCompositeScore(ctx context.Context, dedupKey string, score float64) error {
	return s.updateOne(ctx, dedupKey, "UPDATE jobs SET composite_score = ? WHERE dedup_key = ?", score, dedupKey)
}

// SoftDelete hides a job from listings without losing its history.
func (s *Store) SoftDelete(ctx context.Context, dedupKey string) error {
	return s.updateOne(ctx, dedupKey, "UPDATE jobs SET deleted = 1 WHERE dedup_key = ?", dedupKey)
}

func (s *Store) updateOne(ctx context.Context, dedupKey, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("job %s: %w", dedupKey, ErrNotFound)
	}
	return nil
}

const selectJob = `SELECT dedup_key, title, company, location, url, description,
	source, remote, posted_at, first_seen_at, last_seen_at, status, notes,
	baseline_score, content_hash, analysis, analysis_status, composite_score, deleted
	FROM jobs`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner, job *models.Job) error {
	var (
		remote, deleted             int
		postedAt, firstAt, lastAt   string
		status, analysisStatus      string
		notes, analysis, contentRaw sql.NullString
	)
	err := row.Scan(&job.DedupKey, &job.Title, &job.Company, &job.Location, &job.URL,
		&job.Description, &job.Source, &remote, &postedAt, &firstAt, &lastAt,
		&status, &notes, &job.BaselineScore, &contentRaw, &analysis,
		&analysisStatus, &job.CompositeScore, &deleted)
	if err != nil {
		return err
	}

	job.Remote = remote != 0
	job.Deleted = deleted != 0
	job.PostedAt = timeFromDB(postedAt)
	job.FirstSeenAt = timeFromDB(firstAt)
	job.LastSeenAt = timeFromDB(lastAt)
	job.Status = models.Status(status)
	job.AnalysisStatus = models.AnalysisStatus(analysisStatus)
	job.Notes = notes.String
	job.ContentHash = contentRaw.String
	if analysis.Valid && analysis.String != "" {
		var a models.Analysis
		if err := json.Unmarshal([]byte(analysis.String), &a); err == nil {
			job.Analysis = &a
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func timeDB(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func timeFromDB(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func analysisDB(a *models.Analysis) string {
	if a == nil {
		return ""
	}
	data, err := json.Marshal(a)
	if err != nil {
		return ""
	}
	return string(data)
}
