// Package score computes the weighted composite score used to rank jobs.
package score

import (
	"sort"
	"time"

	"github.com/jobradar/jobradar/internal/config"
	"github.com/jobradar/jobradar/internal/models"
)

// Recency maps a posting age to [0, 100]: 100 at zero age, decaying
// linearly to 0 at the window boundary and beyond. A missing posted time
// falls back to first seen.
func Recency(job models.Job, now time.Time, windowDays int) float64 {
	ref := job.PostedAt
	if ref.IsZero() {
		ref = job.FirstSeenAt
	}
	if ref.IsZero() || windowDays <= 0 {
		return 0
	}

	age := now.Sub(ref)
	if age < 0 {
		age = 0
	}
	window := time.Duration(windowDays) * 24 * time.Hour
	if age >= window {
		return 0
	}
	return 100 * (1 - float64(age)/float64(window))
}

// Composite blends qualification and recency with the configured weights.
func Composite(job models.Job, now time.Time, cfg config.Scoring) float64 {
	qual := float64(job.QualificationScore())
	rec := Recency(job, now, cfg.RecencyWindowDays)
	return cfg.QualificationWeight*qual + cfg.RecencyWeight*rec
}

// Sort orders jobs by composite score descending, breaking ties with the
// newer posting first and finally the dedup key for stability.
func Sort(jobs []models.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].CompositeScore != jobs[j].CompositeScore {
			return jobs[i].CompositeScore > jobs[j].CompositeScore
		}
		if !jobs[i].PostedAt.Equal(jobs[j].PostedAt) {
			return jobs[i].PostedAt.After(jobs[j].PostedAt)
		}
		return jobs[i].DedupKey < jobs[j].DedupKey
	})
}
