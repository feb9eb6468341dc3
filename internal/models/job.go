package models

import (
	"fmt"
	"time"
)

// Status is the application lifecycle state of a job.
type Status string

const (
	StatusNew          Status = "new"
	StatusInterested   Status = "interested"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
	StatusPassed       Status = "passed"
)

// ParseStatus converts a raw string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNew, StatusInterested, StatusApplied, StatusInterviewing,
		StatusOffer, StatusRejected, StatusPassed:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Terminal reports whether no further automatic transitions leave the state.
func (s Status) Terminal() bool {
	return s == StatusOffer || s == StatusRejected || s == StatusPassed
}

// AnalysisStatus tracks the detailed analyzer outcome for a job.
type AnalysisStatus string

const (
	AnalysisPending AnalysisStatus = "pending"
	AnalysisDone    AnalysisStatus = "done"
	AnalysisFailed  AnalysisStatus = "failed"
)

// Analysis is the structured result of the detailed AI analysis.
type Analysis struct {
	QualificationScore int      `json:"qualification_score"`
	Strengths          []string `json:"strengths,omitempty"`
	Gaps               []string `json:"gaps,omitempty"`
	ResumeToUse        string   `json:"resume_to_use,omitempty"`
	Recommendation     string   `json:"recommendation,omitempty"`
}

// Job is the normalized, deduplicated posting tracked across scans.
type Job struct {
	DedupKey       string         `json:"dedup_key"`
	Title          string         `json:"title"`
	Company        string         `json:"company"`
	Location       string         `json:"location"`
	URL            string         `json:"url"`
	Description    string         `json:"description,omitempty"`
	Source         string         `json:"source"`
	Remote         bool           `json:"remote,omitempty"`
	PostedAt       time.Time      `json:"posted_at,omitempty"`
	FirstSeenAt    time.Time      `json:"first_seen_at"`
	LastSeenAt     time.Time      `json:"last_seen_at"`
	Status         Status         `json:"status"`
	Notes          string         `json:"notes,omitempty"`
	BaselineScore  int            `json:"baseline_score"`
	ContentHash    string         `json:"content_hash,omitempty"`
	Analysis       *Analysis      `json:"analysis,omitempty"`
	AnalysisStatus AnalysisStatus `json:"analysis_status"`
	CompositeScore float64        `json:"composite_score,omitempty"`
	Deleted        bool           `json:"deleted,omitempty"`
}

// QualificationScore returns the analysis score, falling back to the
// baseline score when no detailed analysis exists yet.
func (j Job) QualificationScore() int {
	if j.Analysis != nil && j.AnalysisStatus == AnalysisDone {
		return j.Analysis.QualificationScore
	}
	return j.BaselineScore
}

// CandidateJob is a raw extraction produced by a parser, before
// normalization and dedup.
type CandidateJob struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source"`
	Remote      bool      `json:"remote,omitempty"`
	PostedAt    time.Time `json:"posted_at,omitempty"`
	RawText     string    `json:"raw_text,omitempty"`
}

// Valid reports whether the candidate carries enough identity to dedup.
// Entries missing both a URL and a title are discarded.
func (c CandidateJob) Valid() bool {
	return c.Title != "" || c.URL != ""
}
