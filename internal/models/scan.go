package models

// ScanError records one isolated per-item failure during a scan.
type ScanError struct {
	Source string `json:"source,omitempty"`
	Stage  string `json:"stage"`
	Ref    string `json:"ref,omitempty"`
	Err    string `json:"error"`
}

// ScanResult summarizes a completed scan batch.
type ScanResult struct {
	RunID        string      `json:"run_id"`
	JobsFound    int         `json:"jobs_found"`
	JobsNew      int         `json:"jobs_new"`
	JobsUpdated  int         `json:"jobs_updated"`
	JobsAnalyzed int         `json:"jobs_analyzed"`
	FollowUps    int         `json:"follow_ups"`
	Errors       []ScanError `json:"errors,omitempty"`
}
