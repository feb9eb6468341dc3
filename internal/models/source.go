package models

// EmailSource describes how incoming messages are matched to a parser.
// Builtin sources cannot be deleted, only disabled.
type EmailSource struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	SenderEmail     string   `json:"sender_email,omitempty"`
	SenderPattern   string   `json:"sender_pattern,omitempty"`
	SubjectKeywords []string `json:"subject_keywords,omitempty"`
	Category        string   `json:"category,omitempty"`
	Parser          string   `json:"parser,omitempty"`
	Enabled         bool     `json:"enabled"`
	Builtin         bool     `json:"builtin"`
}
