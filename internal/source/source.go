// Package source holds the registry of email sources and the rules that
// match incoming messages to a parser.
package source

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jobradar/jobradar/internal/models"
)

var ErrInvalidSource = errors.New("invalid source")

// Parser names referenced by EmailSource.Parser. The empty string means
// generic AI-assisted extraction.
const (
	ParserLinkedIn       = "linkedin"
	ParserIndeed         = "indeed"
	ParserGreenhouse     = "greenhouse"
	ParserWellfound      = "wellfound"
	ParserWeWorkRemotely = "weworkremotely"
)

// Builtins returns the sources shipped with the tool. They cannot be
// deleted, only disabled.
func Builtins() []models.EmailSource {
	return []models.EmailSource{
		{
			ID:          "linkedin-jobs",
			Name:        "LinkedIn Job Alerts",
			SenderEmail: "jobs-noreply@linkedin.com",
			Category:    "job_alert",
			Parser:      ParserLinkedIn,
			Enabled:     true,
			Builtin:     true,
		},
		{
			ID:          "linkedin-jobalerts",
			Name:        "LinkedIn Job Alerts (alt)",
			SenderEmail: "jobalerts-noreply@linkedin.com",
			Category:    "job_alert",
			Parser:      ParserLinkedIn,
			Enabled:     true,
			Builtin:     true,
		},
		{
			ID:              "indeed",
			Name:            "Indeed Alerts",
			SenderPattern:   `@indeed\.com$`,
			SubjectKeywords: []string{"job"},
			Category:        "job_alert",
			Parser:          ParserIndeed,
			Enabled:         true,
			Builtin:         true,
		},
		{
			ID:            "greenhouse",
			Name:          "Greenhouse ATS",
			SenderPattern: `@greenhouse\.io$`,
			Category:      "job_alert",
			Parser:        ParserGreenhouse,
			Enabled:       true,
			Builtin:       true,
		},
		{
			ID:            "wellfound",
			Name:          "Wellfound",
			SenderPattern: `@(wellfound\.com|angel\.co)$`,
			Category:      "job_alert",
			Parser:        ParserWellfound,
			Enabled:       true,
			Builtin:       true,
		},
		{
			ID:            "weworkremotely",
			Name:          "WeWorkRemotely",
			SenderPattern: `@weworkremotely\.com$`,
			Category:      "job_alert",
			Parser:        ParserWeWorkRemotely,
			Enabled:       true,
			Builtin:       true,
		},
	}
}

// Validate rejects malformed source definitions before they reach the
// pipeline.
func Validate(src models.EmailSource) error {
	if strings.TrimSpace(src.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidSource)
	}
	if strings.TrimSpace(src.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSource)
	}
	if strings.TrimSpace(src.SenderEmail) == "" && strings.TrimSpace(src.SenderPattern) == "" {
		return fmt.Errorf("%w: sender email or pattern is required", ErrInvalidSource)
	}
	if src.SenderPattern != "" {
		if _, err := regexp.Compile(src.SenderPattern); err != nil {
			return fmt.Errorf("%w: sender pattern: %v", ErrInvalidSource, err)
		}
	}
	return nil
}

// Matches reports whether a message belongs to the source: the sender must
// match the address or pattern, and when subject keywords are configured at
// least one must appear in the subject.
func Matches(src models.EmailSource, msg models.RawMessage) bool {
	sender := strings.ToLower(strings.TrimSpace(msg.Sender))
	if sender == "" {
		return false
	}

	matched := false
	if src.SenderEmail != "" && strings.Contains(sender, strings.ToLower(src.SenderEmail)) {
		matched = true
	}
	if !matched && src.SenderPattern != "" {
		re, err := regexp.Compile("(?i)" + src.SenderPattern)
		if err == nil && re.MatchString(sender) {
			matched = true
		}
	}
	if !matched {
		return false
	}

	if len(src.SubjectKeywords) > 0 {
		subject := strings.ToLower(msg.Subject)
		for _, kw := range src.SubjectKeywords {
			if strings.Contains(subject, strings.ToLower(kw)) {
				return true
			}
		}
		return false
	}
	return true
}

// Registry merges builtin and user-defined sources, builtins first, and
// answers match queries in that order (first match wins).
type Registry struct {
	sources []models.EmailSource
}

// NewRegistry builds a registry from user sources layered over builtins.
// A user source sharing a builtin ID overrides only its Enabled flag.
func NewRegistry(user []models.EmailSource) (*Registry, error) {
	builtins := Builtins()
	byID := make(map[string]int, len(builtins))
	for i, src := range builtins {
		byID[src.ID] = i
	}

	sources := builtins
	for _, src := range user {
		if idx, ok := byID[src.ID]; ok {
			sources[idx].Enabled = src.Enabled
			continue
		}
		if err := Validate(src); err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return &Registry{sources: sources}, nil
}

// All returns every registered source, builtins first.
func (r *Registry) All() []models.EmailSource {
	out := make([]models.EmailSource, len(r.sources))
	copy(out, r.sources)
	return out
}

// Enabled returns the enabled sources in registration order.
func (r *Registry) Enabled() []models.EmailSource {
	var out []models.EmailSource
	for _, src := range r.sources {
		if src.Enabled {
			out = append(out, src)
		}
	}
	return out
}

// Match returns the first enabled source that claims the message.
func (r *Registry) Match(msg models.RawMessage) (models.EmailSource, bool) {
	for _, src := range r.sources {
		if !src.Enabled {
			continue
		}
		if Matches(src, msg) {
			return src, true
		}
	}
	return models.EmailSource{}, false
}
