// Package baseline implements the cheap pre-filter that decides which
// jobs are worth the expensive detailed analysis.
package baseline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jobradar/jobradar/internal/config"
	"github.com/jobradar/jobradar/internal/models"
)

const baseScore = 50

var yearsRequired = regexp.MustCompile(`(\d{1,2})\s*\+?\s*(?:years?|yrs?)`)

// Filter scores jobs without calling a model.
type Filter struct {
	exclude     []string
	locations   map[string]int
	remoteBonus int
	experience  config.Experience
}

func New(cfg config.Config) *Filter {
	exclude := make([]string, 0, len(cfg.ExcludeKeywords))
	for _, kw := range cfg.ExcludeKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			exclude = append(exclude, kw)
		}
	}
	locations := make(map[string]int, len(cfg.LocationBonuses))
	for loc, bonus := range cfg.LocationBonuses {
		locations[strings.ToLower(strings.TrimSpace(loc))] = bonus
	}
	return &Filter{
		exclude:     exclude,
		locations:   locations,
		remoteBonus: cfg.RemoteBonus,
		experience:  cfg.Experience,
	}
}

// Score returns the baseline score in [0, 100]. A zero means the title
// hit an exclude keyword and the job should be passed without analysis.
// Keywords match the title only; a keyword buried in the prose of a
// description is not grounds for rejection.
func (f *Filter) Score(job models.Job) int {
	title := strings.ToLower(job.Title)
	for _, kw := range f.exclude {
		if strings.Contains(title, kw) {
			return 0
		}
	}

	score := baseScore

	loc := strings.ToLower(job.Location)
	for name, bonus := range f.locations {
		if strings.Contains(loc, name) {
			score += bonus
			break
		}
	}
	if job.Remote || strings.Contains(loc, "remote") {
		score += f.remoteBonus
	}

	if years, ok := requiredYears(job.Description); ok {
		lo := f.experience.MinYears - f.experience.Tolerance
		hi := f.experience.MaxYears + f.experience.Tolerance
		if years < lo || years > hi {
			score -= f.experience.Penalty
		}
	}

	// Zero is reserved for exclude hits; penalties floor at 1.
	if score < 1 {
		return 1
	}
	if score > 100 {
		return 100
	}
	return score
}

// requiredYears pulls the highest years-of-experience figure mentioned in
// the description.
func requiredYears(description string) (int, bool) {
	matches := yearsRequired.FindAllStringSubmatch(strings.ToLower(description), -1)
	if len(matches) == 0 {
		return 0, false
	}
	best := 0
	for _, m := range matches {
		if n, err := strconv.Atoi(m[1]); err == nil && n > best {
			best = n
		}
	}
	return best, true
}
