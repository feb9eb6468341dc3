package status

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jobradar/jobradar/internal/models"
)

// Signal is a lifecycle event inferred from an email.
type Signal struct {
	Status  models.Status
	Keyword string
}

var signalKeywords = []struct {
	status   models.Status
	keywords []string
}{
	{models.StatusRejected, []string{
		"unfortunately", "not moving forward", "other candidates",
		"decided not to proceed", "position has been filled", "we regret",
	}},
	{models.StatusOffer, []string{
		"offer letter", "pleased to offer", "extend an offer", "compensation package",
	}},
	{models.StatusInterviewing, []string{
		"schedule an interview", "interview invitation", "phone screen",
		"next round", "technical interview", "meet the team",
	}},
}

// DetectSignal classifies a message as a rejection, offer or interview
// email. Rejection wins when multiple signal phrases appear.
func DetectSignal(msg models.RawMessage) (Signal, bool) {
	text := strings.ToLower(msg.Subject + " " + msg.Body)
	for _, group := range signalKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return Signal{Status: group.status, Keyword: kw}, true
			}
		}
	}
	return Signal{}, false
}

// Match pairs a follow-up signal with the tracked job it refers to.
type Match struct {
	Job        models.Job
	Signal     Signal
	Confidence int
}

// Detect scans tracked jobs for the one a follow-up message refers to.
// Company presence carries most of the weight, title token overlap the
// rest; matches below threshold are dropped. Terminal jobs are skipped
// since their state can no longer advance.
func Detect(jobs []models.Job, msg models.RawMessage, threshold int) (Match, bool) {
	signal, ok := DetectSignal(msg)
	if !ok {
		return Match{}, false
	}

	text := strings.ToLower(msg.Subject + " " + msg.Body)
	best := Match{Signal: signal}
	for _, job := range jobs {
		if job.Status.Terminal() || !CanTransition(job.Status, signal.Status) {
			continue
		}
		confidence := matchConfidence(job, msg.Sender, text)
		if confidence > best.Confidence {
			best.Job = job
			best.Confidence = confidence
		}
	}

	if best.Confidence < threshold {
		return Match{}, false
	}
	return best, true
}

func matchConfidence(job models.Job, sender, text string) int {
	confidence := 0

	company := strings.ToLower(strings.TrimSpace(job.Company))
	if company != "" && company != "unknown" {
		slug := strings.ReplaceAll(company, " ", "")
		if strings.Contains(text, company) || fuzzy.Match(slug, strings.ToLower(sender)) {
			confidence += 60
		}
	}

	title := strings.ToLower(job.Title)
	var total, hit int
	for _, token := range strings.Fields(title) {
		if len(token) < 4 {
			continue
		}
		total++
		if strings.Contains(text, token) {
			hit++
		}
	}
	if total > 0 {
		confidence += 40 * hit / total
	}
	return confidence
}
