// Package status enforces the job lifecycle state machine and detects
// follow-up emails that advance it.
package status

import (
	"errors"
	"fmt"

	"github.com/jobradar/jobradar/internal/models"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// transitions lists the forward moves from each state. Progress is
// monotonic: a job never moves back toward "new" without force.
var transitions = map[models.Status][]models.Status{
	models.StatusNew:          {models.StatusInterested, models.StatusApplied, models.StatusPassed, models.StatusRejected},
	models.StatusInterested:   {models.StatusApplied, models.StatusPassed, models.StatusRejected},
	models.StatusApplied:      {models.StatusInterviewing, models.StatusOffer, models.StatusRejected, models.StatusPassed},
	models.StatusInterviewing: {models.StatusOffer, models.StatusRejected},
	models.StatusOffer:        {},
	models.StatusRejected:     {},
	models.StatusPassed:       {},
}

// CanTransition reports whether moving from one state to another is a
// legal forward step.
func CanTransition(from, to models.Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Apply returns the job with the new status. Illegal moves fail with
// ErrInvalidTransition unless force is set.
func Apply(job models.Job, to models.Status, force bool) (models.Job, error) {
	if _, err := models.ParseStatus(string(to)); err != nil {
		return job, err
	}
	if !force && !CanTransition(job.Status, to) {
		return job, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, to)
	}
	job.Status = to
	return job, nil
}
