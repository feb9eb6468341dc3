package status

import (
	"errors"
	"testing"

	"github.com/jobradar/jobradar/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.Status
		want     bool
	}{
		{models.StatusNew, models.StatusInterested, true},
		{models.StatusNew, models.StatusApplied, true},
		{models.StatusInterested, models.StatusApplied, true},
		{models.StatusApplied, models.StatusInterviewing, true},
		{models.StatusInterviewing, models.StatusOffer, true},
		{models.StatusInterviewing, models.StatusRejected, true},
		{models.StatusNew, models.StatusPassed, true},
		{models.StatusApplied, models.StatusApplied, true},

		{models.StatusApplied, models.StatusNew, false},
		{models.StatusInterviewing, models.StatusApplied, false},
		{models.StatusRejected, models.StatusInterviewing, false},
		{models.StatusOffer, models.StatusApplied, false},
		{models.StatusPassed, models.StatusInterested, false},
		{models.StatusNew, models.StatusInterviewing, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	job := models.Job{Status: models.StatusApplied}

	job, err := Apply(job, models.StatusInterviewing, false)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if job.Status != models.StatusInterviewing {
		t.Fatalf("status = %q", job.Status)
	}

	if _, err := Apply(job, models.StatusApplied, false); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestApplyForce(t *testing.T) {
	job := models.Job{Status: models.StatusRejected}

	if _, err := Apply(job, models.StatusInterviewing, false); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected block without force, got %v", err)
	}

	job, err := Apply(job, models.StatusInterviewing, true)
	if err != nil {
		t.Fatalf("force apply failed: %v", err)
	}
	if job.Status != models.StatusInterviewing {
		t.Fatalf("status = %q", job.Status)
	}
}

func TestApplyUnknownStatus(t *testing.T) {
	if _, err := Apply(models.Job{Status: models.StatusNew}, models.Status("bogus"), true); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
