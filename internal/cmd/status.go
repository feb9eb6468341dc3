package cmd

import (
	"context"

	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/status"
)

type StatusCmd struct {
	ID     string `arg:"" help:"Job id (dedup key)."`
	Status string `arg:"" help:"New status: interested, applied, interviewing, offer, rejected, passed."`
	Force  bool   `help:"Allow transitions the state machine would reject."`
	Notes  string `help:"Replace the job's notes."`
}

func (s *StatusCmd) Run(ctx *Context) error {
	bg := context.Background()

	to, err := models.ParseStatus(s.Status)
	if err != nil {
		return err
	}

	st, err := ctx.openStore(bg)
	if err != nil {
		return err
	}
	defer st.Close()

	job, err := st.Get(bg, s.ID)
	if err != nil {
		return err
	}

	job, err = status.Apply(job, to, s.Force)
	if err != nil {
		return err
	}
	if err := st.SetStatus(bg, job.DedupKey, job.Status); err != nil {
		return err
	}
	if s.Notes != "" {
		if err := st.SetNotes(bg, job.DedupKey, s.Notes); err != nil {
			return err
		}
	}

	ctx.UI.Successf("%s: %s (%s at %s)", job.DedupKey, job.Status, job.Title, job.Company)
	return nil
}
