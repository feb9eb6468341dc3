package cmd

import (
	"context"
	"time"

	"github.com/jobradar/jobradar/internal/baseline"
	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/normalize"
	"github.com/jobradar/jobradar/internal/score"
	"github.com/jobradar/jobradar/internal/store"
)

type RescoreCmd struct {
	ID string `arg:"" optional:"" help:"Force a full rescore of one job, ignoring cached results; omit to refresh composite scores."`
}

func (r *RescoreCmd) Run(ctx *Context) error {
	bg := context.Background()

	st, err := ctx.openStore(bg)
	if err != nil {
		return err
	}
	defer st.Close()

	now := time.Now()

	if r.ID != "" {
		return r.rescoreOne(bg, ctx, st, now)
	}

	jobs, err := st.List(bg, store.Filter{IncludeDeleted: true})
	if err != nil {
		return err
	}
	for _, job := range jobs {
		composite := score.Composite(job, now, ctx.Config.Scoring)
		if err := st.SetCompositeScore(bg, job.DedupKey, composite); err != nil {
			return err
		}
	}
	ctx.UI.Successf("Rescored %d job(s)", len(jobs))
	return nil
}

// rescoreOne recomputes everything for a single job, including the
// cached baseline and content hash, so manual edits to the stored
// description take effect. The job is queued for re-analysis on the
// next scan.
func (r *RescoreCmd) rescoreOne(bg context.Context, ctx *Context, st *store.Store, now time.Time) error {
	job, err := st.Get(bg, r.ID)
	if err != nil {
		return err
	}

	job.BaselineScore = baseline.New(ctx.Config).Score(job)
	if err := st.SetBaseline(bg, job.DedupKey, job.BaselineScore); err != nil {
		return err
	}

	hash := normalize.ContentHash(job.Title, job.Description)
	if err := st.ResetAnalysis(bg, job.DedupKey, hash); err != nil {
		return err
	}
	job.AnalysisStatus = models.AnalysisPending

	composite := score.Composite(job, now, ctx.Config.Scoring)
	if err := st.SetCompositeScore(bg, job.DedupKey, composite); err != nil {
		return err
	}
	ctx.UI.Successf("%s: %.1f (queued for re-analysis)", job.DedupKey, composite)
	return nil
}
