package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobradar/jobradar/internal/sched"
)

type WatchCmd struct {
	Schedule string `help:"Cron schedule (overrides config)."`
	ScanCmd
}

func (w *WatchCmd) Run(ctx *Context) error {
	bg := context.Background()

	session, cleanup, err := buildSession(bg, ctx, &w.ScanCmd)
	if err != nil {
		return err
	}
	defer cleanup()

	spec := w.Schedule
	if spec == "" {
		spec = ctx.Config.ScanSchedule
	}

	days := w.Days
	if days <= 0 {
		days = ctx.Config.ScanLookbackDays
	}

	scheduler := sched.New(ctx.Logger)
	err = scheduler.Add(spec, func(runCtx context.Context) error {
		since := time.Now().AddDate(0, 0, -days)
		result, err := session.Run(runCtx, since)
		if err != nil {
			return err
		}
		return reportScan(ctx, result)
	})
	if err != nil {
		return err
	}

	ctx.UI.Infof("Watching on schedule %q, press Ctrl+C to stop", spec)

	sigCtx, stop := signal.NotifyContext(bg, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	scheduler.Run(sigCtx)
	return nil
}
