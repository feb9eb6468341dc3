// Package sched runs periodic scans on a cron schedule.
package sched

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is the work executed on each tick.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner with context-based shutdown.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), log: log}
}

// Add registers a job under a cron spec such as "@every 6h" or
// "0 8 * * *".
func (s *Scheduler) Add(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job(context.Background()); err != nil {
			s.log.Error().Err(err).Str("spec", spec).Msg("scheduled run failed")
			return
		}
		s.log.Info().Str("spec", spec).Dur("took", time.Since(start)).Msg("scheduled run finished")
	})
	return err
}

// Run starts the scheduler and blocks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	<-ctx.Done()

	stopped := s.cron.Stop()
	<-stopped.Done()
}
