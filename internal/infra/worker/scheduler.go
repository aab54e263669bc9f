// Package worker runs periodic background jobs on a cron schedule.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a named unit of periodic work.
type Job struct {
	Name string
	// Schedule is a robfig/cron spec such as "@every 1m" or "*/5 * * * *".
	Schedule string
	// Timeout bounds a single run. Zero means no limit beyond the scheduler's context.
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Scheduler runs jobs until its context is cancelled.
// A run still in progress when the next tick fires is skipped, not overlapped.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler evaluating schedules in loc (UTC when nil).
func NewScheduler(logger *slog.Logger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registers job. An invalid schedule is an error.
func (s *Scheduler) Add(job Job) error {
	if _, err := s.cron.AddFunc(job.Schedule, func() { s.RunOnce(s.ctx, job) }); err != nil {
		return fmt.Errorf("add job %q: %w", job.Name, err)
	}
	s.logger.Info("job scheduled", slog.String("job", job.Name), slog.String("schedule", job.Schedule))
	return nil
}

// RunOnce executes job immediately, recording its outcome.
func (s *Scheduler) RunOnce(ctx context.Context, job Job) {
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := job.Run(ctx)
	elapsed := time.Since(start)
	recordRun(job.Name, err, elapsed)

	if err != nil {
		s.logger.Error("job failed",
			slog.String("job", job.Name),
			slog.Duration("duration", elapsed),
			slog.Any("error", err))
		return
	}
	s.logger.Debug("job completed", slog.String("job", job.Name), slog.Duration("duration", elapsed))
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
	return nil
}
