package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"handoff/internal/metrics"

	"github.com/robfig/cron/v3"
)

// scheduledJob runs task on a cron schedule. A pass that is still running
// when the next tick arrives makes that tick a no-op.
type scheduledJob struct {
	name     string
	schedule string
	task     func(ctx context.Context) error
	cron     *cron.Cron
	logger   *slog.Logger
}

func newScheduledJob(name, schedule string, task func(ctx context.Context) error, logger *slog.Logger) *scheduledJob {
	return &scheduledJob{
		name:     name,
		schedule: schedule,
		task:     task,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", name+"_job"),
	}
}

// Start registers the task and starts the scheduler.
func (j *scheduledJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.runOnce); err != nil {
		return fmt.Errorf("schedule %s job %q: %w", j.name, j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running pass to return.
func (j *scheduledJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Job stopped")
}

func (j *scheduledJob) runOnce() {
	ctx := context.Background()
	started := time.Now()

	if err := j.task(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Job pass failed", "error", err)
	}
	metrics.SweepDuration.WithLabelValues(j.name).Observe(time.Since(started).Seconds())
}
