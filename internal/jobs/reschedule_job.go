package jobs

import (
	"context"
	"log/slog"
	"time"

	"handoff/internal/core/application/usecases/commands"
)

type sweepHandler interface {
	Handle(ctx context.Context, cmd commands.SweepCommand) (commands.SweepResult, error)
}

// RescheduleJob reopens mutually unavailable handoffs whose next attempt is due.
type RescheduleJob struct {
	*scheduledJob

	handler   sweepHandler
	batchSize int
	now       func() time.Time
}

func NewRescheduleJob(handler sweepHandler, schedule string, batchSize int, logger *slog.Logger) *RescheduleJob {
	j := &RescheduleJob{handler: handler, batchSize: batchSize, now: time.Now}
	j.scheduledJob = newScheduledJob("reschedule", schedule, j.run, logger)
	return j
}

func (j *RescheduleJob) run(ctx context.Context) error {
	cmd, err := commands.NewSweepCommand(j.now(), j.batchSize)
	if err != nil {
		return err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	recordSweep(ctx, j.logger, j.name, result)
	return nil
}
