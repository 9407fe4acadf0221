package jobs

import (
	"context"
	"log/slog"
	"time"

	"handoff/internal/core/application/usecases/commands"
)

// AutoReturnJob returns shipments that ran out of reschedule attempts.
type AutoReturnJob struct {
	*scheduledJob

	handler   sweepHandler
	batchSize int
	now       func() time.Time
}

func NewAutoReturnJob(handler sweepHandler, schedule string, batchSize int, logger *slog.Logger) *AutoReturnJob {
	j := &AutoReturnJob{handler: handler, batchSize: batchSize, now: time.Now}
	j.scheduledJob = newScheduledJob("auto_return", schedule, j.run, logger)
	return j
}

func (j *AutoReturnJob) run(ctx context.Context) error {
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
