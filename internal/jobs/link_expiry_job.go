package jobs

import (
	"context"
	"log/slog"
	"time"

	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/metrics"
)

type linkExpiryHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireShareLinksCommand) (int, error)
}

// LinkExpiryJob marks share links past their expiry as EXPIRED. Resolution
// already refuses such links, the job only makes the stored status agree.
type LinkExpiryJob struct {
	*scheduledJob

	handler   linkExpiryHandler
	batchSize int
	now       func() time.Time
}

func NewLinkExpiryJob(handler linkExpiryHandler, schedule string, batchSize int, logger *slog.Logger) *LinkExpiryJob {
	j := &LinkExpiryJob{handler: handler, batchSize: batchSize, now: time.Now}
	j.scheduledJob = newScheduledJob("link_expiry", schedule, j.run, logger)
	return j
}

func (j *LinkExpiryJob) run(ctx context.Context) error {
	cmd, err := commands.NewExpireShareLinksCommand(j.now(), j.batchSize)
	if err != nil {
		return err
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	if expired > 0 {
		metrics.SweepRecordsTotal.WithLabelValues(j.name, "processed").Add(float64(expired))
		j.logger.InfoContext(ctx, "Share links expired", "count", expired)
	}
	return nil
}
