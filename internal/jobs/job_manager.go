package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions of the sweeps. Descriptors such as
// "@every 5m" are accepted as well as six-field expressions with seconds.
type Schedules struct {
	Reschedule string
	AutoReturn string
	LinkExpiry string
	BatchSize  int
}

func DefaultSchedules() Schedules {
	return Schedules{
		Reschedule: "@every 5m",
		AutoReturn: "@every 10m",
		LinkExpiry: "@every 15m",
		BatchSize:  100,
	}
}

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs []job
}

// NewJobManager wires each sweep handler to its own scheduler.
func NewJobManager(
	rescheduleHandler sweepHandler,
	autoReturnHandler sweepHandler,
	linkExpiryHandler linkExpiryHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		jobs: []job{
			NewRescheduleJob(rescheduleHandler, schedules.Reschedule, schedules.BatchSize, logger),
			NewAutoReturnJob(autoReturnHandler, schedules.AutoReturn, schedules.BatchSize, logger),
			NewLinkExpiryJob(linkExpiryHandler, schedules.LinkExpiry, schedules.BatchSize, logger),
		},
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start jobs: %w", err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for _, j := range jm.jobs {
		j.Stop()
	}
}
