package commands

import (
	"errors"
	"time"

	"handoff/internal/pkg/guard"
)

var ErrSweepCommandIsNotConstructed = errors.New(
	"SweepCommand must be created via NewSweepCommand constructor",
)

// SweepCommand starts one pass of a periodic sweep over confirmation records.
type SweepCommand struct { //nolint:recvcheck //using for validation
	now       time.Time
	batchSize int

	guard guard.ConstructorGuard
}

func NewSweepCommand(now time.Time, batchSize int) (SweepCommand, error) {
	if err := requiredTime("now", now); err != nil {
		return SweepCommand{}, err
	}
	if batchSize <= 0 {
		batchSize = DefaultSweepBatchSize
	}

	return SweepCommand{now: now, batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c SweepCommand) Validate() error {
	return c.guard.Validate(ErrSweepCommandIsNotConstructed)
}

func (c SweepCommand) Now() time.Time { return c.now }
func (c SweepCommand) BatchSize() int { return c.batchSize }

// SweepResult counts what one pass did. Skipped records were busy or no longer due.
type SweepResult struct {
	Processed int
	Skipped   int
	Failed    int
}
