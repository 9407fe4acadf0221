package commands

import (
	"errors"
	"time"

	"handoff/internal/pkg/guard"
)

const DefaultSweepBatchSize = 100

var ErrExpireShareLinksCommandIsNotConstructed = errors.New(
	"ExpireShareLinksCommand must be created via NewExpireShareLinksCommand constructor",
)

type ExpireShareLinksCommand struct { //nolint:recvcheck //using for validation
	now       time.Time
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpireShareLinksCommand(now time.Time, batchSize int) (ExpireShareLinksCommand, error) {
	if err := requiredTime("now", now); err != nil {
		return ExpireShareLinksCommand{}, err
	}
	if batchSize <= 0 {
		batchSize = DefaultSweepBatchSize
	}

	return ExpireShareLinksCommand{now: now, batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireShareLinksCommand) Validate() error {
	return c.guard.Validate(ErrExpireShareLinksCommandIsNotConstructed)
}

func (c ExpireShareLinksCommand) Now() time.Time { return c.now }
func (c ExpireShareLinksCommand) BatchSize() int { return c.batchSize }
