package commands

import (
	"context"
	"errors"
	"log/slog"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/ports"
)

var errNotDue = errors.New("record is no longer due")

// sweeper walks candidate records one at a time. Each record gets its own lock
// and transaction, so one failing record never stops the pass.
type sweeper struct {
	uowFactory UoWFactory
	locker     ports.RecordLocker
	logger     *slog.Logger
}

// sweepStep changes a locked record. The returned func, when not nil, runs after commit.
type sweepStep func(ctx context.Context, uow UoW, record *confirmation.Confirmation) (func(), error)

func (s sweeper) run(ctx context.Context, candidates []*confirmation.Confirmation, step sweepStep) SweepResult {
	var result SweepResult
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}

		err := s.process(ctx, candidate.ShipmentLegID(), candidate.ID(), step)
		switch {
		case err == nil:
			result.Processed++
		case errors.Is(err, errNotDue):
			result.Skipped++
		default:
			result.Failed++
			s.logger.ErrorContext(ctx, "Failed to process confirmation record",
				"confirmation_id", candidate.ID().String(), "error", err)
		}
	}
	return result
}

func (s sweeper) process(ctx context.Context, shipmentLegID, confirmationID kernel.UUID, step sweepStep) error {
	unlock, ok, err := s.locker.TryLock(ctx, RecordLockKey(shipmentLegID))
	if err != nil {
		return err
	}
	if !ok {
		return errNotDue
	}
	defer unlock()

	uow := s.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	confirmationRepo := uow.ConfirmationRepository()
	record, err := confirmationRepo.GetForUpdate(ctx, confirmationID)
	if err != nil {
		return err
	}

	afterCommit, err := step(ctx, uow, record)
	if err != nil {
		return err
	}
	if err = confirmationRepo.Update(ctx, record); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if afterCommit != nil {
		afterCommit()
	}
	return nil
}
