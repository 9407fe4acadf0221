package commands

import (
	"context"
	"log/slog"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/ports"
)

// AutoReturnConfirmationsCommandHandler returns shipments whose reschedule
// budget is spent. The flag on the record and the row lock make the return
// happen once per record.
type AutoReturnConfirmationsCommandHandler struct {
	sweeper  sweeper
	notifier OutcomeNotifier
	policy   confirmation.Policy
}

func NewAutoReturnConfirmationsCommandHandler(
	uowFactory UoWFactory,
	locker ports.RecordLocker,
	notifier OutcomeNotifier,
	policy confirmation.Policy,
	logger *slog.Logger,
) AutoReturnConfirmationsCommandHandler {
	return AutoReturnConfirmationsCommandHandler{
		sweeper: sweeper{
			uowFactory: uowFactory,
			locker:     locker,
			logger:     logger.With("component", "auto_return_sweep"),
		},
		notifier: notifier,
		policy:   policy,
	}
}

func (h *AutoReturnConfirmationsCommandHandler) Handle(ctx context.Context, cmd SweepCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	candidates, err := h.sweeper.uowFactory.Create().ConfirmationRepository().
		ListDueForAutoReturn(ctx, h.policy.MaxReschedules, cmd.BatchSize())
	if err != nil {
		return SweepResult{}, err
	}

	return h.sweeper.run(ctx, candidates, func(ctx context.Context, uow UoW, record *confirmation.Confirmation) (func(), error) {
		if !record.IsDueForAutoReturn(h.policy) {
			return nil, errNotDue
		}

		legRepo := uow.ShipmentLegRepository()
		leg, err := legRepo.Get(ctx, record.ShipmentLegID())
		if err != nil {
			return nil, err
		}
		if err = record.AutoReturn(cmd.Now(), h.policy); err != nil {
			return nil, err
		}
		if !leg.Status().IsTerminal() {
			if err = leg.MarkReturned(); err != nil {
				return nil, err
			}
			if err = legRepo.Update(ctx, leg); err != nil {
				return nil, err
			}
		}

		return func() { h.notifier.Returned(ctx, leg, record) }, nil
	}), nil
}
