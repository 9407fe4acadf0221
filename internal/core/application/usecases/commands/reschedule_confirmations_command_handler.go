package commands

import (
	"context"
	"log/slog"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/ports"
)

// RescheduleConfirmationsCommandHandler reopens records whose parties were both
// unavailable once their next attempt is due. The reschedule was already
// counted when mutual unavailability was recorded.
type RescheduleConfirmationsCommandHandler struct {
	sweeper sweeper
	policy  confirmation.Policy
}

func NewRescheduleConfirmationsCommandHandler(
	uowFactory UoWFactory, locker ports.RecordLocker, policy confirmation.Policy, logger *slog.Logger,
) RescheduleConfirmationsCommandHandler {
	return RescheduleConfirmationsCommandHandler{
		sweeper: sweeper{
			uowFactory: uowFactory,
			locker:     locker,
			logger:     logger.With("component", "reschedule_sweep"),
		},
		policy: policy,
	}
}

func (h *RescheduleConfirmationsCommandHandler) Handle(ctx context.Context, cmd SweepCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	candidates, err := h.sweeper.uowFactory.Create().ConfirmationRepository().
		ListDueForReopen(ctx, cmd.Now(), h.policy.MaxReschedules, cmd.BatchSize())
	if err != nil {
		return SweepResult{}, err
	}

	return h.sweeper.run(ctx, candidates, func(_ context.Context, _ UoW, record *confirmation.Confirmation) (func(), error) {
		if !record.IsDueForReopen(cmd.Now(), h.policy) {
			return nil, errNotDue
		}
		return nil, record.Reopen(cmd.Now(), h.policy)
	}), nil
}
