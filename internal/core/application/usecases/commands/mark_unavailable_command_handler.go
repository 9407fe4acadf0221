package commands

import (
	"context"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/domain/services"
	"handoff/internal/core/ports"
)

// MarkUnavailableCommandHandler records that a party could not make the
// handoff. When both parties are unavailable the record is scheduled for
// another attempt, or returned once the reschedule budget is spent.
type MarkUnavailableCommandHandler struct {
	protocol handoffProtocol
}

func NewMarkUnavailableCommandHandler(
	uowFactory UoWFactory,
	locker ports.RecordLocker,
	notifier OutcomeNotifier,
	engine services.GeoProximityEngine,
	policy confirmation.Policy,
) MarkUnavailableCommandHandler {
	return MarkUnavailableCommandHandler{
		protocol: newHandoffProtocol(uowFactory, locker, notifier, engine, policy),
	}
}

func (h *MarkUnavailableCommandHandler) Handle(ctx context.Context, cmd MarkUnavailableCommand) (AttestationResult, error) {
	if err := cmd.Validate(); err != nil {
		return AttestationResult{}, err
	}

	return h.protocol.run(ctx, cmd.ShipmentLegID(),
		authorizeSide(cmd.TenantID(), cmd.ActorID(), cmd.Side()),
		cmd.At(),
		func(_ context.Context, _ UoW, _ *shipment.Leg, record *confirmation.Confirmation) (confirmation.Outcome, error) {
			return record.MarkUnavailable(cmd.Side(), cmd.Reason(), cmd.At(), h.protocol.policy)
		},
	)
}
