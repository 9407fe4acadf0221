package commands

import (
	"context"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/domain/services"
	"handoff/internal/core/ports"
)

// SubmitAttestationCommandHandler records one side's attestation and, when the
// counterpart has a live attestation, adjudicates the handoff.
//
// Example:
//
//	handler := NewSubmitAttestationCommandHandler(uowFactory, locker, notifier, engine, confirmation.DefaultPolicy())
//	cmd, _ := NewSubmitAttestationCommand(legID, tenantID, agentID, confirmation.Agent, point, 8, time.Now())
//	res, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if res.Outcome == confirmation.OutcomeDelivered {
//	    // shipment leg is delivered, the signal has been published
//	}
type SubmitAttestationCommandHandler struct {
	protocol handoffProtocol
}

func NewSubmitAttestationCommandHandler(
	uowFactory UoWFactory,
	locker ports.RecordLocker,
	notifier OutcomeNotifier,
	engine services.GeoProximityEngine,
	policy confirmation.Policy,
) SubmitAttestationCommandHandler {
	return SubmitAttestationCommandHandler{
		protocol: newHandoffProtocol(uowFactory, locker, notifier, engine, policy),
	}
}

// Handle validates the fix before touching storage, then records it inside the
// record's critical section.
func (h *SubmitAttestationCommandHandler) Handle(ctx context.Context, cmd SubmitAttestationCommand) (AttestationResult, error) {
	if err := cmd.Validate(); err != nil {
		return AttestationResult{}, err
	}
	if err := h.protocol.engine.CheckAttestation(cmd.Location(), cmd.AccuracyMeters()); err != nil {
		return AttestationResult{}, err
	}

	attestation, err := confirmation.NewAttestation(cmd.ActorID(), cmd.Location(), cmd.AccuracyMeters(), cmd.At())
	if err != nil {
		return AttestationResult{}, err
	}

	return h.protocol.run(ctx, cmd.ShipmentLegID(),
		authorizeSide(cmd.TenantID(), cmd.ActorID(), cmd.Side()),
		cmd.At(),
		func(_ context.Context, _ UoW, _ *shipment.Leg, record *confirmation.Confirmation) (confirmation.Outcome, error) {
			return record.RecordAttestation(cmd.Side(), attestation, h.protocol.policy)
		},
	)
}
