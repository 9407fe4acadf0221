package commands

import (
	"context"
	"fmt"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/domain/services"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
)

// ConfirmAsAlternateCommandHandler lets an alternate recipient attest as the
// customer side. The link is marked used and the attestation recorded in the
// same transaction, then adjudication runs against the agent's attestation.
type ConfirmAsAlternateCommandHandler struct {
	protocol handoffProtocol
}

func NewConfirmAsAlternateCommandHandler(
	uowFactory UoWFactory,
	locker ports.RecordLocker,
	notifier OutcomeNotifier,
	engine services.GeoProximityEngine,
	policy confirmation.Policy,
) ConfirmAsAlternateCommandHandler {
	return ConfirmAsAlternateCommandHandler{
		protocol: newHandoffProtocol(uowFactory, locker, notifier, engine, policy),
	}
}

func (h *ConfirmAsAlternateCommandHandler) Handle(ctx context.Context, cmd ConfirmAsAlternateCommand) (AttestationResult, error) {
	if err := cmd.Validate(); err != nil {
		return AttestationResult{}, err
	}

	// The lock key is derived from the shipment leg, so the link is read once
	// before the critical section. Its state is re-read under the row lock.
	link, err := h.protocol.uowFactory.Create().AlternateRecipientRepository().GetByToken(ctx, cmd.Token())
	if err != nil {
		return AttestationResult{}, err
	}
	if err = link.CheckUsable(cmd.At()); err != nil {
		return AttestationResult{}, err
	}
	if err = h.protocol.engine.CheckAttestation(cmd.Location(), cmd.AccuracyMeters()); err != nil {
		return AttestationResult{}, err
	}

	attestation, err := confirmation.NewAttestation(link.ID(), cmd.Location(), cmd.AccuracyMeters(), cmd.At())
	if err != nil {
		return AttestationResult{}, err
	}

	authorize := func(leg *shipment.Leg) error {
		if !leg.BelongsTo(link.TenantID()) {
			return fmt.Errorf("%w: share link does not belong to shipment leg %s", errs.ErrAccessDenied, leg.ID())
		}
		return nil
	}

	return h.protocol.run(ctx, link.ShipmentLegID(), authorize, cmd.At(),
		func(ctx context.Context, uow UoW, _ *shipment.Leg, record *confirmation.Confirmation) (confirmation.Outcome, error) {
			recipientRepo := uow.AlternateRecipientRepository()
			locked, err := recipientRepo.GetByTokenForUpdate(ctx, cmd.Token())
			if err != nil {
				return 0, err
			}
			if err = locked.CheckUsable(cmd.At()); err != nil {
				return 0, err
			}

			outcome, err := record.RecordAlternateAttestation(locked.ID(), attestation, h.protocol.policy)
			if err != nil {
				return 0, err
			}
			if err = locked.RecordConfirmation(record.ID(), cmd.Location(), cmd.AccuracyMeters(), cmd.At()); err != nil {
				return 0, err
			}
			if err = recipientRepo.Update(ctx, locked); err != nil {
				return 0, err
			}

			return outcome, nil
		},
	)
}
