package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
)

type GetConfirmationStatusQueryHandler struct {
	readers ReaderFactory
	policy  confirmation.Policy
}

func NewGetConfirmationStatusQueryHandler(
	readers ReaderFactory, policy confirmation.Policy,
) GetConfirmationStatusQueryHandler {
	return GetConfirmationStatusQueryHandler{readers: readers, policy: policy}
}

// Handle returns the record of the leg, or a synthesized PENDING view when
// none was created yet. Admins may look from either side.
func (h GetConfirmationStatusQueryHandler) Handle(
	ctx context.Context, query GetConfirmationStatusQuery,
) (ConfirmationStatusResponse, error) {
	if err := query.Validate(); err != nil {
		return ConfirmationStatusResponse{}, err
	}

	reader := h.readers.Create()
	leg, err := reader.ShipmentLegRepository().Get(ctx, query.shipmentLegID)
	if err != nil {
		return ConfirmationStatusResponse{}, err
	}
	if err = authorizeViewer(query.caller, leg, query.side); err != nil {
		return ConfirmationStatusResponse{}, err
	}

	return confirmationStatus(ctx, reader, leg, query.side, query.at, h.policy)
}

func confirmationStatus(
	ctx context.Context, reader Reader, leg *shipment.Leg, side confirmation.Side, at time.Time, policy confirmation.Policy,
) (ConfirmationStatusResponse, error) {
	exists := true
	record, err := reader.ConfirmationRepository().GetByShipmentLeg(ctx, leg.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		exists = false
		record, err = confirmation.NewConfirmation(
			kernel.NewUUID(), leg.ID(), leg.TenantID(), leg.RequiresAgeVerification(), leg.MinimumAge(), at)
	}
	if err != nil {
		return ConfirmationStatusResponse{}, err
	}

	return ConfirmationStatusResponse{
		Exists:            exists,
		Confirmation:      record.Snapshot(),
		ShipmentLegStatus: leg.Status(),
		Side:              side,
		CanConfirm:        record.CanConfirm(side, at, policy),
		TimeRemaining:     record.TimeRemaining(side, at, policy),
		IsInProximity:     record.ProximityVerified(),
	}, nil
}

func authorizeViewer(caller ports.Identity, leg *shipment.Leg, side confirmation.Side) error {
	if !leg.BelongsTo(caller.TenantID) {
		return fmt.Errorf("%w: shipment leg %s belongs to another tenant", errs.ErrAccessDenied, leg.ID())
	}
	if caller.IsAdmin() {
		return nil
	}
	switch side {
	case confirmation.Agent:
		if caller.Has(ports.CapabilityAgent) && leg.IsAgent(caller.UserID) {
			return nil
		}
	case confirmation.Customer:
		if caller.Has(ports.CapabilityCustomer) && leg.IsCustomer(caller.UserID) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not view the %s side of shipment leg %s",
		errs.ErrAccessDenied, caller.UserID, side, leg.ID())
}
