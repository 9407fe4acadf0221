package queries

import (
	"context"
	"fmt"

	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
)

type GetTrackingQueryHandler struct {
	readers  ReaderFactory
	carriers ports.CarrierRegistry
}

func NewGetTrackingQueryHandler(readers ReaderFactory, carriers ports.CarrierRegistry) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{readers: readers, carriers: carriers}
}

func (h GetTrackingQueryHandler) Handle(ctx context.Context, query GetTrackingQuery) (GetTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	leg, err := h.readers.Create().ShipmentLegRepository().Get(ctx, query.shipmentLegID)
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}
	if !leg.BelongsTo(query.caller.TenantID) {
		return GetTrackingQueryResponse{}, fmt.Errorf("%w: shipment leg %s belongs to another tenant", errs.ErrAccessDenied, leg.ID())
	}
	if leg.CarrierCode() == "" || leg.TrackingID() == "" {
		return GetTrackingQueryResponse{}, errs.NewObjectNotFoundError("tracking", leg.ID().String())
	}

	provider, err := h.carriers.Provider(leg.CarrierCode())
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}
	info, err := provider.GetTracking(ctx, leg.TrackingID())
	if err != nil {
		return GetTrackingQueryResponse{}, fmt.Errorf("tracking %s with %s: %w", leg.TrackingID(), leg.CarrierCode(), err)
	}

	return GetTrackingQueryResponse{CarrierCode: leg.CarrierCode(), Tracking: info}, nil
}
