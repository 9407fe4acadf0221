package queries

import (
	"errors"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery asks the leg's carrier where the shipment is.
type GetTrackingQuery struct {
	shipmentLegID kernel.UUID
	caller        ports.Identity

	guard guard.ConstructorGuard
}

func NewGetTrackingQuery(shipmentLegID kernel.UUID, caller ports.Identity) (GetTrackingQuery, error) {
	if err := errors.Join(shipmentLegID.Validate(), caller.TenantID.Validate()); err != nil {
		return GetTrackingQuery{}, err
	}
	return GetTrackingQuery{shipmentLegID: shipmentLegID, caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

type GetTrackingQueryResponse struct {
	CarrierCode string
	Tracking    ports.TrackingInfo
}
