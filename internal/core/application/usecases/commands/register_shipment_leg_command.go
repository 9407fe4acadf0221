package commands

import (
	"errors"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/guard"
)

var ErrRegisterShipmentLegCommandIsNotConstructed = errors.New(
	"RegisterShipmentLegCommand must be created via NewRegisterShipmentLegCommand constructor",
)

// ShipmentLegDetails describes a leg dispatched by the shipment service.
type ShipmentLegDetails struct {
	ShipmentLegID           kernel.UUID
	TenantID                kernel.UUID
	CustomerID              kernel.UUID
	AgentID                 *kernel.UUID
	ScheduledAddress        kernel.GeoPoint
	ProximityRadiusMeters   float64
	RequiresAgeVerification bool
	MinimumAge              int
	CarrierCode             string
	TrackingID              string
	DeliveryType            ports.DeliveryType
}

// RegisterShipmentLegCommand makes a dispatched leg known locally.
type RegisterShipmentLegCommand struct { //nolint:recvcheck //using for validation
	details ShipmentLegDetails

	guard guard.ConstructorGuard
}

// NewRegisterShipmentLegCommand checks identifiers only; the leg aggregate
// validates the rest. A zero radius is replaced by the handler's default.
func NewRegisterShipmentLegCommand(details ShipmentLegDetails) (RegisterShipmentLegCommand, error) {
	if err := errors.Join(
		details.ShipmentLegID.Validate(),
		details.TenantID.Validate(),
		details.CustomerID.Validate(),
	); err != nil {
		return RegisterShipmentLegCommand{}, err
	}
	if details.DeliveryType == "" {
		details.DeliveryType = ports.DeliveryStandard
	}

	return RegisterShipmentLegCommand{details: details, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterShipmentLegCommand) Validate() error {
	return c.guard.Validate(ErrRegisterShipmentLegCommandIsNotConstructed)
}

func (c RegisterShipmentLegCommand) Details() ShipmentLegDetails { return c.details }
