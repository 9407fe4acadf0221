package commands

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/guard"
)

var ErrSubmitAttestationCommandIsNotConstructed = errors.New(
	"SubmitAttestationCommand must be created via NewSubmitAttestationCommand constructor",
)

// SubmitAttestationCommand is one party saying "I am here and the handoff happened",
// backed by the GPS fix of their own device.
type SubmitAttestationCommand struct { //nolint:recvcheck //using for validation
	shipmentLegID  kernel.UUID
	tenantID       kernel.UUID
	actorID        kernel.UUID
	side           confirmation.Side
	location       kernel.GeoPoint
	accuracyMeters float64
	at             time.Time

	guard guard.ConstructorGuard
}

// NewSubmitAttestationCommand validates identifiers and the side. Coordinates
// and accuracy are checked by the handler against the configured ceiling.
func NewSubmitAttestationCommand(
	shipmentLegID, tenantID, actorID kernel.UUID,
	side confirmation.Side,
	location kernel.GeoPoint,
	accuracyMeters float64,
	at time.Time,
) (SubmitAttestationCommand, error) {
	if err := errors.Join(
		shipmentLegID.Validate(),
		tenantID.Validate(),
		actorID.Validate(),
		side.Validate(),
		requiredTime("at", at),
	); err != nil {
		return SubmitAttestationCommand{}, err
	}

	return SubmitAttestationCommand{
		shipmentLegID:  shipmentLegID,
		tenantID:       tenantID,
		actorID:        actorID,
		side:           side,
		location:       location,
		accuracyMeters: accuracyMeters,
		at:             at,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitAttestationCommand) Validate() error {
	return c.guard.Validate(ErrSubmitAttestationCommandIsNotConstructed)
}

func (c SubmitAttestationCommand) ShipmentLegID() kernel.UUID { return c.shipmentLegID }
func (c SubmitAttestationCommand) TenantID() kernel.UUID      { return c.tenantID }
func (c SubmitAttestationCommand) ActorID() kernel.UUID       { return c.actorID }
func (c SubmitAttestationCommand) Side() confirmation.Side    { return c.side }
func (c SubmitAttestationCommand) Location() kernel.GeoPoint  { return c.location }
func (c SubmitAttestationCommand) AccuracyMeters() float64    { return c.accuracyMeters }
func (c SubmitAttestationCommand) At() time.Time              { return c.at }
