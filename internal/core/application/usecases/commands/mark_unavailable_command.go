package commands

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/guard"
)

var ErrMarkUnavailableCommandIsNotConstructed = errors.New(
	"MarkUnavailableCommand must be created via NewMarkUnavailableCommand constructor",
)

// MarkUnavailableCommand reports that one party could not meet the other. The
// reason is free text and may be empty.
type MarkUnavailableCommand struct { //nolint:recvcheck //using for validation
	shipmentLegID kernel.UUID
	tenantID      kernel.UUID
	actorID       kernel.UUID
	side          confirmation.Side
	reason        string
	at            time.Time

	guard guard.ConstructorGuard
}

func NewMarkUnavailableCommand(
	shipmentLegID, tenantID, actorID kernel.UUID,
	side confirmation.Side,
	reason string,
	at time.Time,
) (MarkUnavailableCommand, error) {
	if err := errors.Join(
		shipmentLegID.Validate(),
		tenantID.Validate(),
		actorID.Validate(),
		side.Validate(),
		requiredTime("at", at),
	); err != nil {
		return MarkUnavailableCommand{}, err
	}

	return MarkUnavailableCommand{
		shipmentLegID: shipmentLegID,
		tenantID:      tenantID,
		actorID:       actorID,
		side:          side,
		reason:        reason,
		at:            at,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c MarkUnavailableCommand) Validate() error {
	return c.guard.Validate(ErrMarkUnavailableCommandIsNotConstructed)
}

func (c MarkUnavailableCommand) ShipmentLegID() kernel.UUID { return c.shipmentLegID }
func (c MarkUnavailableCommand) TenantID() kernel.UUID      { return c.tenantID }
func (c MarkUnavailableCommand) ActorID() kernel.UUID       { return c.actorID }
func (c MarkUnavailableCommand) Side() confirmation.Side    { return c.side }
func (c MarkUnavailableCommand) Reason() string             { return c.reason }
func (c MarkUnavailableCommand) At() time.Time              { return c.at }
