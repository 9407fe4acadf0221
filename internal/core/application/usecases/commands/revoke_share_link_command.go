package commands

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/recipient"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/guard"
)

var ErrRevokeShareLinkCommandIsNotConstructed = errors.New(
	"RevokeShareLinkCommand must be created via NewRevokeShareLinkCommand constructor",
)

type RevokeShareLinkCommand struct { //nolint:recvcheck //using for validation
	shipmentLegID kernel.UUID
	token         recipient.Token
	caller        ports.Identity
	reason        string
	at            time.Time

	guard guard.ConstructorGuard
}

func NewRevokeShareLinkCommand(
	shipmentLegID kernel.UUID, token string, caller ports.Identity, reason string, at time.Time,
) (RevokeShareLinkCommand, error) {
	parsed, tokenErr := recipient.ParseToken(token)
	if err := errors.Join(
		shipmentLegID.Validate(),
		tokenErr,
		caller.UserID.Validate(),
		caller.TenantID.Validate(),
		requiredTime("at", at),
	); err != nil {
		return RevokeShareLinkCommand{}, err
	}

	return RevokeShareLinkCommand{
		shipmentLegID: shipmentLegID,
		token:         parsed,
		caller:        caller,
		reason:        reason,
		at:            at,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RevokeShareLinkCommand) Validate() error {
	return c.guard.Validate(ErrRevokeShareLinkCommandIsNotConstructed)
}

func (c RevokeShareLinkCommand) ShipmentLegID() kernel.UUID { return c.shipmentLegID }
func (c RevokeShareLinkCommand) Token() recipient.Token     { return c.token }
func (c RevokeShareLinkCommand) Caller() ports.Identity     { return c.caller }
func (c RevokeShareLinkCommand) Reason() string             { return c.reason }
func (c RevokeShareLinkCommand) At() time.Time              { return c.at }
