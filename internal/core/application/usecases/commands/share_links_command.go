package commands

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/recipient"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

var ErrShareLinksCommandIsNotConstructed = errors.New(
	"ShareLinksCommand must be created via NewShareLinksCommand constructor",
)

// ShareLinksCommand asks for one share link per alternate recipient.
type ShareLinksCommand struct { //nolint:recvcheck //using for validation
	shipmentLegID kernel.UUID
	caller        ports.Identity
	recipients    []recipient.Contact
	method        recipient.ShareMethod
	expiry        time.Duration
	at            time.Time

	guard guard.ConstructorGuard
}

// NewShareLinksCommand builds the command. A zero expiry means recipient.DefaultLinkExpiry.
// Contacts are validated by the aggregate when the links are issued.
func NewShareLinksCommand(
	shipmentLegID kernel.UUID,
	caller ports.Identity,
	recipients []recipient.Contact,
	method recipient.ShareMethod,
	expiry time.Duration,
	at time.Time,
) (ShareLinksCommand, error) {
	var recipientsErr error
	if len(recipients) == 0 {
		recipientsErr = errs.NewValueIsRequiredError("recipients")
	}
	if err := errors.Join(
		shipmentLegID.Validate(),
		caller.UserID.Validate(),
		caller.TenantID.Validate(),
		recipientsErr,
		requiredTime("at", at),
	); err != nil {
		return ShareLinksCommand{}, err
	}
	if method == "" {
		method = recipient.ShareByLink
	}
	if expiry <= 0 {
		expiry = recipient.DefaultLinkExpiry
	}

	return ShareLinksCommand{
		shipmentLegID: shipmentLegID,
		caller:        caller,
		recipients:    recipients,
		method:        method,
		expiry:        expiry,
		at:            at,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ShareLinksCommand) Validate() error {
	return c.guard.Validate(ErrShareLinksCommandIsNotConstructed)
}

func (c ShareLinksCommand) ShipmentLegID() kernel.UUID      { return c.shipmentLegID }
func (c ShareLinksCommand) Caller() ports.Identity          { return c.caller }
func (c ShareLinksCommand) Recipients() []recipient.Contact { return c.recipients }
func (c ShareLinksCommand) Method() recipient.ShareMethod   { return c.method }
func (c ShareLinksCommand) Expiry() time.Duration           { return c.expiry }
func (c ShareLinksCommand) At() time.Time                   { return c.at }
