package commands

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/ageverification"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/guard"
)

var ErrRecordAgeVerificationCommandIsNotConstructed = errors.New(
	"RecordAgeVerificationCommand must be created via NewRecordAgeVerificationCommand constructor",
)

// RecordAgeVerificationCommand carries the result of the external age check
// for the handoff of a shipment leg.
type RecordAgeVerificationCommand struct { //nolint:recvcheck //using for validation
	shipmentLegID kernel.UUID
	caller        ports.Identity
	method        ageverification.Method
	status        ageverification.Status
	ageVerified   bool
	person        ageverification.Person
	at            time.Time

	guard guard.ConstructorGuard
}

func NewRecordAgeVerificationCommand(
	shipmentLegID kernel.UUID,
	caller ports.Identity,
	method string,
	status string,
	ageVerified bool,
	person ageverification.Person,
	at time.Time,
) (RecordAgeVerificationCommand, error) {
	parsedMethod, methodErr := ageverification.ParseMethod(method)
	parsedStatus, statusErr := ageverification.ParseStatus(status)
	if err := errors.Join(
		shipmentLegID.Validate(),
		caller.UserID.Validate(),
		caller.TenantID.Validate(),
		methodErr,
		statusErr,
		requiredTime("at", at),
	); err != nil {
		return RecordAgeVerificationCommand{}, err
	}

	return RecordAgeVerificationCommand{
		shipmentLegID: shipmentLegID,
		caller:        caller,
		method:        parsedMethod,
		status:        parsedStatus,
		ageVerified:   ageVerified,
		person:        person,
		at:            at,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RecordAgeVerificationCommand) Validate() error {
	return c.guard.Validate(ErrRecordAgeVerificationCommandIsNotConstructed)
}

func (c RecordAgeVerificationCommand) ShipmentLegID() kernel.UUID     { return c.shipmentLegID }
func (c RecordAgeVerificationCommand) Caller() ports.Identity         { return c.caller }
func (c RecordAgeVerificationCommand) Method() ageverification.Method { return c.method }
func (c RecordAgeVerificationCommand) Status() ageverification.Status { return c.status }
func (c RecordAgeVerificationCommand) AgeVerified() bool              { return c.ageVerified }
func (c RecordAgeVerificationCommand) Person() ageverification.Person { return c.person }
func (c RecordAgeVerificationCommand) At() time.Time                  { return c.at }
