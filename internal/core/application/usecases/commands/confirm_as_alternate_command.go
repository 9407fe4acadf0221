package commands

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/recipient"
	"handoff/internal/pkg/guard"
)

var ErrConfirmAsAlternateCommandIsNotConstructed = errors.New(
	"ConfirmAsAlternateCommand must be created via NewConfirmAsAlternateCommand constructor",
)

// ConfirmAsAlternateCommand is the attestation of someone receiving the
// shipment on the customer's behalf. The share token is the only credential.
type ConfirmAsAlternateCommand struct { //nolint:recvcheck //using for validation
	token          recipient.Token
	location       kernel.GeoPoint
	accuracyMeters float64
	at             time.Time

	guard guard.ConstructorGuard
}

func NewConfirmAsAlternateCommand(
	token string, location kernel.GeoPoint, accuracyMeters float64, at time.Time,
) (ConfirmAsAlternateCommand, error) {
	parsed, err := recipient.ParseToken(token)
	if err = errors.Join(err, requiredTime("at", at)); err != nil {
		return ConfirmAsAlternateCommand{}, err
	}

	return ConfirmAsAlternateCommand{
		token:          parsed,
		location:       location,
		accuracyMeters: accuracyMeters,
		at:             at,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmAsAlternateCommand) Validate() error {
	return c.guard.Validate(ErrConfirmAsAlternateCommandIsNotConstructed)
}

func (c ConfirmAsAlternateCommand) Token() recipient.Token    { return c.token }
func (c ConfirmAsAlternateCommand) Location() kernel.GeoPoint { return c.location }
func (c ConfirmAsAlternateCommand) AccuracyMeters() float64   { return c.accuracyMeters }
func (c ConfirmAsAlternateCommand) At() time.Time             { return c.at }
