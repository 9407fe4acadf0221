package commands

import (
	"errors"

	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

var ErrCarrierWebhookCommandIsNotConstructed = errors.New(
	"CarrierWebhookCommand must be created via NewCarrierWebhookCommand constructor",
)

// CarrierWebhookCommand is a status callback pushed by a carrier.
type CarrierWebhookCommand struct { //nolint:recvcheck //using for validation
	carrierCode string
	payload     []byte
	signature   string

	guard guard.ConstructorGuard
}

func NewCarrierWebhookCommand(carrierCode string, payload []byte, signature string) (CarrierWebhookCommand, error) {
	var payloadErr error
	if len(payload) == 0 {
		payloadErr = errs.NewValueIsRequiredError("payload")
	}
	if err := errors.Join(
		requiredString("carrierCode", carrierCode),
		requiredString("signature", signature),
		payloadErr,
	); err != nil {
		return CarrierWebhookCommand{}, err
	}

	return CarrierWebhookCommand{
		carrierCode: carrierCode,
		payload:     payload,
		signature:   signature,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CarrierWebhookCommand) Validate() error {
	return c.guard.Validate(ErrCarrierWebhookCommandIsNotConstructed)
}

func (c CarrierWebhookCommand) CarrierCode() string { return c.carrierCode }
func (c CarrierWebhookCommand) Payload() []byte     { return c.payload }
func (c CarrierWebhookCommand) Signature() string   { return c.signature }
