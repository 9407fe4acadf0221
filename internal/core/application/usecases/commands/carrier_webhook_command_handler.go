package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
)

// CarrierStatusUpdate is the common part of carrier callbacks.
type CarrierStatusUpdate struct {
	TrackingID string `json:"tracking_id"`
	Status     string `json:"status"`
}

// CarrierWebhookCommandHandler authenticates carrier callbacks by signature.
// Carrier status is informational here: the handoff protocol alone decides delivery.
type CarrierWebhookCommandHandler struct {
	carriers ports.CarrierRegistry
	logger   *slog.Logger
}

func NewCarrierWebhookCommandHandler(carriers ports.CarrierRegistry, logger *slog.Logger) CarrierWebhookCommandHandler {
	return CarrierWebhookCommandHandler{
		carriers: carriers,
		logger:   logger.With("component", "carrier_webhook"),
	}
}

func (h *CarrierWebhookCommandHandler) Handle(ctx context.Context, cmd CarrierWebhookCommand) (CarrierStatusUpdate, error) {
	if err := cmd.Validate(); err != nil {
		return CarrierStatusUpdate{}, err
	}

	provider, err := h.carriers.Provider(cmd.CarrierCode())
	if err != nil {
		return CarrierStatusUpdate{}, err
	}
	if !provider.VerifyWebhookSignature(cmd.Payload(), cmd.Signature()) {
		return CarrierStatusUpdate{}, fmt.Errorf("%w: invalid webhook signature for carrier %s",
			errs.ErrAccessDenied, cmd.CarrierCode())
	}

	var update CarrierStatusUpdate
	if err = json.Unmarshal(cmd.Payload(), &update); err != nil {
		return CarrierStatusUpdate{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	h.logger.InfoContext(ctx, "Carrier status received",
		"carrier", provider.Code(), "tracking_id", update.TrackingID, "status", update.Status)
	return update, nil
}
