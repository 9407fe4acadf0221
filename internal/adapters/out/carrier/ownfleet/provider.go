// Package ownfleet is the in-house fleet carrier. It needs no network: the
// fleet's own drivers run the handoff protocol.
package ownfleet

import (
	"context"
	"strings"
	"time"

	"handoff/internal/core/ports"
)

const Code = "OWN_FLEET"

type Provider struct {
	now func() time.Time
}

func New() *Provider {
	return &Provider{now: time.Now}
}

func (p *Provider) Code() string { return Code }

// CreateShipment derives the tracking id from the leg id so that a repeated
// registration yields the same id.
func (p *Provider) CreateShipment(_ context.Context, req ports.CarrierShipmentRequest) (string, error) {
	ref := strings.ReplaceAll(req.ShipmentLegID, "-", "")
	if len(ref) > 12 {
		ref = ref[:12]
	}
	return "OWN-" + strings.ToUpper(ref), nil
}

func (p *Provider) GetTracking(_ context.Context, trackingID string) (ports.TrackingInfo, error) {
	return ports.TrackingInfo{
		TrackingID: trackingID,
		Status:     "IN_TRANSIT",
		UpdatedAt:  p.now().UTC(),
	}, nil
}

func (p *Provider) CancelShipment(context.Context, string, string) error {
	return nil
}

// VerifyWebhookSignature rejects everything: the own fleet sends no webhooks.
func (p *Provider) VerifyWebhookSignature([]byte, string) bool {
	return false
}

func (p *Provider) SupportsDeliveryType(ports.DeliveryType) bool {
	return true
}
