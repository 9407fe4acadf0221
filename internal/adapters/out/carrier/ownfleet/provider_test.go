package ownfleet

import (
	"context"
	"testing"
	"time"

	"handoff/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_CreateShipment_IsDeterministic(t *testing.T) {
	p := New()
	req := ports.CarrierShipmentRequest{ShipmentLegID: "8a2f5c7e-3d1b-4c6a-9e8f-1a2b3c4d5e6f"}

	first, err := p.CreateShipment(context.Background(), req)
	require.NoError(t, err)
	second, err := p.CreateShipment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "OWN-8A2F5C7E3D1B", first)
	assert.Equal(t, first, second)
}

func TestProvider_GetTracking(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &Provider{now: func() time.Time { return at }}

	info, err := p.GetTracking(context.Background(), "OWN-1")
	require.NoError(t, err)
	assert.Equal(t, "OWN-1", info.TrackingID)
	assert.Equal(t, "IN_TRANSIT", info.Status)
	assert.Equal(t, at, info.UpdatedAt)
}

func TestProvider_Capabilities(t *testing.T) {
	p := New()
	assert.Equal(t, Code, p.Code())
	assert.NoError(t, p.CancelShipment(context.Background(), "OWN-1", "returned"))
	assert.False(t, p.VerifyWebhookSignature([]byte(`{}`), "anything"))
	for _, dt := range []ports.DeliveryType{ports.DeliveryStandard, ports.DeliveryExpress, ports.DeliverySameDay, ports.DeliveryHyperlocal} {
		assert.True(t, p.SupportsDeliveryType(dt))
	}
}
