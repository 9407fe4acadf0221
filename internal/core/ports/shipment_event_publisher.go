package ports

import (
	"context"
	"time"
)

type ShipmentEventType string

const (
	ShipmentDelivered ShipmentEventType = "shipment.delivered"
	ShipmentReturned  ShipmentEventType = "shipment.returned"
)

// ShipmentEvent tells the shipment collaborator how a handoff ended.
type ShipmentEvent struct {
	Type           ShipmentEventType
	ShipmentLegID  string
	TenantID       string
	ConfirmationID string
	OccurredAt     time.Time
	HandoffLat     *float64
	HandoffLon     *float64
	LocationType   string
	ByAlternate    bool
}

type ShipmentEventPublisher interface {
	Publish(ctx context.Context, event ShipmentEvent) error
}
