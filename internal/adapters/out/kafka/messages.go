package kafka

import "time"

// ShipmentStatusChanged is the payload of the shipment status topic.
type ShipmentStatusChanged struct {
	EventType      string    `json:"event_type"`
	ShipmentLegID  string    `json:"shipment_leg_id"`
	TenantID       string    `json:"tenant_id"`
	ConfirmationID string    `json:"confirmation_id"`
	OccurredAt     time.Time `json:"occurred_at"`

	HandoffLat   *float64 `json:"handoff_lat,omitempty"`
	HandoffLon   *float64 `json:"handoff_lon,omitempty"`
	LocationType string   `json:"location_type,omitempty"`
	ByAlternate  bool     `json:"confirmed_by_alternate"`
}
