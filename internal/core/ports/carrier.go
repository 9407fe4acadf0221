package ports

import (
	"context"
	"time"
)

type DeliveryType string

const (
	DeliveryStandard   DeliveryType = "STANDARD"
	DeliveryExpress    DeliveryType = "EXPRESS"
	DeliverySameDay    DeliveryType = "SAME_DAY"
	DeliveryHyperlocal DeliveryType = "HYPERLOCAL"
)

type CarrierShipmentRequest struct {
	ShipmentLegID string
	TenantID      string
	DeliveryType  DeliveryType
	DropLatitude  float64
	DropLongitude float64
}

type TrackingInfo struct {
	TrackingID string
	Status     string
	UpdatedAt  time.Time
	Latitude   *float64
	Longitude  *float64
}

// CarrierProvider is the capability set every carrier integration exposes.
type CarrierProvider interface {
	Code() string
	CreateShipment(ctx context.Context, req CarrierShipmentRequest) (trackingID string, err error)
	GetTracking(ctx context.Context, trackingID string) (TrackingInfo, error)
	CancelShipment(ctx context.Context, trackingID string, reason string) error
	VerifyWebhookSignature(payload []byte, signature string) bool
	SupportsDeliveryType(t DeliveryType) bool
}

type CarrierRegistry interface {
	Provider(code string) (CarrierProvider, error)
}
