package ports

import (
	"context"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/shipment"
)

type ShipmentLegRepository interface {
	Add(ctx context.Context, aggregate *shipment.Leg) error

	Update(ctx context.Context, aggregate *shipment.Leg) error

	Get(ctx context.Context, id kernel.UUID) (*shipment.Leg, error)
}
