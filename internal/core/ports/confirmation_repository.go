package ports

import (
	"context"
	"time"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
)

type ConfirmationRepository interface {
	// GetOrCreateForUpdate inserts candidate unless a record for its shipment leg
	// exists, then returns the stored record row-locked for the current transaction.
	GetOrCreateForUpdate(ctx context.Context, candidate *confirmation.Confirmation) (*confirmation.Confirmation, error)

	GetForUpdate(ctx context.Context, id kernel.UUID) (*confirmation.Confirmation, error)

	GetByShipmentLeg(ctx context.Context, shipmentLegID kernel.UUID) (*confirmation.Confirmation, error)

	Update(ctx context.Context, aggregate *confirmation.Confirmation) error

	ListDueForReopen(ctx context.Context, now time.Time, maxReschedules int, limit int) ([]*confirmation.Confirmation, error)

	ListDueForAutoReturn(ctx context.Context, maxReschedules int, limit int) ([]*confirmation.Confirmation, error)
}
