package shipmentrepo

import (
	"context"
	"errors"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentLegRepository implements ports.ShipmentLegRepository using GORM.
type GormShipmentLegRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentLegRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentLegRepository {
	return &GormShipmentLegRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormShipmentLegRepository) Add(ctx context.Context, aggregate *shipment.Leg) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column, zero values included.
func (r *GormShipmentLegRepository) Update(ctx context.Context, aggregate *shipment.Leg) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShipmentLegDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipmentLeg", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentLegRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Leg, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentLegDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipmentLeg", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
