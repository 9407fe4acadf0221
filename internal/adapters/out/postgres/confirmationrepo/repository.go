package confirmationrepo

import (
	"context"
	"errors"
	"time"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConfirmationRepository implements ports.ConfirmationRepository using GORM.
// The locking reads only hold their locks when called inside a transaction.
type GormConfirmationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormConfirmationRepository(db *gorm.DB, tracker aggregateTracker) *GormConfirmationRepository {
	return &GormConfirmationRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetOrCreateForUpdate inserts candidate unless its shipment leg already has a
// record, then reads the stored record with FOR UPDATE. Concurrent callers for
// the same leg therefore all end up on one row.
func (r *GormConfirmationRepository) GetOrCreateForUpdate(
	ctx context.Context, candidate *confirmation.Confirmation,
) (*confirmation.Confirmation, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(candidate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "shipment_leg_id"}}, DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	var stored ConfirmationDTO
	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&stored, "shipment_leg_id = ?", candidate.ShipmentLegID().Bytes()).Error
	if err != nil {
		return nil, err
	}

	record, err := toDomain(stored)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return record, nil
}

func (r *GormConfirmationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*confirmation.Confirmation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ConfirmationDTO
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("confirmation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormConfirmationRepository) GetByShipmentLeg(
	ctx context.Context, shipmentLegID kernel.UUID,
) (*confirmation.Confirmation, error) {
	if err := shipmentLegID.Validate(); err != nil {
		return nil, err
	}

	var dto ConfirmationDTO
	if err := r.db.WithContext(ctx).First(&dto, "shipment_leg_id = ?", shipmentLegID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("confirmation", shipmentLegID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update writes every column, zero values included.
func (r *GormConfirmationRepository) Update(ctx context.Context, aggregate *confirmation.Confirmation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ConfirmationDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("confirmation", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormConfirmationRepository) ListDueForReopen(
	ctx context.Context, now time.Time, maxReschedules int, limit int,
) ([]*confirmation.Confirmation, error) {
	var dtos []ConfirmationDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ? AND reschedule_count < ?",
			int(confirmation.BothUnavailable), now, maxReschedules).
		Order("next_attempt_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormConfirmationRepository) ListDueForAutoReturn(
	ctx context.Context, maxReschedules int, limit int,
) ([]*confirmation.Confirmation, error) {
	var dtos []ConfirmationDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND reschedule_count >= ? AND auto_return_initiated = ?",
			int(confirmation.BothUnavailable), maxReschedules, false).
		Order("updated_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func toDomainList(dtos []ConfirmationDTO) ([]*confirmation.Confirmation, error) {
	records := make([]*confirmation.Confirmation, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, c)
	}
	return records, nil
}
