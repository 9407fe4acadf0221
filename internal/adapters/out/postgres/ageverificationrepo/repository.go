package ageverificationrepo

import (
	"context"
	"errors"

	"handoff/internal/core/domain/model/ageverification"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormAgeVerificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAgeVerificationRepository(db *gorm.DB, tracker aggregateTracker) *GormAgeVerificationRepository {
	return &GormAgeVerificationRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormAgeVerificationRepository) GetByConfirmation(
	ctx context.Context, confirmationID kernel.UUID,
) (*ageverification.Verification, error) {
	if err := confirmationID.Validate(); err != nil {
		return nil, err
	}

	var dto AgeVerificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "confirmation_id = ?", confirmationID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("age verification", confirmationID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save keeps one row per confirmation record; a second save replaces the first.
func (r *GormAgeVerificationRepository) Save(ctx context.Context, aggregate *ageverification.Verification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "confirmation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"method", "status", "age_verified",
				"person_user_id", "person_name", "person_phone", "person_is_alternate",
				"verified_at", "updated_at",
			}),
		}).
		Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
