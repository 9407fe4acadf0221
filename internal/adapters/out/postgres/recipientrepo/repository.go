package recipientrepo

import (
	"context"
	"errors"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/recipient"
	"handoff/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAlternateRecipientRepository implements ports.AlternateRecipientRepository using GORM.
type GormAlternateRecipientRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAlternateRecipientRepository(db *gorm.DB, tracker aggregateTracker) *GormAlternateRecipientRepository {
	return &GormAlternateRecipientRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormAlternateRecipientRepository) Add(ctx context.Context, aggregate *recipient.AlternateRecipient) error {
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

func (r *GormAlternateRecipientRepository) Update(ctx context.Context, aggregate *recipient.AlternateRecipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AlternateRecipientDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("alternate recipient", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAlternateRecipientRepository) GetByToken(
	ctx context.Context, token recipient.Token,
) (*recipient.AlternateRecipient, error) {
	return r.getByToken(r.db.WithContext(ctx), token)
}

func (r *GormAlternateRecipientRepository) GetByTokenForUpdate(
	ctx context.Context, token recipient.Token,
) (*recipient.AlternateRecipient, error) {
	return r.getByToken(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), token)
}

func (r *GormAlternateRecipientRepository) getByToken(
	tx *gorm.DB, token recipient.Token,
) (*recipient.AlternateRecipient, error) {
	var dto AlternateRecipientDTO
	if err := tx.First(&dto, "token = ?", token.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("share link", token.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAlternateRecipientRepository) ListExpirableForUpdate(
	ctx context.Context, now time.Time, limit int,
) ([]*recipient.AlternateRecipient, error) {
	var dtos []AlternateRecipientDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status IN ? AND expires_at < ?", []int{int(recipient.Pending), int(recipient.Active)}, now).
		Order("expires_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	links := make([]*recipient.AlternateRecipient, 0, len(dtos))
	for _, dto := range dtos {
		link, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}
