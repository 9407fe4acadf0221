// Package recipientrepo persists alternate recipients and their share links.
package recipientrepo

import (
	"errors"
	"time"

	"handoff/internal/adapters/out/postgres/mapping"
	"handoff/internal/core/domain/model/recipient"

	"github.com/google/uuid"
)

type AlternateRecipientDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentLegID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	TenantID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;not null"`
	ConfirmationID *uuid.UUID `gorm:"type:uuid"`

	Name        string     `gorm:"size:255;not null"`
	Phone       string     `gorm:"size:32"`
	Email       string     `gorm:"size:255"`
	UserID      *uuid.UUID `gorm:"type:uuid"`
	Token       string     `gorm:"size:32;uniqueIndex;not null"`
	ShareLink   string     `gorm:"size:512"`
	ShareMethod string     `gorm:"size:16"`

	Status    int       `gorm:"index"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time

	RevokedAt     *time.Time
	RevokedBy     *uuid.UUID `gorm:"type:uuid"`
	RevokedReason string

	ConfirmedAt                *time.Time
	ConfirmationLocation       mapping.NullableGeoPointDTO `gorm:"embedded;embeddedPrefix:confirmation_"`
	ConfirmationAccuracyMeters *float64
}

func (AlternateRecipientDTO) TableName() string {
	return "alternate_recipients"
}

func fromDomain(r *recipient.AlternateRecipient) AlternateRecipientDTO {
	s := r.Snapshot()
	return AlternateRecipientDTO{
		ID:                         s.ID.Bytes(),
		ShipmentLegID:              s.ShipmentLegID.Bytes(),
		TenantID:                   s.TenantID.Bytes(),
		CustomerID:                 s.CustomerID.Bytes(),
		ConfirmationID:             mapping.UUIDPtr(s.ConfirmationID),
		Name:                       s.Contact.Name,
		Phone:                      s.Contact.Phone,
		Email:                      s.Contact.Email,
		UserID:                     mapping.UUIDPtr(s.Contact.UserID),
		Token:                      s.Token.String(),
		ShareLink:                  s.ShareLink,
		ShareMethod:                string(s.ShareMethod),
		Status:                     int(s.Status),
		ExpiresAt:                  s.ExpiresAt,
		CreatedAt:                  s.CreatedAt,
		RevokedAt:                  s.RevokedAt,
		RevokedBy:                  mapping.UUIDPtr(s.RevokedBy),
		RevokedReason:              s.RevokedReason,
		ConfirmedAt:                s.ConfirmedAt,
		ConfirmationLocation:       mapping.NullableGeoPointFromDomain(s.ConfirmationLocation),
		ConfirmationAccuracyMeters: s.ConfirmationAccuracyMeters,
	}
}

func toDomain(dto AlternateRecipientDTO) (*recipient.AlternateRecipient, error) {
	id, idErr := mapping.UUID(dto.ID)
	legID, legErr := mapping.UUID(dto.ShipmentLegID)
	tenantID, tenantErr := mapping.UUID(dto.TenantID)
	customerID, customerErr := mapping.UUID(dto.CustomerID)
	confirmationID, confirmationErr := mapping.KernelUUIDPtr(dto.ConfirmationID)
	userID, userErr := mapping.KernelUUIDPtr(dto.UserID)
	revokedBy, revokedErr := mapping.KernelUUIDPtr(dto.RevokedBy)
	location, locationErr := dto.ConfirmationLocation.ToDomain()
	if err := errors.Join(
		idErr, legErr, tenantErr, customerErr, confirmationErr, userErr, revokedErr, locationErr,
	); err != nil {
		return nil, err
	}

	return recipient.RestoreAlternateRecipient(recipient.Snapshot{
		ID:             id,
		ShipmentLegID:  legID,
		TenantID:       tenantID,
		CustomerID:     customerID,
		ConfirmationID: confirmationID,
		Contact: recipient.Contact{
			Name:   dto.Name,
			Phone:  dto.Phone,
			Email:  dto.Email,
			UserID: userID,
		},
		Token:                      recipient.Token(dto.Token),
		ShareLink:                  dto.ShareLink,
		ShareMethod:                recipient.ShareMethod(dto.ShareMethod),
		Status:                     recipient.Status(dto.Status),
		ExpiresAt:                  dto.ExpiresAt,
		CreatedAt:                  dto.CreatedAt,
		RevokedAt:                  dto.RevokedAt,
		RevokedBy:                  revokedBy,
		RevokedReason:              dto.RevokedReason,
		ConfirmedAt:                dto.ConfirmedAt,
		ConfirmationLocation:       location,
		ConfirmationAccuracyMeters: dto.ConfirmationAccuracyMeters,
	})
}
