// Package ageverificationrepo persists the age check of a confirmation record.
package ageverificationrepo

import (
	"errors"
	"time"

	"handoff/internal/adapters/out/postgres/mapping"
	"handoff/internal/core/domain/model/ageverification"

	"github.com/google/uuid"
)

type AgeVerificationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConfirmationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ShipmentLegID  uuid.UUID `gorm:"type:uuid;index;not null"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null"`

	Method      string `gorm:"size:32;not null"`
	Status      string `gorm:"size:32;not null"`
	AgeVerified bool   `gorm:"not null;default:false"`

	PersonUserID      *uuid.UUID `gorm:"type:uuid"`
	PersonName        string
	PersonPhone       string `gorm:"size:32"`
	PersonIsAlternate bool   `gorm:"not null;default:false"`

	VerifiedAt *time.Time
	UpdatedAt  time.Time
}

func (AgeVerificationDTO) TableName() string {
	return "age_verifications"
}

func fromDomain(v *ageverification.Verification) AgeVerificationDTO {
	person := v.Person()
	return AgeVerificationDTO{
		ID:                v.ID().Bytes(),
		ConfirmationID:    v.ConfirmationID().Bytes(),
		ShipmentLegID:     v.ShipmentLegID().Bytes(),
		TenantID:          v.TenantID().Bytes(),
		Method:            string(v.Method()),
		Status:            string(v.Status()),
		AgeVerified:       v.AgeVerified(),
		PersonUserID:      mapping.UUIDPtr(person.UserID),
		PersonName:        person.Name,
		PersonPhone:       person.Phone,
		PersonIsAlternate: person.IsAlternate,
		VerifiedAt:        v.VerifiedAt(),
		UpdatedAt:         v.UpdatedAt(),
	}
}

func toDomain(dto AgeVerificationDTO) (*ageverification.Verification, error) {
	id, idErr := mapping.UUID(dto.ID)
	confirmationID, confirmationErr := mapping.UUID(dto.ConfirmationID)
	legID, legErr := mapping.UUID(dto.ShipmentLegID)
	tenantID, tenantErr := mapping.UUID(dto.TenantID)
	userID, userErr := mapping.KernelUUIDPtr(dto.PersonUserID)
	if err := errors.Join(idErr, confirmationErr, legErr, tenantErr, userErr); err != nil {
		return nil, err
	}

	return ageverification.RestoreVerification(
		id, confirmationID, legID, tenantID,
		ageverification.Method(dto.Method), ageverification.Status(dto.Status), dto.AgeVerified,
		ageverification.Person{
			UserID:      userID,
			Name:        dto.PersonName,
			Phone:       dto.PersonPhone,
			IsAlternate: dto.PersonIsAlternate,
		},
		dto.VerifiedAt, dto.UpdatedAt,
	)
}
