// Package confirmationrepo persists confirmation records, one per shipment leg.
package confirmationrepo

import (
	"errors"
	"time"

	"handoff/internal/adapters/out/postgres/mapping"
	"handoff/internal/core/domain/model/confirmation"

	"github.com/google/uuid"
)

type ConfirmationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentLegID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	TenantID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Status        int       `gorm:"index"`

	Agent    PartyDTO `gorm:"embedded;embeddedPrefix:agent_"`
	Customer PartyDTO `gorm:"embedded;embeddedPrefix:customer_"`

	ConfirmedByAlternate bool       `gorm:"not null;default:false"`
	AlternateRecipientID *uuid.UUID `gorm:"type:uuid"`

	ProximityVerified      bool `gorm:"not null;default:false"`
	VerifiedAt             *time.Time
	DistanceBetweenParties *float64
	DistanceFromScheduled  *float64
	HandoffPoint           mapping.NullableGeoPointDTO `gorm:"embedded;embeddedPrefix:handoff_"`
	LocationType           int
	ConflictReason         string

	RescheduleCount     int `gorm:"not null;default:0"`
	LastRescheduleAt    *time.Time
	NextAttemptAt       *time.Time `gorm:"index"`
	AutoReturnInitiated bool       `gorm:"not null;default:false"`

	RequiresAgeVerification bool `gorm:"not null;default:false"`
	MinimumAge              int
	AgeVerificationStatus   string `gorm:"size:32"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ConfirmationDTO) TableName() string {
	return "confirmations"
}

// PartyDTO holds one side of the handoff.
type PartyDTO struct {
	ActorID           *uuid.UUID `gorm:"type:uuid"`
	ConfirmedAt       *time.Time
	Location          mapping.NullableGeoPointDTO `gorm:"embedded;embeddedPrefix:location_"`
	AccuracyMeters    *float64
	Unavailable       bool `gorm:"not null;default:false"`
	UnavailableAt     *time.Time
	UnavailableReason string
}

func fromDomain(c *confirmation.Confirmation) ConfirmationDTO {
	s := c.Snapshot()
	return ConfirmationDTO{
		ID:                      s.ID.Bytes(),
		ShipmentLegID:           s.ShipmentLegID.Bytes(),
		TenantID:                s.TenantID.Bytes(),
		Status:                  int(s.Status),
		Agent:                   partyFromSnapshot(s.Agent),
		Customer:                partyFromSnapshot(s.Customer),
		ConfirmedByAlternate:    s.ConfirmedByAlternate,
		AlternateRecipientID:    mapping.UUIDPtr(s.AlternateRecipientID),
		ProximityVerified:       s.ProximityVerified,
		VerifiedAt:              s.VerifiedAt,
		DistanceBetweenParties:  s.DistanceBetweenParties,
		DistanceFromScheduled:   s.DistanceFromScheduled,
		HandoffPoint:            mapping.NullableGeoPointFromDomain(s.HandoffPoint),
		LocationType:            int(s.LocationType),
		ConflictReason:          s.ConflictReason,
		RescheduleCount:         s.RescheduleCount,
		LastRescheduleAt:        s.LastRescheduleAt,
		NextAttemptAt:           s.NextAttemptAt,
		AutoReturnInitiated:     s.AutoReturnInitiated,
		RequiresAgeVerification: s.RequiresAgeVerification,
		MinimumAge:              s.MinimumAge,
		AgeVerificationStatus:   s.AgeVerificationStatus,
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
	}
}

func partyFromSnapshot(p confirmation.PartySnapshot) PartyDTO {
	return PartyDTO{
		ActorID:           mapping.UUIDPtr(p.ActorID),
		ConfirmedAt:       p.ConfirmedAt,
		Location:          mapping.NullableGeoPointFromDomain(p.Location),
		AccuracyMeters:    p.AccuracyMeters,
		Unavailable:       p.Unavailable,
		UnavailableAt:     p.UnavailableAt,
		UnavailableReason: p.UnavailableReason,
	}
}

func toDomain(dto ConfirmationDTO) (*confirmation.Confirmation, error) {
	s, err := toSnapshot(dto)
	if err != nil {
		return nil, err
	}
	return confirmation.RestoreConfirmation(s)
}

func toSnapshot(dto ConfirmationDTO) (confirmation.Snapshot, error) {
	id, idErr := mapping.UUID(dto.ID)
	legID, legErr := mapping.UUID(dto.ShipmentLegID)
	tenantID, tenantErr := mapping.UUID(dto.TenantID)
	alternateID, alternateErr := mapping.KernelUUIDPtr(dto.AlternateRecipientID)
	handoffPoint, pointErr := dto.HandoffPoint.ToDomain()
	agent, agentErr := partyToSnapshot(dto.Agent)
	customer, customerErr := partyToSnapshot(dto.Customer)
	if err := errors.Join(idErr, legErr, tenantErr, alternateErr, pointErr, agentErr, customerErr); err != nil {
		return confirmation.Snapshot{}, err
	}

	return confirmation.Snapshot{
		ID:                      id,
		ShipmentLegID:           legID,
		TenantID:                tenantID,
		Status:                  confirmation.Status(dto.Status),
		Agent:                   agent,
		Customer:                customer,
		ConfirmedByAlternate:    dto.ConfirmedByAlternate,
		AlternateRecipientID:    alternateID,
		ProximityVerified:       dto.ProximityVerified,
		VerifiedAt:              dto.VerifiedAt,
		DistanceBetweenParties:  dto.DistanceBetweenParties,
		DistanceFromScheduled:   dto.DistanceFromScheduled,
		HandoffPoint:            handoffPoint,
		LocationType:            confirmation.LocationType(dto.LocationType),
		ConflictReason:          dto.ConflictReason,
		RescheduleCount:         dto.RescheduleCount,
		LastRescheduleAt:        dto.LastRescheduleAt,
		NextAttemptAt:           dto.NextAttemptAt,
		AutoReturnInitiated:     dto.AutoReturnInitiated,
		RequiresAgeVerification: dto.RequiresAgeVerification,
		MinimumAge:              dto.MinimumAge,
		AgeVerificationStatus:   dto.AgeVerificationStatus,
		CreatedAt:               dto.CreatedAt,
		UpdatedAt:               dto.UpdatedAt,
	}, nil
}

func partyToSnapshot(dto PartyDTO) (confirmation.PartySnapshot, error) {
	actorID, actorErr := mapping.KernelUUIDPtr(dto.ActorID)
	location, locationErr := dto.Location.ToDomain()
	if err := errors.Join(actorErr, locationErr); err != nil {
		return confirmation.PartySnapshot{}, err
	}

	return confirmation.PartySnapshot{
		ActorID:           actorID,
		ConfirmedAt:       dto.ConfirmedAt,
		Location:          location,
		AccuracyMeters:    dto.AccuracyMeters,
		Unavailable:       dto.Unavailable,
		UnavailableAt:     dto.UnavailableAt,
		UnavailableReason: dto.UnavailableReason,
	}, nil
}
