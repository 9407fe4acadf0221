package confirmation

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

// PartySnapshot is the flat form of a Party used by storage and read models.
type PartySnapshot struct {
	ActorID           *kernel.UUID
	ConfirmedAt       *time.Time
	Location          *kernel.GeoPoint
	AccuracyMeters    *float64
	Unavailable       bool
	UnavailableAt     *time.Time
	UnavailableReason string
}

func (p PartySnapshot) Confirmed() bool {
	return p.ActorID != nil
}

// Snapshot is the flat form of a Confirmation.
type Snapshot struct {
	ID            kernel.UUID
	ShipmentLegID kernel.UUID
	TenantID      kernel.UUID
	Status        Status

	Agent    PartySnapshot
	Customer PartySnapshot

	ConfirmedByAlternate bool
	AlternateRecipientID *kernel.UUID

	ProximityVerified      bool
	VerifiedAt             *time.Time
	DistanceBetweenParties *float64
	DistanceFromScheduled  *float64
	HandoffPoint           *kernel.GeoPoint
	LocationType           LocationType
	ConflictReason         string

	RescheduleCount     int
	LastRescheduleAt    *time.Time
	NextAttemptAt       *time.Time
	AutoReturnInitiated bool

	RequiresAgeVerification bool
	MinimumAge              int
	AgeVerificationStatus   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Confirmation) Snapshot() Snapshot {
	return Snapshot{
		ID:                      c.id,
		ShipmentLegID:           c.shipmentLegID,
		TenantID:                c.tenantID,
		Status:                  c.status,
		Agent:                   c.agent.snapshot(),
		Customer:                c.customer.snapshot(),
		ConfirmedByAlternate:    c.confirmedByAlternate,
		AlternateRecipientID:    c.alternateRecipientID,
		ProximityVerified:       c.proximityVerified,
		VerifiedAt:              c.verifiedAt,
		DistanceBetweenParties:  c.distanceBetweenParties,
		DistanceFromScheduled:   c.distanceFromScheduled,
		HandoffPoint:            c.handoffPoint,
		LocationType:            c.locationType,
		ConflictReason:          c.conflictReason,
		RescheduleCount:         c.rescheduleCount,
		LastRescheduleAt:        c.lastRescheduleAt,
		NextAttemptAt:           c.nextAttemptAt,
		AutoReturnInitiated:     c.autoReturnInitiated,
		RequiresAgeVerification: c.requiresAgeVerification,
		MinimumAge:              c.minimumAge,
		AgeVerificationStatus:   c.ageVerificationStatus,
		CreatedAt:               c.createdAt,
		UpdatedAt:               c.updatedAt,
	}
}

// RestoreConfirmation rebuilds a record from storage.
func RestoreConfirmation(s Snapshot) (*Confirmation, error) {
	agent, agentErr := restoreParty("agent", s.Agent)
	customer, customerErr := restoreParty("customer", s.Customer)
	if err := errors.Join(
		s.ID.Validate(),
		requiredID("shipmentLegID", s.ShipmentLegID),
		requiredID("tenantID", s.TenantID),
		s.Status.Validate(),
		agentErr,
		customerErr,
	); err != nil {
		return nil, err
	}
	if s.RescheduleCount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("rescheduleCount", s.RescheduleCount, 0, "unbounded")
	}

	return &Confirmation{
		id:                      s.ID,
		shipmentLegID:           s.ShipmentLegID,
		tenantID:                s.TenantID,
		agent:                   agent,
		customer:                customer,
		confirmedByAlternate:    s.ConfirmedByAlternate,
		alternateRecipientID:    s.AlternateRecipientID,
		proximityVerified:       s.ProximityVerified,
		verifiedAt:              s.VerifiedAt,
		distanceBetweenParties:  s.DistanceBetweenParties,
		distanceFromScheduled:   s.DistanceFromScheduled,
		handoffPoint:            s.HandoffPoint,
		locationType:            s.LocationType,
		conflictReason:          s.ConflictReason,
		rescheduleCount:         s.RescheduleCount,
		lastRescheduleAt:        s.LastRescheduleAt,
		nextAttemptAt:           s.NextAttemptAt,
		autoReturnInitiated:     s.AutoReturnInitiated,
		requiresAgeVerification: s.RequiresAgeVerification,
		minimumAge:              s.MinimumAge,
		ageVerificationStatus:   s.AgeVerificationStatus,
		status:                  s.Status,
		createdAt:               s.CreatedAt,
		updatedAt:               s.UpdatedAt,
		guard:                   guard.NewConstructorGuard(),
	}, nil
}

func (p Party) snapshot() PartySnapshot {
	s := PartySnapshot{
		Unavailable:       p.unavailable,
		UnavailableAt:     p.unavailableAt,
		UnavailableReason: p.unavailableReason,
	}
	if p.attestation != nil {
		actor := p.attestation.actorID
		at := p.attestation.at
		location := p.attestation.location
		accuracy := p.attestation.accuracyMeters
		s.ActorID = &actor
		s.ConfirmedAt = &at
		s.Location = &location
		s.AccuracyMeters = &accuracy
	}
	return s
}

func restoreParty(name string, s PartySnapshot) (Party, error) {
	p := Party{
		unavailable:       s.Unavailable,
		unavailableAt:     s.UnavailableAt,
		unavailableReason: s.UnavailableReason,
	}
	if s.ActorID == nil {
		return p, nil
	}
	if s.ConfirmedAt == nil || s.Location == nil || s.AccuracyMeters == nil {
		return Party{}, errs.NewValueIsRequiredError(name + " attestation details")
	}

	a, err := NewAttestation(*s.ActorID, *s.Location, *s.AccuracyMeters, *s.ConfirmedAt)
	if err != nil {
		return Party{}, err
	}
	p.attestation = &a
	return p, nil
}
