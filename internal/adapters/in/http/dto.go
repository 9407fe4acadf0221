package http

import (
	"time"

	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/core/application/usecases/queries"
	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type LocationRequest struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	LocationAccuracy float64 `json:"location_accuracy"`
}

// UnavailabilityRequest carries an optional position fix. It is range-checked
// but not stored: an absence report has no location to adjudicate.
type UnavailabilityRequest struct {
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	LocationAccuracy *float64 `json:"location_accuracy,omitempty"`
	Reason           string   `json:"reason"`
}

type Party struct {
	Confirmed         bool       `json:"confirmed"`
	ConfirmedAt       *time.Time `json:"confirmed_at,omitempty"`
	ActorID           *string    `json:"actor_id,omitempty"`
	Location          *GeoPoint  `json:"location,omitempty"`
	LocationAccuracy  *float64   `json:"location_accuracy,omitempty"`
	Unavailable       bool       `json:"unavailable"`
	UnavailableAt     *time.Time `json:"unavailable_at,omitempty"`
	UnavailableReason string     `json:"unavailable_reason,omitempty"`
}

type Confirmation struct {
	ID                      string     `json:"id"`
	ShipmentLegID           string     `json:"shipment_leg_id"`
	Status                  string     `json:"status"`
	Agent                   Party      `json:"agent"`
	Customer                Party      `json:"customer"`
	ConfirmedByAlternate    bool       `json:"confirmed_by_alternate"`
	AlternateRecipientID    *string    `json:"alternate_recipient_id,omitempty"`
	ProximityVerified       bool       `json:"proximity_verified"`
	VerifiedAt              *time.Time `json:"verified_at,omitempty"`
	DistanceBetweenParties  *float64   `json:"distance_between_parties_meters,omitempty"`
	DistanceFromScheduled   *float64   `json:"distance_from_scheduled_meters,omitempty"`
	HandoffPoint            *GeoPoint  `json:"handoff_point,omitempty"`
	LocationType            string     `json:"location_type,omitempty"`
	ConflictReason          string     `json:"conflict_reason,omitempty"`
	RescheduleCount         int        `json:"reschedule_count"`
	NextAttemptAt           *time.Time `json:"next_attempt_at,omitempty"`
	AutoReturnInitiated     bool       `json:"auto_return_initiated"`
	RequiresAgeVerification bool       `json:"requires_age_verification"`
	MinimumAge              int        `json:"minimum_age,omitempty"`
	AgeVerificationStatus   string     `json:"age_verification_status,omitempty"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

type AttestationResult struct {
	Outcome      string       `json:"outcome"`
	Confirmation Confirmation `json:"confirmation"`
}

type ConfirmationStatus struct {
	Exists               bool         `json:"exists"`
	Side                 string       `json:"side"`
	ShipmentLegStatus    string       `json:"shipment_leg_status"`
	CanConfirm           bool         `json:"can_confirm"`
	TimeRemainingSeconds int64        `json:"time_remaining_seconds"`
	IsInProximity        bool         `json:"is_in_proximity"`
	Confirmation         Confirmation `json:"confirmation"`
}

type Recipient struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Email  string  `json:"email,omitempty"`
	UserID *string `json:"user_id,omitempty"`
}

type ShareLinksRequest struct {
	Recipients  []Recipient `json:"recipients"`
	ShareMethod string      `json:"share_method,omitempty"`
	ExpiryHours int         `json:"expiry_hours,omitempty"`
}

type IssuedLink struct {
	RecipientID string    `json:"recipient_id"`
	Name        string    `json:"name"`
	Token       string    `json:"token"`
	ShareLink   string    `json:"share_link"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type ShareLink struct {
	RecipientID string     `json:"recipient_id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email,omitempty"`
	Token       string     `json:"token"`
	ShareLink   string     `json:"share_link"`
	ShareMethod string     `json:"share_method"`
	Status      string     `json:"status"`
	ExpiresAt   time.Time  `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
}

type AgeVerificationPerson struct {
	UserID      *string `json:"user_id,omitempty"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	IsAlternate bool    `json:"is_alternate"`
}

type AgeVerificationRequest struct {
	Method      string                `json:"method"`
	Status      string                `json:"status"`
	AgeVerified bool                  `json:"age_verified"`
	Person      AgeVerificationPerson `json:"person"`
}

type Tracking struct {
	CarrierCode string    `json:"carrier_code"`
	TrackingID  string    `json:"tracking_id"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
}

type ResolvedShareLink struct {
	RecipientID             string             `json:"recipient_id"`
	RecipientName           string             `json:"recipient_name"`
	ShipmentLegID           string             `json:"shipment_leg_id"`
	ShareMethod             string             `json:"share_method"`
	Status                  string             `json:"status"`
	ExpiresAt               time.Time          `json:"expires_at"`
	ScheduledAddress        GeoPoint           `json:"scheduled_address"`
	RequiresAgeVerification bool               `json:"requires_age_verification"`
	MinimumAge              int                `json:"minimum_age,omitempty"`
	Confirmation            ConfirmationStatus `json:"confirmation"`
}

func toGeoPoint(p kernel.GeoPoint) GeoPoint {
	return GeoPoint{Latitude: p.Latitude(), Longitude: p.Longitude()}
}

func toGeoPointPtr(p *kernel.GeoPoint) *GeoPoint {
	if p == nil {
		return nil
	}
	g := toGeoPoint(*p)
	return &g
}

func toIDPtr(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toParty(p confirmation.PartySnapshot) Party {
	return Party{
		Confirmed:         p.Confirmed(),
		ConfirmedAt:       p.ConfirmedAt,
		ActorID:           toIDPtr(p.ActorID),
		Location:          toGeoPointPtr(p.Location),
		LocationAccuracy:  p.AccuracyMeters,
		Unavailable:       p.Unavailable,
		UnavailableAt:     p.UnavailableAt,
		UnavailableReason: p.UnavailableReason,
	}
}

func toConfirmation(s confirmation.Snapshot) Confirmation {
	return Confirmation{
		ID:                      s.ID.String(),
		ShipmentLegID:           s.ShipmentLegID.String(),
		Status:                  s.Status.String(),
		Agent:                   toParty(s.Agent),
		Customer:                toParty(s.Customer),
		ConfirmedByAlternate:    s.ConfirmedByAlternate,
		AlternateRecipientID:    toIDPtr(s.AlternateRecipientID),
		ProximityVerified:       s.ProximityVerified,
		VerifiedAt:              s.VerifiedAt,
		DistanceBetweenParties:  s.DistanceBetweenParties,
		DistanceFromScheduled:   s.DistanceFromScheduled,
		HandoffPoint:            toGeoPointPtr(s.HandoffPoint),
		LocationType:            s.LocationType.String(),
		ConflictReason:          s.ConflictReason,
		RescheduleCount:         s.RescheduleCount,
		NextAttemptAt:           s.NextAttemptAt,
		AutoReturnInitiated:     s.AutoReturnInitiated,
		RequiresAgeVerification: s.RequiresAgeVerification,
		MinimumAge:              s.MinimumAge,
		AgeVerificationStatus:   s.AgeVerificationStatus,
		UpdatedAt:               s.UpdatedAt,
	}
}

func toAttestationResult(r commands.AttestationResult) AttestationResult {
	return AttestationResult{Outcome: r.Outcome.String(), Confirmation: toConfirmation(r.Snapshot)}
}

func toConfirmationStatus(r queries.ConfirmationStatusResponse) ConfirmationStatus {
	return ConfirmationStatus{
		Exists:               r.Exists,
		Side:                 r.Side.String(),
		ShipmentLegStatus:    r.ShipmentLegStatus.String(),
		CanConfirm:           r.CanConfirm,
		TimeRemainingSeconds: int64(r.TimeRemaining / time.Second),
		IsInProximity:        r.IsInProximity,
		Confirmation:         toConfirmation(r.Confirmation),
	}
}
