package recipient

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

// Snapshot is the flat form of an AlternateRecipient.
type Snapshot struct {
	ID             kernel.UUID
	ShipmentLegID  kernel.UUID
	TenantID       kernel.UUID
	CustomerID     kernel.UUID
	ConfirmationID *kernel.UUID

	Contact     Contact
	Token       Token
	ShareLink   string
	ShareMethod ShareMethod

	Status    Status
	ExpiresAt time.Time
	CreatedAt time.Time

	RevokedAt     *time.Time
	RevokedBy     *kernel.UUID
	RevokedReason string

	ConfirmedAt                *time.Time
	ConfirmationLocation       *kernel.GeoPoint
	ConfirmationAccuracyMeters *float64
}

func (r *AlternateRecipient) Snapshot() Snapshot {
	return Snapshot{
		ID:                         r.id,
		ShipmentLegID:              r.shipmentLegID,
		TenantID:                   r.tenantID,
		CustomerID:                 r.customerID,
		ConfirmationID:             r.confirmationID,
		Contact:                    r.contact,
		Token:                      r.token,
		ShareLink:                  r.shareLink,
		ShareMethod:                r.shareMethod,
		Status:                     r.status,
		ExpiresAt:                  r.expiresAt,
		CreatedAt:                  r.createdAt,
		RevokedAt:                  r.revokedAt,
		RevokedBy:                  r.revokedBy,
		RevokedReason:              r.revokedReason,
		ConfirmedAt:                r.confirmedAt,
		ConfirmationLocation:       r.confirmationLocation,
		ConfirmationAccuracyMeters: r.confirmationAccuracyMeters,
	}
}

func RestoreAlternateRecipient(s Snapshot) (*AlternateRecipient, error) {
	_, tokenErr := ParseToken(s.Token.String())
	if err := errors.Join(
		s.ID.Validate(),
		s.ShipmentLegID.Validate(),
		s.TenantID.Validate(),
		s.CustomerID.Validate(),
		s.Status.Validate(),
		tokenErr,
	); err != nil {
		return nil, err
	}
	if s.ExpiresAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("expiresAt")
	}

	return &AlternateRecipient{
		id:                         s.ID,
		shipmentLegID:              s.ShipmentLegID,
		tenantID:                   s.TenantID,
		customerID:                 s.CustomerID,
		confirmationID:             s.ConfirmationID,
		contact:                    s.Contact,
		token:                      s.Token,
		shareLink:                  s.ShareLink,
		shareMethod:                s.ShareMethod,
		status:                     s.Status,
		expiresAt:                  s.ExpiresAt,
		createdAt:                  s.CreatedAt,
		revokedAt:                  s.RevokedAt,
		revokedBy:                  s.RevokedBy,
		revokedReason:              s.RevokedReason,
		confirmedAt:                s.ConfirmedAt,
		confirmationLocation:       s.ConfirmationLocation,
		confirmationAccuracyMeters: s.ConfirmationAccuracyMeters,
		guard:                      guard.NewConstructorGuard(),
	}, nil
}
