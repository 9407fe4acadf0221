package recipient

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

const (
	DefaultLinkExpiry = 24 * time.Hour
	maxNameLength     = 100
)

var (
	ErrAlternateRecipientIsNotConstructed = errors.New(
		"AlternateRecipient must be created via NewAlternateRecipient or RestoreAlternateRecipient constructor")

	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// Contact is the person a customer shares the delivery with.
type Contact struct {
	Name   string
	Phone  string
	Email  string
	UserID *kernel.UUID
}

func (c Contact) validate(method ShareMethod) error {
	var errList []error
	name := strings.TrimSpace(c.Name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	} else if len(name) > maxNameLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("name length", len(name), 1, maxNameLength))
	}
	if !phonePattern.MatchString(c.Phone) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%q is not an E.164 number", c.Phone)))
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("email", err))
		}
	} else if method == ShareByEmail {
		errList = append(errList, errs.NewValueIsRequiredError("email"))
	}
	return errors.Join(errList...)
}

type AlternateRecipient struct {
	id             kernel.UUID
	shipmentLegID  kernel.UUID
	tenantID       kernel.UUID
	customerID     kernel.UUID
	confirmationID *kernel.UUID

	contact     Contact
	token       Token
	shareLink   string
	shareMethod ShareMethod

	status    Status
	expiresAt time.Time
	createdAt time.Time

	revokedAt     *time.Time
	revokedBy     *kernel.UUID
	revokedReason string

	confirmedAt                *time.Time
	confirmationLocation       *kernel.GeoPoint
	confirmationAccuracyMeters *float64

	guard guard.ConstructorGuard
}

// NewAlternateRecipient issues an ACTIVE share link that expires after expiry.
func NewAlternateRecipient(
	id kernel.UUID,
	shipmentLegID kernel.UUID,
	tenantID kernel.UUID,
	customerID kernel.UUID,
	contact Contact,
	method ShareMethod,
	token Token,
	shareLink string,
	now time.Time,
	expiry time.Duration,
) (*AlternateRecipient, error) {
	var errList []error
	for name, v := range map[string]kernel.UUID{
		"id": id, "shipmentLegID": shipmentLegID, "tenantID": tenantID, "customerID": customerID,
	} {
		if err := v.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause(name, err))
		}
	}
	if _, err := ParseToken(token.String()); err != nil {
		errList = append(errList, err)
	}
	if _, err := ParseShareMethod(string(method)); err != nil || method == "" {
		errList = append(errList, errs.NewValueIsInvalidError("shareMethod"))
	}
	if expiry <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("expiry", fmt.Errorf("%s is not positive", expiry)))
	}
	errList = append(errList, contact.validate(method))
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	contact.Name = strings.TrimSpace(contact.Name)
	return &AlternateRecipient{
		id:            id,
		shipmentLegID: shipmentLegID,
		tenantID:      tenantID,
		customerID:    customerID,
		contact:       contact,
		token:         token,
		shareLink:     shareLink,
		shareMethod:   method,
		status:        Active,
		expiresAt:     now.Add(expiry),
		createdAt:     now,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (r *AlternateRecipient) Validate() error {
	if r == nil {
		return ErrAlternateRecipientIsNotConstructed
	}
	return r.guard.Validate(ErrAlternateRecipientIsNotConstructed)
}

func (r *AlternateRecipient) ID() kernel.UUID              { return r.id }
func (r *AlternateRecipient) ShipmentLegID() kernel.UUID   { return r.shipmentLegID }
func (r *AlternateRecipient) TenantID() kernel.UUID        { return r.tenantID }
func (r *AlternateRecipient) CustomerID() kernel.UUID      { return r.customerID }
func (r *AlternateRecipient) ConfirmationID() *kernel.UUID { return r.confirmationID }
func (r *AlternateRecipient) Contact() Contact             { return r.contact }
func (r *AlternateRecipient) Token() Token                 { return r.token }
func (r *AlternateRecipient) ShareLink() string            { return r.shareLink }
func (r *AlternateRecipient) ShareMethod() ShareMethod     { return r.shareMethod }
func (r *AlternateRecipient) Status() Status               { return r.status }
func (r *AlternateRecipient) ExpiresAt() time.Time         { return r.expiresAt }
func (r *AlternateRecipient) CreatedAt() time.Time         { return r.createdAt }
func (r *AlternateRecipient) RevokedAt() *time.Time        { return r.revokedAt }
func (r *AlternateRecipient) RevokedBy() *kernel.UUID      { return r.revokedBy }
func (r *AlternateRecipient) RevokedReason() string        { return r.revokedReason }
func (r *AlternateRecipient) ConfirmedAt() *time.Time      { return r.confirmedAt }

func (r *AlternateRecipient) ConfirmationLocation() *kernel.GeoPoint {
	return r.confirmationLocation
}

func (r *AlternateRecipient) ConfirmationAccuracyMeters() *float64 {
	return r.confirmationAccuracyMeters
}

// CheckUsable fails unless the link may still be used to attest at now.
func (r *AlternateRecipient) CheckUsable(now time.Time) error {
	switch {
	case r.status == Revoked || r.revokedAt != nil:
		return errs.ErrRevokedLink
	case r.status == Confirmed:
		return errs.ErrLinkAlreadyUsed
	case r.status == Expired || now.After(r.expiresAt):
		return errs.ErrExpiredLink
	case !r.status.isOpen():
		return fmt.Errorf("%w: status is %s", errs.ErrConflict, r.status)
	}
	return nil
}

// IsExpiredAt reports whether the expiry sweep should close the link.
func (r *AlternateRecipient) IsExpiredAt(now time.Time) bool {
	return r.status.isOpen() && now.After(r.expiresAt)
}

func (r *AlternateRecipient) Expire(now time.Time) error {
	if !r.IsExpiredAt(now) {
		return fmt.Errorf("%w: link %s is %s until %s", errs.ErrConflict, r.id, r.status, r.expiresAt.Format(time.RFC3339))
	}
	r.status = Expired
	return nil
}

// Revoke closes the link for good. A confirmation already made through it stays recorded.
func (r *AlternateRecipient) Revoke(by kernel.UUID, reason string, now time.Time) error {
	if err := by.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("revokedBy", err)
	}
	switch r.status {
	case Revoked:
		return errs.ErrRevokedLink
	case Confirmed:
		return errs.ErrLinkAlreadyUsed
	}

	r.status = Revoked
	r.revokedAt = &now
	r.revokedBy = &by
	r.revokedReason = reason
	return nil
}

// RecordConfirmation marks the link as used for an attestation on confirmationID.
func (r *AlternateRecipient) RecordConfirmation(
	confirmationID kernel.UUID, location kernel.GeoPoint, accuracyMeters float64, now time.Time,
) error {
	if err := r.CheckUsable(now); err != nil {
		return err
	}
	if err := errors.Join(confirmationID.Validate(), location.Validate()); err != nil {
		return err
	}

	r.status = Confirmed
	r.confirmationID = &confirmationID
	r.confirmedAt = &now
	r.confirmationLocation = &location
	r.confirmationAccuracyMeters = &accuracyMeters
	return nil
}
