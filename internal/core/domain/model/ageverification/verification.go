package ageverification

import (
	"errors"
	"fmt"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

type Status string

const (
	StatusPending                Status = "PENDING"
	StatusVerificationInProgress Status = "VERIFICATION_IN_PROGRESS"
	StatusVerified               Status = "VERIFIED"
	StatusFailed                 Status = "FAILED"
	StatusRejected               Status = "REJECTED"
	StatusManualReview           Status = "MANUAL_REVIEW"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusVerificationInProgress, StatusVerified, StatusFailed, StatusRejected, StatusManualReview:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is unknown", s))
	}
}

type Method string

const (
	MethodPhoto         Method = "PHOTO_VERIFICATION"
	MethodID            Method = "ID_VERIFICATION"
	MethodAadhaarFaceRD Method = "AADHAAR_FACE_RD"
	MethodVideoKYC      Method = "VIDEO_KYC"
)

func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodPhoto, MethodID, MethodAadhaarFaceRD, MethodVideoKYC:
		return m, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is unknown", s))
	}
}

// Person is whoever presented themselves for the check.
type Person struct {
	UserID      *kernel.UUID
	Name        string
	Phone       string
	IsAlternate bool
}

var ErrVerificationIsNotConstructed = errors.New(
	"Verification must be created via NewVerification or RestoreVerification constructor")

type Verification struct {
	id             kernel.UUID
	confirmationID kernel.UUID
	shipmentLegID  kernel.UUID
	tenantID       kernel.UUID

	method      Method
	status      Status
	ageVerified bool
	person      Person
	verifiedAt  *time.Time
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

func NewVerification(
	id kernel.UUID, confirmationID kernel.UUID, shipmentLegID kernel.UUID, tenantID kernel.UUID,
	method Method, now time.Time,
) (*Verification, error) {
	_, methodErr := ParseMethod(string(method))
	if err := errors.Join(
		id.Validate(), confirmationID.Validate(), shipmentLegID.Validate(), tenantID.Validate(), methodErr,
	); err != nil {
		return nil, err
	}

	return &Verification{
		id:             id,
		confirmationID: confirmationID,
		shipmentLegID:  shipmentLegID,
		tenantID:       tenantID,
		method:         method,
		status:         StatusPending,
		updatedAt:      now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func RestoreVerification(
	id kernel.UUID, confirmationID kernel.UUID, shipmentLegID kernel.UUID, tenantID kernel.UUID,
	method Method, status Status, ageVerified bool, person Person, verifiedAt *time.Time, updatedAt time.Time,
) (*Verification, error) {
	v, err := NewVerification(id, confirmationID, shipmentLegID, tenantID, method, updatedAt)
	if err != nil {
		return nil, err
	}
	if _, err = ParseStatus(string(status)); err != nil {
		return nil, err
	}

	v.status = status
	v.ageVerified = ageVerified
	v.person = person
	v.verifiedAt = verifiedAt
	return v, nil
}

func (v *Verification) Validate() error {
	if v == nil {
		return ErrVerificationIsNotConstructed
	}
	return v.guard.Validate(ErrVerificationIsNotConstructed)
}

func (v *Verification) ID() kernel.UUID             { return v.id }
func (v *Verification) ConfirmationID() kernel.UUID { return v.confirmationID }
func (v *Verification) ShipmentLegID() kernel.UUID  { return v.shipmentLegID }
func (v *Verification) TenantID() kernel.UUID       { return v.tenantID }
func (v *Verification) Method() Method              { return v.method }
func (v *Verification) Status() Status              { return v.status }
func (v *Verification) AgeVerified() bool           { return v.ageVerified }
func (v *Verification) Person() Person              { return v.person }
func (v *Verification) VerifiedAt() *time.Time      { return v.verifiedAt }
func (v *Verification) UpdatedAt() time.Time        { return v.updatedAt }

// Satisfies is true only for a VERIFIED check that confirmed the age.
func (v *Verification) Satisfies() bool {
	return v.status == StatusVerified && v.ageVerified
}

// RecordResult stores the external workflow's verdict. ageVerified is only
// accepted together with StatusVerified.
func (v *Verification) RecordResult(method Method, status Status, ageVerified bool, person Person, now time.Time) error {
	if _, err := ParseMethod(string(method)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	if ageVerified && status != StatusVerified {
		return errs.NewValueIsInvalidErrorWithCause(
			"ageVerified", fmt.Errorf("cannot be set with status %s", status))
	}

	v.method = method
	v.status = status
	v.ageVerified = ageVerified
	v.person = person
	v.updatedAt = now
	if status == StatusVerified {
		v.verifiedAt = &now
	} else {
		v.verifiedAt = nil
	}
	return nil
}
