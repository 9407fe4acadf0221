package confirmation

import (
	"errors"
	"fmt"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

var ErrAttestationIsNotConstructed = errs.NewValueIsRequiredError(
	"attestation must be created via NewAttestation constructor")

// Attestation is one party's claim of presence: who, where, how precise and when.
type Attestation struct {
	actorID        kernel.UUID
	location       kernel.GeoPoint
	accuracyMeters float64
	at             time.Time
	guard          guard.ConstructorGuard
}

func NewAttestation(actorID kernel.UUID, location kernel.GeoPoint, accuracyMeters float64, at time.Time) (Attestation, error) {
	var errList []error
	if err := actorID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("actorID", err))
	}
	if err := location.Validate(); err != nil {
		errList = append(errList, err)
	}
	if accuracyMeters <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"accuracy", fmt.Errorf("%.2f is not greater than 0", accuracyMeters)))
	}
	if at.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("at"))
	}
	if err := errors.Join(errList...); err != nil {
		return Attestation{}, err
	}

	return Attestation{
		actorID:        actorID,
		location:       location,
		accuracyMeters: accuracyMeters,
		at:             at,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (a Attestation) Validate() error {
	return a.guard.Validate(ErrAttestationIsNotConstructed)
}

func (a Attestation) ActorID() kernel.UUID {
	return a.actorID
}

func (a Attestation) Location() kernel.GeoPoint {
	return a.location
}

func (a Attestation) AccuracyMeters() float64 {
	return a.accuracyMeters
}

func (a Attestation) At() time.Time {
	return a.at
}

// Party is the state one side has contributed to the record.
type Party struct {
	attestation *Attestation

	unavailable       bool
	unavailableAt     *time.Time
	unavailableReason string
}

func (p Party) Confirmed() bool {
	return p.attestation != nil
}

func (p Party) Attestation() *Attestation {
	return p.attestation
}

func (p Party) Unavailable() bool {
	return p.unavailable
}

func (p Party) UnavailableAt() *time.Time {
	return p.unavailableAt
}

func (p Party) UnavailableReason() string {
	return p.unavailableReason
}

// isLive reports whether the party's attestation is still inside the window at now.
func (p Party) isLive(now time.Time, window time.Duration) bool {
	return p.attestation != nil && now.Sub(p.attestation.at) <= window
}

func (p *Party) confirm(a Attestation) {
	p.attestation = &a
	p.unavailable = false
	p.unavailableAt = nil
	p.unavailableReason = ""
}

func (p *Party) markUnavailable(reason string, now time.Time) {
	p.attestation = nil
	p.unavailable = true
	p.unavailableAt = &now
	p.unavailableReason = reason
}

func (p *Party) reset() {
	*p = Party{}
}
