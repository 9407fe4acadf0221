package confirmation

import (
	"errors"
	"fmt"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

var ErrConfirmationIsNotConstructed = errors.New(
	"Confirmation must be created via NewConfirmation or RestoreConfirmation constructor")

// Outcome tells the caller what a state change led to.
type Outcome int

const (
	OutcomeRecorded Outcome = iota
	OutcomeReadyForAdjudication
	OutcomeDelivered
	OutcomeConflict
	OutcomeAwaitingReschedule
	OutcomeReturned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRecorded:
		return "RECORDED"
	case OutcomeReadyForAdjudication:
		return "READY_FOR_ADJUDICATION"
	case OutcomeDelivered:
		return "DELIVERED"
	case OutcomeConflict:
		return "CONFLICT"
	case OutcomeAwaitingReschedule:
		return "AWAITING_RESCHEDULE"
	case OutcomeReturned:
		return "RETURNED"
	default:
		return "UNKNOWN"
	}
}

// HandoffResult is the verified geometry of a confirmed handoff.
type HandoffResult struct {
	DistanceBetweenParties float64
	DistanceFromScheduled  float64
	HandoffPoint           kernel.GeoPoint
	LocationType           LocationType
}

type Confirmation struct {
	id            kernel.UUID
	shipmentLegID kernel.UUID
	tenantID      kernel.UUID

	agent    Party
	customer Party

	confirmedByAlternate bool
	alternateRecipientID *kernel.UUID

	proximityVerified      bool
	verifiedAt             *time.Time
	distanceBetweenParties *float64
	distanceFromScheduled  *float64
	handoffPoint           *kernel.GeoPoint
	locationType           LocationType
	conflictReason         string

	rescheduleCount     int
	lastRescheduleAt    *time.Time
	nextAttemptAt       *time.Time
	autoReturnInitiated bool

	requiresAgeVerification bool
	minimumAge              int
	ageVerificationStatus   string

	status    Status
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

func NewConfirmation(
	id kernel.UUID,
	shipmentLegID kernel.UUID,
	tenantID kernel.UUID,
	requiresAgeVerification bool,
	minimumAge int,
	now time.Time,
) (*Confirmation, error) {
	if err := errors.Join(
		id.Validate(),
		requiredID("shipmentLegID", shipmentLegID),
		requiredID("tenantID", tenantID),
	); err != nil {
		return nil, err
	}

	return &Confirmation{
		id:                      id,
		shipmentLegID:           shipmentLegID,
		tenantID:                tenantID,
		requiresAgeVerification: requiresAgeVerification,
		minimumAge:              minimumAge,
		status:                  Pending,
		createdAt:               now,
		updatedAt:               now,
		guard:                   guard.NewConstructorGuard(),
	}, nil
}

func (c *Confirmation) Validate() error {
	if c == nil {
		return ErrConfirmationIsNotConstructed
	}
	return c.guard.Validate(ErrConfirmationIsNotConstructed)
}

func (c *Confirmation) ID() kernel.UUID                    { return c.id }
func (c *Confirmation) ShipmentLegID() kernel.UUID         { return c.shipmentLegID }
func (c *Confirmation) TenantID() kernel.UUID              { return c.tenantID }
func (c *Confirmation) Status() Status                     { return c.status }
func (c *Confirmation) Agent() Party                       { return c.agent }
func (c *Confirmation) Customer() Party                    { return c.customer }
func (c *Confirmation) ConfirmedByAlternate() bool         { return c.confirmedByAlternate }
func (c *Confirmation) AlternateRecipientID() *kernel.UUID { return c.alternateRecipientID }
func (c *Confirmation) ProximityVerified() bool            { return c.proximityVerified }
func (c *Confirmation) HandoffPoint() *kernel.GeoPoint     { return c.handoffPoint }
func (c *Confirmation) LocationType() LocationType         { return c.locationType }
func (c *Confirmation) ConflictReason() string             { return c.conflictReason }
func (c *Confirmation) RescheduleCount() int               { return c.rescheduleCount }
func (c *Confirmation) LastRescheduleAt() *time.Time       { return c.lastRescheduleAt }
func (c *Confirmation) NextAttemptAt() *time.Time          { return c.nextAttemptAt }
func (c *Confirmation) AutoReturnInitiated() bool          { return c.autoReturnInitiated }
func (c *Confirmation) RequiresAgeVerification() bool      { return c.requiresAgeVerification }
func (c *Confirmation) MinimumAge() int                    { return c.minimumAge }
func (c *Confirmation) AgeVerificationStatus() string      { return c.ageVerificationStatus }
func (c *Confirmation) UpdatedAt() time.Time               { return c.updatedAt }

func (c *Confirmation) Party(side Side) Party {
	return *c.party(side)
}

// RecordAttestation stores side's attestation. An opposite attestation older than
// the confirmation window is discarded first. The outcome is
// OutcomeReadyForAdjudication when both sides now hold live attestations.
func (c *Confirmation) RecordAttestation(side Side, a Attestation, policy Policy) (Outcome, error) {
	if err := errors.Join(side.Validate(), a.Validate()); err != nil {
		return 0, err
	}
	if !c.status.AcceptsAttestations() {
		return 0, fmt.Errorf("%w: status is %s", errs.ErrConfirmationClosed, c.status)
	}

	own, other := c.party(side), c.party(side.Opposite())
	if own.isLive(a.at, policy.ConfirmationWindow) {
		return 0, fmt.Errorf("%w: %s attested at %s", errs.ErrAlreadyAttested, side, own.attestation.at.Format(time.RFC3339))
	}
	if other.Confirmed() && !other.isLive(a.at, policy.ConfirmationWindow) {
		other.reset()
	}

	own.confirm(a)
	c.updatedAt = a.at

	if other.Confirmed() {
		return OutcomeReadyForAdjudication, nil
	}

	c.status = confirmedStatus(side)
	return OutcomeRecorded, nil
}

// RecordAlternateAttestation stores an alternate recipient's attestation as the customer side.
func (c *Confirmation) RecordAlternateAttestation(recipientID kernel.UUID, a Attestation, policy Policy) (Outcome, error) {
	if err := requiredID("recipientID", recipientID); err != nil {
		return 0, err
	}

	outcome, err := c.RecordAttestation(Customer, a, policy)
	if err != nil {
		return 0, err
	}

	c.confirmedByAlternate = true
	c.alternateRecipientID = &recipientID
	return outcome, nil
}

// CompleteHandoff settles the record after both attestations were found consistent.
func (c *Confirmation) CompleteHandoff(result HandoffResult, now time.Time) error {
	if err := c.requireBothAttested(); err != nil {
		return err
	}
	if err := result.HandoffPoint.Validate(); err != nil {
		return err
	}

	c.proximityVerified = true
	c.verifiedAt = &now
	c.distanceBetweenParties = &result.DistanceBetweenParties
	c.distanceFromScheduled = &result.DistanceFromScheduled
	point := result.HandoffPoint
	c.handoffPoint = &point
	c.locationType = result.LocationType
	c.conflictReason = ""
	c.status = BothConfirmed
	c.updatedAt = now
	return nil
}

// MarkConflict stops the record for manual review.
func (c *Confirmation) MarkConflict(reason string, distanceBetweenParties *float64, now time.Time) error {
	if c.status.IsImmutable() || c.status == Conflict {
		return fmt.Errorf("%w: status is %s", errs.ErrConfirmationClosed, c.status)
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.proximityVerified = false
	c.distanceBetweenParties = distanceBetweenParties
	c.conflictReason = reason
	c.status = Conflict
	c.updatedAt = now
	return nil
}

// MarkUnavailable records that side reports the counterpart as absent. Mutual
// unavailability is decided here: either a reschedule is booked or, with the
// retries used up, the record is returned. A live attestation of the other side
// is kept, so that side still adjudicates once this side attests.
func (c *Confirmation) MarkUnavailable(side Side, reason string, now time.Time, policy Policy) (Outcome, error) {
	if err := side.Validate(); err != nil {
		return 0, err
	}
	if !c.status.AcceptsAttestations() {
		return 0, fmt.Errorf("%w: status is %s", errs.ErrConfirmationClosed, c.status)
	}

	own, other := c.party(side), c.party(side.Opposite())
	if own.isLive(now, policy.ConfirmationWindow) {
		return 0, fmt.Errorf("%w: %s already attested presence", errs.ErrAlreadyAttested, side)
	}
	if other.Confirmed() && !other.isLive(now, policy.ConfirmationWindow) {
		other.reset()
	}

	own.markUnavailable(reason, now)
	c.updatedAt = now

	if other.Unavailable() {
		return c.handleBothUnavailable(now, policy), nil
	}

	c.status = unavailableStatus(side)
	return OutcomeRecorded, nil
}

func (c *Confirmation) handleBothUnavailable(now time.Time, policy Policy) Outcome {
	if c.rescheduleCount < policy.MaxReschedules {
		c.rescheduleCount++
		c.lastRescheduleAt = &now
		next := now.Add(policy.RescheduleDelay)
		c.nextAttemptAt = &next
		c.status = BothUnavailable
		c.updatedAt = now
		return OutcomeAwaitingReschedule
	}

	c.returnShipment(now)
	return OutcomeReturned
}

// IsDueForReopen reports whether the reschedule sweep should reopen the record at now.
func (c *Confirmation) IsDueForReopen(now time.Time, policy Policy) bool {
	return c.status == BothUnavailable &&
		c.nextAttemptAt != nil && !c.nextAttemptAt.After(now) &&
		c.rescheduleCount < policy.MaxReschedules
}

// Reopen clears both sides so a new attempt can be made.
func (c *Confirmation) Reopen(now time.Time, policy Policy) error {
	if !c.IsDueForReopen(now, policy) {
		return fmt.Errorf("%w: status is %s, reschedules used %d of %d",
			errs.ErrConflict, c.status, c.rescheduleCount, policy.MaxReschedules)
	}

	c.agent.reset()
	c.customer.reset()
	c.confirmedByAlternate = false
	c.alternateRecipientID = nil
	c.lastRescheduleAt = &now
	c.nextAttemptAt = nil
	c.status = Pending
	c.updatedAt = now
	return nil
}

// IsDueForAutoReturn reports whether the auto-return sweep should return the record.
func (c *Confirmation) IsDueForAutoReturn(policy Policy) bool {
	return c.status == BothUnavailable &&
		c.rescheduleCount >= policy.MaxReschedules &&
		!c.autoReturnInitiated
}

// AutoReturn returns a record whose reschedules are exhausted. It succeeds at most once.
func (c *Confirmation) AutoReturn(now time.Time, policy Policy) error {
	if !c.IsDueForAutoReturn(policy) {
		return fmt.Errorf("%w: status is %s, auto return initiated %t",
			errs.ErrConfirmationClosed, c.status, c.autoReturnInitiated)
	}

	c.returnShipment(now)
	return nil
}

func (c *Confirmation) returnShipment(now time.Time) {
	c.autoReturnInitiated = true
	c.status = Returned
	c.updatedAt = now
}

// UpdateAgeVerificationStatus keeps a copy of the linked verification status for readers.
func (c *Confirmation) UpdateAgeVerificationStatus(status string, now time.Time) {
	c.ageVerificationStatus = status
	c.updatedAt = now
}

// CanConfirm reports whether side may still submit an attestation.
func (c *Confirmation) CanConfirm(side Side, now time.Time, policy Policy) bool {
	return c.status.AcceptsAttestations() && !c.party(side).isLive(now, policy.ConfirmationWindow)
}

// TimeRemaining is what is left of the confirmation window opened by the
// attesting side, preferring side's own attestation over the counterpart's.
func (c *Confirmation) TimeRemaining(side Side, now time.Time, policy Policy) time.Duration {
	if !c.status.AcceptsAttestations() {
		return 0
	}

	for _, p := range []*Party{c.party(side), c.party(side.Opposite())} {
		if p.attestation == nil {
			continue
		}
		remaining := policy.ConfirmationWindow - now.Sub(p.attestation.at)
		if remaining < 0 {
			return 0
		}
		return remaining
	}
	return 0
}

func (c *Confirmation) party(side Side) *Party {
	if side == Agent {
		return &c.agent
	}
	return &c.customer
}

func (c *Confirmation) requireBothAttested() error {
	if !c.status.AcceptsAttestations() {
		return fmt.Errorf("%w: status is %s", errs.ErrConfirmationClosed, c.status)
	}
	if !c.agent.Confirmed() || !c.customer.Confirmed() {
		return fmt.Errorf("%w: both sides must attest before adjudication", errs.ErrConflict)
	}
	return nil
}

func requiredID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
