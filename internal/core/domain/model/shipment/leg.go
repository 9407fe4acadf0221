package shipment

import (
	"errors"
	"fmt"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

const (
	DefaultProximityRadiusMeters = 50.0
	MinAge                       = 1
	MaxAge                       = 120
)

var ErrLegIsNotConstructed = errors.New("Leg must be created via NewLeg or RestoreLeg constructor")

// Leg is the part of a shipment that ends with a handoff to the customer.
type Leg struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	customerID kernel.UUID
	agentID    *kernel.UUID

	scheduledAddress      kernel.GeoPoint
	proximityRadiusMeters float64

	requiresAgeVerification bool
	minimumAge              int

	carrierCode string
	trackingID  string

	status Status

	guard guard.ConstructorGuard
}

func NewLeg(
	id kernel.UUID,
	tenantID kernel.UUID,
	customerID kernel.UUID,
	scheduledAddress kernel.GeoPoint,
	proximityRadiusMeters float64,
) (*Leg, error) {
	leg := &Leg{
		status: OutForDelivery,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		leg.setID(id),
		leg.setTenantID(tenantID),
		leg.setCustomerID(customerID),
		leg.setScheduledAddress(scheduledAddress),
		leg.setProximityRadius(proximityRadiusMeters),
	); err != nil {
		return nil, err
	}

	return leg, nil
}

// RestoreLeg rebuilds a leg from storage. minimumAge is ignored unless requiresAgeVerification is set.
func RestoreLeg(
	id kernel.UUID,
	tenantID kernel.UUID,
	customerID kernel.UUID,
	agentID *kernel.UUID,
	scheduledAddress kernel.GeoPoint,
	proximityRadiusMeters float64,
	requiresAgeVerification bool,
	minimumAge int,
	carrierCode string,
	trackingID string,
	status Status,
) (*Leg, error) {
	leg, err := NewLeg(id, tenantID, customerID, scheduledAddress, proximityRadiusMeters)
	if err != nil {
		return nil, err
	}

	if agentID != nil {
		if err = leg.AssignAgent(*agentID); err != nil {
			return nil, err
		}
	}
	if requiresAgeVerification {
		if err = leg.RequireAgeVerification(minimumAge); err != nil {
			return nil, err
		}
	}
	leg.carrierCode = carrierCode
	leg.trackingID = trackingID

	if err = status.Validate(); err != nil {
		return nil, err
	}
	leg.status = status

	return leg, nil
}

func (l *Leg) Validate() error {
	if l == nil {
		return ErrLegIsNotConstructed
	}
	return l.guard.Validate(ErrLegIsNotConstructed)
}

func (l *Leg) IsEqual(other *Leg) bool {
	return other != nil && l.id.IsEqual(other.id)
}

func (l *Leg) ID() kernel.UUID {
	return l.id
}

func (l *Leg) TenantID() kernel.UUID {
	return l.tenantID
}

func (l *Leg) CustomerID() kernel.UUID {
	return l.customerID
}

func (l *Leg) AgentID() *kernel.UUID {
	return l.agentID
}

func (l *Leg) ScheduledAddress() kernel.GeoPoint {
	return l.scheduledAddress
}

func (l *Leg) ProximityRadiusMeters() float64 {
	return l.proximityRadiusMeters
}

func (l *Leg) RequiresAgeVerification() bool {
	return l.requiresAgeVerification
}

func (l *Leg) MinimumAge() int {
	return l.minimumAge
}

func (l *Leg) CarrierCode() string {
	return l.carrierCode
}

func (l *Leg) TrackingID() string {
	return l.trackingID
}

func (l *Leg) Status() Status {
	return l.status
}

func (l *Leg) BelongsTo(tenantID kernel.UUID) bool {
	return l.tenantID.IsEqual(tenantID)
}

func (l *Leg) IsCustomer(userID kernel.UUID) bool {
	return l.customerID.IsEqual(userID)
}

// IsAgent reports whether userID may attest as the agent. Legs without an
// assigned agent accept any agent of the tenant.
func (l *Leg) IsAgent(userID kernel.UUID) bool {
	return l.agentID == nil || l.agentID.IsEqual(userID)
}

func (l *Leg) AssignAgent(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	l.agentID = &agentID
	return nil
}

func (l *Leg) RequireAgeVerification(minimumAge int) error {
	if minimumAge < MinAge || minimumAge > MaxAge {
		return errs.NewValueIsOutOfRangeError("minimumAge", minimumAge, MinAge, MaxAge)
	}
	l.requiresAgeVerification = true
	l.minimumAge = minimumAge
	return nil
}

func (l *Leg) AttachCarrier(carrierCode string, trackingID string) error {
	if carrierCode == "" {
		return errs.NewValueIsRequiredError("carrierCode")
	}
	l.carrierCode = carrierCode
	l.trackingID = trackingID
	return nil
}

func (l *Leg) MarkDelivered() error {
	newStatus, err := l.status.Deliver()
	if err != nil {
		return err
	}

	l.status = newStatus
	return nil
}

func (l *Leg) MarkReturned() error {
	newStatus, err := l.status.Return()
	if err != nil {
		return err
	}

	l.status = newStatus
	return nil
}

func (l *Leg) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Leg) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	l.tenantID = id
	return nil
}

func (l *Leg) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	l.customerID = id
	return nil
}

func (l *Leg) setScheduledAddress(address kernel.GeoPoint) error {
	if err := address.Validate(); err != nil {
		return err
	}
	l.scheduledAddress = address
	return nil
}

func (l *Leg) setProximityRadius(radius float64) error {
	if radius <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("proximityRadiusMeters", fmt.Errorf("%.2f is not greater than 0", radius))
	}
	l.proximityRadiusMeters = radius
	return nil
}
