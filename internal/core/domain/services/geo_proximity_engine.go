package services

import (
	"errors"
	"fmt"
	"math"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/pkg/errs"
)

const (
	EarthRadiusMeters = 6371000.0

	// DefaultMaxAccuracyMeters is the coarsest device fix accepted as an attestation.
	DefaultMaxAccuracyMeters = 20.0

	// ScheduledAddressToleranceMeters separates SCHEDULED_ADDRESS from ALTERNATE_LOCATION handoffs.
	ScheduledAddressToleranceMeters = 100.0
)

// ProximityResult is the outcome of comparing two attestations.
type ProximityResult struct {
	InProximity            bool
	DistanceBetweenParties float64
	DistanceFromScheduled  float64
	Midpoint               kernel.GeoPoint
	LocationType           confirmation.LocationType
}

type GeoProximityEngine struct {
	maxAccuracyMeters float64
}

func NewGeoProximityEngine(maxAccuracyMeters float64) (GeoProximityEngine, error) {
	if maxAccuracyMeters <= 0 {
		return GeoProximityEngine{}, errs.NewValueIsInvalidErrorWithCause(
			"maxAccuracyMeters", fmt.Errorf("%.2f is not greater than 0", maxAccuracyMeters))
	}
	return GeoProximityEngine{maxAccuracyMeters: maxAccuracyMeters}, nil
}

func (e GeoProximityEngine) MaxAccuracyMeters() float64 {
	return e.maxAccuracyMeters
}

// DistanceMeters is the haversine great-circle distance between a and b.
func (e GeoProximityEngine) DistanceMeters(a, b kernel.GeoPoint) float64 {
	lat1 := toRadians(a.Latitude())
	lat2 := toRadians(b.Latitude())
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude() - a.Longitude())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	h = math.Min(1, h)

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func (e GeoProximityEngine) WithinRadius(center, point kernel.GeoPoint, radiusMeters float64) bool {
	return e.DistanceMeters(center, point) <= radiusMeters
}

func (e GeoProximityEngine) ArePartiesClose(a, b kernel.GeoPoint, maxDistanceMeters float64) bool {
	return e.DistanceMeters(a, b) <= maxDistanceMeters
}

// IsAccuracyAcceptable accepts fixes with 0 < accuracy <= the configured ceiling.
func (e GeoProximityEngine) IsAccuracyAcceptable(accuracyMeters float64) bool {
	return accuracyMeters > 0 && accuracyMeters <= e.maxAccuracyMeters
}

// CheckAttestation rejects a location fix that cannot be used as an attestation.
func (e GeoProximityEngine) CheckAttestation(location kernel.GeoPoint, accuracyMeters float64) error {
	if err := location.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidAttestation, err)
	}
	if !e.IsAccuracyAcceptable(accuracyMeters) {
		return fmt.Errorf("%w: accuracy %.2f m must be greater than 0 and at most %.2f m",
			errs.ErrInvalidAttestation, accuracyMeters, e.maxAccuracyMeters)
	}
	return nil
}

// VerifyAndLocate compares both attestations and resolves the handoff point
// against the scheduled address.
func (e GeoProximityEngine) VerifyAndLocate(
	agent, customer, scheduled kernel.GeoPoint, radiusMeters float64,
) (ProximityResult, error) {
	if err := errors.Join(agent.Validate(), customer.Validate(), scheduled.Validate()); err != nil {
		return ProximityResult{}, err
	}

	between := e.DistanceMeters(agent, customer)
	midpoint, err := agent.Midpoint(customer)
	if err != nil {
		return ProximityResult{}, err
	}
	fromScheduled := e.DistanceMeters(midpoint, scheduled)

	locationType := confirmation.ScheduledAddress
	if fromScheduled > ScheduledAddressToleranceMeters {
		locationType = confirmation.AlternateLocation
	}

	return ProximityResult{
		InProximity:            between <= radiusMeters,
		DistanceBetweenParties: roundMeters(between),
		DistanceFromScheduled:  roundMeters(fromScheduled),
		Midpoint:               midpoint,
		LocationType:           locationType,
	}, nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// roundMeters rounds half-up to centimeters.
func roundMeters(m float64) float64 {
	return math.Floor(m*100+0.5) / 100
}
