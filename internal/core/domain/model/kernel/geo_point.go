package kernel

import (
	"errors"
	"fmt"

	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is a WGS84 coordinate in decimal degrees.
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p == other, nil
}

// Midpoint is the arithmetic mean of both coordinates, adequate for points a few
// hundred meters apart. Longitudes are averaged along the shorter arc, so points
// on either side of the antimeridian meet near ±180.
func (p GeoPoint) Midpoint(other GeoPoint) (GeoPoint, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return GeoPoint{}, err
	}

	delta := other.longitude - p.longitude
	switch {
	case delta > 180:
		delta -= 360
	case delta < -180:
		delta += 360
	}
	longitude := p.longitude + delta/2
	switch {
	case longitude > MaxLongitude:
		longitude -= 360
	case longitude < MinLongitude:
		longitude += 360
	}

	return NewGeoPoint((p.latitude+other.latitude)/2, longitude)
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	p.longitude = longitude
	return nil
}
