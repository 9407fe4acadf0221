// Package mapping holds column helpers shared by the repository DTOs.
package mapping

import (
	"handoff/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// GeoPointDTO stores a required point as two columns.
type GeoPointDTO struct {
	Latitude  float64
	Longitude float64
}

func GeoPointFromDomain(p kernel.GeoPoint) GeoPointDTO {
	return GeoPointDTO{Latitude: p.Latitude(), Longitude: p.Longitude()}
}

func (d GeoPointDTO) ToDomain() (kernel.GeoPoint, error) {
	return kernel.NewGeoPoint(d.Latitude, d.Longitude)
}

// NullableGeoPointDTO stores an optional point; both columns are NULL when absent.
type NullableGeoPointDTO struct {
	Latitude  *float64
	Longitude *float64
}

func NullableGeoPointFromDomain(p *kernel.GeoPoint) NullableGeoPointDTO {
	if p == nil {
		return NullableGeoPointDTO{}
	}
	lat, lon := p.Latitude(), p.Longitude()
	return NullableGeoPointDTO{Latitude: &lat, Longitude: &lon}
}

func (d NullableGeoPointDTO) ToDomain() (*kernel.GeoPoint, error) {
	if d.Latitude == nil || d.Longitude == nil {
		return nil, nil
	}
	p, err := kernel.NewGeoPoint(*d.Latitude, *d.Longitude)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func UUIDPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func UUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func KernelUUIDPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
