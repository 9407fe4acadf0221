package services_test

import (
	"testing"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/services"
	"handoff/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func engine(t *testing.T) services.GeoProximityEngine {
	t.Helper()
	e, err := services.NewGeoProximityEngine(services.DefaultMaxAccuracyMeters)
	require.NoError(t, err)
	return e
}

func TestGeoProximityEngine_DistanceMeters(t *testing.T) {
	e := engine(t)

	tests := []struct {
		name  string
		a, b  kernel.GeoPoint
		want  float64
		delta float64
	}{
		{name: "same point", a: point(t, 12.9716, 77.5946), b: point(t, 12.9716, 77.5946), want: 0, delta: 1e-9},
		{name: "one ten-thousandth degree of latitude", a: point(t, 0, 0), b: point(t, 0.0001, 0), want: 11.12, delta: 0.01},
		{name: "nearby handoff", a: point(t, 12.9716, 77.5946), b: point(t, 12.9717, 77.5947), want: 15.5, delta: 0.5},
		{name: "across town", a: point(t, 12.9716, 77.5946), b: point(t, 12.9815, 77.6046), want: 1545, delta: 10},
		{name: "antipodal", a: point(t, 0, 0), b: point(t, 0, 180), want: 20015086.8, delta: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, e.DistanceMeters(tt.a, tt.b), tt.delta)
			assert.InDelta(t, e.DistanceMeters(tt.a, tt.b), e.DistanceMeters(tt.b, tt.a), 1e-6)
		})
	}
}

func TestGeoProximityEngine_RadiusChecksAreInclusive(t *testing.T) {
	e := engine(t)
	a, b := point(t, 0, 0), point(t, 0.0001, 0)
	d := e.DistanceMeters(a, b)

	assert.True(t, e.WithinRadius(a, b, d))
	assert.True(t, e.ArePartiesClose(a, b, d))
	assert.False(t, e.ArePartiesClose(a, b, d-0.01))
}

func TestGeoProximityEngine_IsAccuracyAcceptable(t *testing.T) {
	e := engine(t)

	tests := []struct {
		accuracy float64
		want     bool
	}{
		{accuracy: 20, want: true},
		{accuracy: 0.1, want: true},
		{accuracy: 21, want: false},
		{accuracy: 20.01, want: false},
		{accuracy: 0, want: false},
		{accuracy: -3, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, e.IsAccuracyAcceptable(tt.accuracy), "accuracy %.2f", tt.accuracy)
	}
}

func TestGeoProximityEngine_CheckAttestation(t *testing.T) {
	e := engine(t)

	require.NoError(t, e.CheckAttestation(point(t, 1, 1), 20))
	require.ErrorIs(t, e.CheckAttestation(point(t, 1, 1), 21), errs.ErrInvalidAttestation)
	require.ErrorIs(t, e.CheckAttestation(kernel.GeoPoint{}, 5), errs.ErrInvalidAttestation)
}

func TestGeoProximityEngine_VerifyAndLocate(t *testing.T) {
	e := engine(t)
	scheduled := point(t, 12.9716, 77.5946)

	t.Run("close parties at the scheduled address", func(t *testing.T) {
		res, err := e.VerifyAndLocate(point(t, 12.9716, 77.5946), point(t, 12.9717, 77.5947), scheduled, 50)

		require.NoError(t, err)
		assert.True(t, res.InProximity)
		assert.Equal(t, confirmation.ScheduledAddress, res.LocationType)
		assert.InDelta(t, 12.97165, res.Midpoint.Latitude(), 1e-9)
		assert.InDelta(t, 77.59465, res.Midpoint.Longitude(), 1e-9)
		assert.InDelta(t, 15.53, res.DistanceBetweenParties, 0.02)
	})

	t.Run("close parties away from the scheduled address", func(t *testing.T) {
		res, err := e.VerifyAndLocate(point(t, 12.9760, 77.5946), point(t, 12.9761, 77.5946), scheduled, 50)

		require.NoError(t, err)
		assert.True(t, res.InProximity)
		assert.Equal(t, confirmation.AlternateLocation, res.LocationType)
		assert.Greater(t, res.DistanceFromScheduled, services.ScheduledAddressToleranceMeters)
	})

	t.Run("handoff across the antimeridian", func(t *testing.T) {
		res, err := e.VerifyAndLocate(point(t, 10, 179.9999), point(t, 10, -179.9999), point(t, 10, 180), 50)

		require.NoError(t, err)
		assert.True(t, res.InProximity)
		assert.Equal(t, confirmation.ScheduledAddress, res.LocationType)
		assert.Less(t, res.DistanceFromScheduled, 1.0)
	})

	t.Run("distant parties", func(t *testing.T) {
		res, err := e.VerifyAndLocate(point(t, 12.9716, 77.5946), point(t, 12.9815, 77.6046), scheduled, 50)

		require.NoError(t, err)
		assert.False(t, res.InProximity)
	})

	t.Run("unconstructed point", func(t *testing.T) {
		_, err := e.VerifyAndLocate(kernel.GeoPoint{}, scheduled, scheduled, 50)
		require.Error(t, err)
	})
}

func TestNewGeoProximityEngine_RejectsNonPositiveCeiling(t *testing.T) {
	_, err := services.NewGeoProximityEngine(0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
