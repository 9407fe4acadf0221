package shipment_test

import (
	"testing"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddress(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	return p
}

func TestNewLeg(t *testing.T) {
	id, tenant, customer := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	leg, err := shipment.NewLeg(id, tenant, customer, newAddress(t), shipment.DefaultProximityRadiusMeters)

	require.NoError(t, err)
	require.NoError(t, leg.Validate())
	assert.Equal(t, shipment.OutForDelivery, leg.Status())
	assert.True(t, leg.BelongsTo(tenant))
	assert.True(t, leg.IsCustomer(customer))
	assert.False(t, leg.IsCustomer(kernel.NewUUID()))
	assert.Nil(t, leg.AgentID())
	assert.InDelta(t, 50.0, leg.ProximityRadiusMeters(), 1e-9)
}

func TestNewLeg_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		tenant  kernel.UUID
		address kernel.GeoPoint
		radius  float64
		errType error
	}{
		{name: "missing tenant", tenant: kernel.UUID{}, address: newAddress(t), radius: 50, errType: errs.ErrValueIsRequired},
		{name: "missing address", tenant: kernel.NewUUID(), address: kernel.GeoPoint{}, radius: 50, errType: errs.ErrValueIsRequired},
		{name: "zero radius", tenant: kernel.NewUUID(), address: newAddress(t), radius: 0, errType: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leg, err := shipment.NewLeg(kernel.NewUUID(), tt.tenant, kernel.NewUUID(), tt.address, tt.radius)
			require.ErrorIs(t, err, tt.errType)
			assert.Nil(t, leg)
		})
	}
}

func TestLeg_IsAgent(t *testing.T) {
	leg, err := shipment.NewLeg(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), newAddress(t), 50)
	require.NoError(t, err)

	anyAgent := kernel.NewUUID()
	assert.True(t, leg.IsAgent(anyAgent), "unassigned leg accepts any agent")

	assigned := kernel.NewUUID()
	require.NoError(t, leg.AssignAgent(assigned))
	assert.True(t, leg.IsAgent(assigned))
	assert.False(t, leg.IsAgent(anyAgent))
}

func TestLeg_RequireAgeVerification(t *testing.T) {
	leg, err := shipment.NewLeg(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), newAddress(t), 50)
	require.NoError(t, err)

	require.ErrorIs(t, leg.RequireAgeVerification(0), errs.ErrValueIsOutOfRange)
	assert.False(t, leg.RequiresAgeVerification())

	require.NoError(t, leg.RequireAgeVerification(21))
	assert.True(t, leg.RequiresAgeVerification())
	assert.Equal(t, 21, leg.MinimumAge())
}

func TestLeg_DeliverAndReturnAreExclusive(t *testing.T) {
	leg, err := shipment.NewLeg(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), newAddress(t), 50)
	require.NoError(t, err)

	require.NoError(t, leg.MarkDelivered())
	assert.Equal(t, shipment.Delivered, leg.Status())
	require.Error(t, leg.MarkReturned())
	require.Error(t, leg.MarkDelivered())
}

func TestRestoreLeg(t *testing.T) {
	agent := kernel.NewUUID()

	leg, err := shipment.RestoreLeg(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &agent, newAddress(t), 75,
		true, 18, "BLUEDART", "BD123", shipment.Returned,
	)

	require.NoError(t, err)
	assert.Equal(t, shipment.Returned, leg.Status())
	assert.Equal(t, "BLUEDART", leg.CarrierCode())
	assert.Equal(t, "BD123", leg.TrackingID())
	assert.Equal(t, 18, leg.MinimumAge())
	assert.True(t, leg.AgentID().IsEqual(agent))

	_, err = shipment.RestoreLeg(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, newAddress(t), 75,
		false, 0, "", "", shipment.Unknown,
	)
	require.Error(t, err)
}

func TestLeg_ZeroValue(t *testing.T) {
	var leg shipment.Leg
	require.ErrorIs(t, leg.Validate(), shipment.ErrLegIsNotConstructed)

	var nilLeg *shipment.Leg
	require.ErrorIs(t, nilLeg.Validate(), shipment.ErrLegIsNotConstructed)
}
