package queries_test

import (
	"testing"
	"time"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/recipient"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/ports"

	"github.com/stretchr/testify/require"
)

var queryTime = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type legFixture struct {
	leg        *shipment.Leg
	tenantID   kernel.UUID
	customerID kernel.UUID
	agentID    kernel.UUID
}

func newLegFixture(t *testing.T) legFixture {
	t.Helper()
	address, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)

	f := legFixture{tenantID: kernel.NewUUID(), customerID: kernel.NewUUID(), agentID: kernel.NewUUID()}
	f.leg, err = shipment.RestoreLeg(
		kernel.NewUUID(), f.tenantID, f.customerID, &f.agentID, address, 50,
		true, 18, "own_fleet", "OWN-42", shipment.OutForDelivery,
	)
	require.NoError(t, err)
	return f
}

func (f legFixture) agent() ports.Identity {
	return ports.Identity{UserID: f.agentID, TenantID: f.tenantID, Capabilities: []ports.Capability{ports.CapabilityAgent}}
}

func (f legFixture) customer() ports.Identity {
	return ports.Identity{
		UserID: f.customerID, TenantID: f.tenantID, Capabilities: []ports.Capability{ports.CapabilityCustomer},
	}
}

func (f legFixture) admin() ports.Identity {
	return ports.Identity{
		UserID: kernel.NewUUID(), TenantID: f.tenantID, Capabilities: []ports.Capability{ports.CapabilityAdmin},
	}
}

func (f legFixture) newRecord(t *testing.T) *confirmation.Confirmation {
	t.Helper()
	c, err := confirmation.NewConfirmation(kernel.NewUUID(), f.leg.ID(), f.tenantID, true, 18, queryTime.Add(-time.Hour))
	require.NoError(t, err)
	return c
}

func (f legFixture) attest(t *testing.T, c *confirmation.Confirmation, side confirmation.Side, at time.Time) {
	t.Helper()
	location, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	a, err := confirmation.NewAttestation(f.agentID, location, 5, at)
	require.NoError(t, err)
	_, err = c.RecordAttestation(side, a, confirmation.DefaultPolicy())
	require.NoError(t, err)
}

func (f legFixture) issueLink(t *testing.T, expiry time.Duration) *recipient.AlternateRecipient {
	t.Helper()
	token, err := recipient.NewToken()
	require.NoError(t, err)
	link, err := recipient.NewAlternateRecipient(
		kernel.NewUUID(), f.leg.ID(), f.tenantID, f.customerID,
		recipient.Contact{Name: "Meera", Phone: "+919811111111"},
		recipient.ShareBySMS, token, "https://handoff.example/api/v1/public/share/"+token.String(),
		queryTime.Add(-time.Hour), expiry,
	)
	require.NoError(t, err)
	return link
}
