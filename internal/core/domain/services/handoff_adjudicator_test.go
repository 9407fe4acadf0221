package services_test

import (
	"context"
	"testing"
	"time"

	"handoff/internal/core/domain/model/ageverification"
	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/domain/services"
	"handoff/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func attestedRecord(t *testing.T, leg *shipment.Leg, agent, customer kernel.GeoPoint) *confirmation.Confirmation {
	t.Helper()
	policy := confirmation.DefaultPolicy()
	c, err := confirmation.NewConfirmation(kernel.NewUUID(), leg.ID(), leg.TenantID(), leg.RequiresAgeVerification(), leg.MinimumAge(), now)
	require.NoError(t, err)

	a, err := confirmation.NewAttestation(kernel.NewUUID(), agent, 5, now)
	require.NoError(t, err)
	_, err = c.RecordAttestation(confirmation.Agent, a, policy)
	require.NoError(t, err)

	b, err := confirmation.NewAttestation(kernel.NewUUID(), customer, 5, now.Add(time.Minute))
	require.NoError(t, err)
	outcome, err := c.RecordAttestation(confirmation.Customer, b, policy)
	require.NoError(t, err)
	require.Equal(t, confirmation.OutcomeReadyForAdjudication, outcome)
	return c
}

func newLeg(t *testing.T) *shipment.Leg {
	t.Helper()
	leg, err := shipment.NewLeg(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), point(t, 12.9716, 77.5946), 50)
	require.NoError(t, err)
	return leg
}

func TestHandoffAdjudicator_Adjudicate(t *testing.T) {
	adjudicator := services.NewHandoffAdjudicator(engine(t))

	t.Run("parties within radius settle the handoff", func(t *testing.T) {
		leg := newLeg(t)
		c := attestedRecord(t, leg, point(t, 12.9716, 77.5946), point(t, 12.9717, 77.5947))

		outcome, err := adjudicator.Adjudicate(c, leg, false, now)

		require.NoError(t, err)
		assert.Equal(t, confirmation.OutcomeDelivered, outcome)
		assert.Equal(t, confirmation.BothConfirmed, c.Status())
		assert.Equal(t, shipment.Delivered, leg.Status())
		assert.Equal(t, confirmation.ScheduledAddress, c.LocationType())
		require.NotNil(t, c.HandoffPoint())
	})

	t.Run("parties too far apart conflict", func(t *testing.T) {
		leg := newLeg(t)
		c := attestedRecord(t, leg, point(t, 12.9716, 77.5946), point(t, 12.9815, 77.6046))

		outcome, err := adjudicator.Adjudicate(c, leg, false, now)

		require.NoError(t, err)
		assert.Equal(t, confirmation.OutcomeConflict, outcome)
		assert.Equal(t, confirmation.Conflict, c.Status())
		assert.Equal(t, shipment.OutForDelivery, leg.Status())
		assert.Contains(t, c.ConflictReason(), "apart")
	})

	t.Run("age gate blocks even perfect proximity", func(t *testing.T) {
		leg := newLeg(t)
		require.NoError(t, leg.RequireAgeVerification(21))
		c := attestedRecord(t, leg, point(t, 12.9716, 77.5946), point(t, 12.9716, 77.5946))

		outcome, err := adjudicator.Adjudicate(c, leg, false, now)

		require.NoError(t, err)
		assert.Equal(t, confirmation.OutcomeConflict, outcome)
		assert.Equal(t, services.ReasonAgeVerificationNotSatisfied, c.ConflictReason())
		assert.Equal(t, shipment.OutForDelivery, leg.Status())
	})

	t.Run("age gate satisfied", func(t *testing.T) {
		leg := newLeg(t)
		require.NoError(t, leg.RequireAgeVerification(21))
		c := attestedRecord(t, leg, point(t, 12.9716, 77.5946), point(t, 12.9716, 77.5946))

		outcome, err := adjudicator.Adjudicate(c, leg, true, now)

		require.NoError(t, err)
		assert.Equal(t, confirmation.OutcomeDelivered, outcome)
	})

	t.Run("single attestation is not adjudicated", func(t *testing.T) {
		leg := newLeg(t)
		c, err := confirmation.NewConfirmation(kernel.NewUUID(), leg.ID(), leg.TenantID(), false, 0, now)
		require.NoError(t, err)

		_, err = adjudicator.Adjudicate(c, leg, false, now)

		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

type stubFinder struct {
	v   *ageverification.Verification
	err error
}

func (s stubFinder) GetByConfirmation(context.Context, kernel.UUID) (*ageverification.Verification, error) {
	return s.v, s.err
}

func TestAgeVerificationGate_IsSatisfied(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	verified, err := ageverification.NewVerification(kernel.NewUUID(), id, kernel.NewUUID(), kernel.NewUUID(), ageverification.MethodID, now)
	require.NoError(t, err)
	require.NoError(t, verified.RecordResult(ageverification.MethodID, ageverification.StatusVerified, true, ageverification.Person{}, now))

	pending, err := ageverification.NewVerification(kernel.NewUUID(), id, kernel.NewUUID(), kernel.NewUUID(), ageverification.MethodID, now)
	require.NoError(t, err)

	ok, err := services.NewAgeVerificationGate(stubFinder{v: verified}).IsSatisfied(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = services.NewAgeVerificationGate(stubFinder{v: pending}).IsSatisfied(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = services.NewAgeVerificationGate(stubFinder{err: errs.NewObjectNotFoundError("confirmationID", id)}).IsSatisfied(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}
