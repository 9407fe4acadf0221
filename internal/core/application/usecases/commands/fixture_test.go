package commands_test

import (
	"context"
	"testing"
	"time"

	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	scheduledLat = 12.9716
	scheduledLon = 77.5946
)

func point(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

// protocolFixture wires mocks for handlers running in the record's critical section.
type protocolFixture struct {
	ctx context.Context
	now time.Time

	leg    *shipment.Leg
	record *confirmation.Confirmation

	legRepo          *MockShipmentLegRepository
	confirmationRepo *MockConfirmationRepository
	recipientRepo    *MockAlternateRecipientRepository
	ageRepo          *MockAgeVerificationRepository
	uow              *MockUoW
	factory          *MockUoWFactory
	locker           *MockRecordLocker
	publisher        *MockPublisher
	carriers         *MockCarrierRegistry

	engine services.GeoProximityEngine
	policy confirmation.Policy
}

func newProtocolFixture(t *testing.T) *protocolFixture {
	t.Helper()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	leg, err := shipment.NewLeg(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		point(t, scheduledLat, scheduledLon), shipment.DefaultProximityRadiusMeters,
	)
	require.NoError(t, err)
	require.NoError(t, leg.AssignAgent(kernel.NewUUID()))

	record, err := confirmation.NewConfirmation(kernel.NewUUID(), leg.ID(), leg.TenantID(), false, 0, now)
	require.NoError(t, err)

	engine, err := services.NewGeoProximityEngine(services.DefaultMaxAccuracyMeters)
	require.NoError(t, err)

	f := &protocolFixture{
		ctx:              t.Context(),
		now:              now,
		leg:              leg,
		record:           record,
		legRepo:          new(MockShipmentLegRepository),
		confirmationRepo: new(MockConfirmationRepository),
		recipientRepo:    new(MockAlternateRecipientRepository),
		ageRepo:          new(MockAgeVerificationRepository),
		uow:              new(MockUoW),
		factory:          new(MockUoWFactory),
		locker:           new(MockRecordLocker),
		publisher:        new(MockPublisher),
		carriers:         new(MockCarrierRegistry),
		engine:           engine,
		policy:           confirmation.DefaultPolicy(),
	}

	f.factory.On("Create").Return(f.uow)
	f.uow.On("ShipmentLegRepository").Return(f.legRepo).Maybe()
	f.uow.On("ConfirmationRepository").Return(f.confirmationRepo).Maybe()
	f.uow.On("AlternateRecipientRepository").Return(f.recipientRepo).Maybe()
	f.uow.On("AgeVerificationRepository").Return(f.ageRepo).Maybe()
	f.uow.On("Rollback", f.ctx).Return(nil).Maybe()

	return f
}

// expectCriticalSection sets up lock, begin, leg lookup and record upsert.
func (f *protocolFixture) expectCriticalSection() {
	f.locker.On("Lock", f.ctx, commands.RecordLockKey(f.leg.ID())).Return(noopUnlock(), nil).Once()
	f.uow.On("Begin", f.ctx).Return(nil).Once()
	f.legRepo.On("Get", f.ctx, f.leg.ID()).Return(f.leg, nil).Once()
	f.confirmationRepo.On("GetOrCreateForUpdate", f.ctx, mock.MatchedBy(func(c *confirmation.Confirmation) bool {
		return c.ShipmentLegID().IsEqual(f.leg.ID())
	})).Return(f.record, nil).Once()
}

func (f *protocolFixture) expectCommit() {
	f.confirmationRepo.On("Update", f.ctx, f.record).Return(nil).Once()
	f.uow.On("Commit", f.ctx).Return(nil).Once()
}

func (f *protocolFixture) notifier() commands.OutcomeNotifier {
	return commands.NewOutcomeNotifier(f.publisher, f.carriers, discardLogger())
}

func (f *protocolFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.legRepo.AssertExpectations(t)
	f.confirmationRepo.AssertExpectations(t)
	f.recipientRepo.AssertExpectations(t)
	f.ageRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.locker.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.carriers.AssertExpectations(t)
}

// attest records side's attestation directly on the fixture's record.
func (f *protocolFixture) attest(t *testing.T, side confirmation.Side, actor kernel.UUID, at time.Time, lat, lon float64) {
	t.Helper()
	a, err := confirmation.NewAttestation(actor, point(t, lat, lon), 5, at)
	require.NoError(t, err)
	_, err = f.record.RecordAttestation(side, a, f.policy)
	require.NoError(t, err)
}

const (
	time1m = time.Minute
	time2m = 2 * time.Minute
)
