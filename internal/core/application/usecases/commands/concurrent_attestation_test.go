package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// memoryStore keeps one leg and its confirmation record. Reads hand out
// restored copies so each unit of work sees only committed state.
type memoryStore struct {
	mu       sync.Mutex
	leg      *shipment.Leg
	snapshot *confirmation.Snapshot
	updates  int
}

func (s *memoryStore) stored(t *testing.T) *confirmation.Confirmation {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotNil(t, s.snapshot)
	c, err := confirmation.RestoreConfirmation(*s.snapshot)
	require.NoError(t, err)
	return c
}

type memoryUoWFactory struct{ store *memoryStore }

func (f memoryUoWFactory) Create() commands.UoW { return memoryUoW(f) }

type memoryUoW struct{ store *memoryStore }

func (memoryUoW) Begin(context.Context) error    { return nil }
func (memoryUoW) Commit(context.Context) error   { return nil }
func (memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) ShipmentLegRepository() ports.ShipmentLegRepository {
	return memoryLegRepository{store: u.store}
}
func (u memoryUoW) ConfirmationRepository() ports.ConfirmationRepository {
	return memoryConfirmationRepository{store: u.store}
}
func (memoryUoW) AlternateRecipientRepository() ports.AlternateRecipientRepository {
	return new(MockAlternateRecipientRepository)
}
func (memoryUoW) AgeVerificationRepository() ports.AgeVerificationRepository {
	return new(MockAgeVerificationRepository)
}

type memoryLegRepository struct {
	ports.ShipmentLegRepository
	store *memoryStore
}

func (r memoryLegRepository) Get(_ context.Context, id kernel.UUID) (*shipment.Leg, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.leg.ID().IsEqual(id) {
		return nil, assert.AnError
	}
	return r.store.leg, nil
}

func (r memoryLegRepository) Update(context.Context, *shipment.Leg) error { return nil }

type memoryConfirmationRepository struct {
	ports.ConfirmationRepository
	store *memoryStore
}

func (r memoryConfirmationRepository) GetOrCreateForUpdate(
	_ context.Context, candidate *confirmation.Confirmation,
) (*confirmation.Confirmation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.snapshot == nil {
		s := candidate.Snapshot()
		r.store.snapshot = &s
	}
	return confirmation.RestoreConfirmation(*r.store.snapshot)
}

func (r memoryConfirmationRepository) Update(_ context.Context, c *confirmation.Confirmation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s := c.Snapshot()
	r.store.snapshot = &s
	r.store.updates++
	return nil
}

func TestSubmitAttestationCommandHandler_ConcurrentOppositeSidesDeliverOnce(t *testing.T) {
	for range 20 {
		f := newProtocolFixture(t)
		store := &memoryStore{leg: f.leg}
		f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.ShipmentEvent) bool {
			return e.Type == ports.ShipmentDelivered && e.ShipmentLegID == f.leg.ID().String()
		})).Return(nil).Once()

		h := commands.NewSubmitAttestationCommandHandler(
			memoryUoWFactory{store: store}, keylock.New(time.Second), f.notifier(), f.engine, f.policy)

		agentCmd, err := commands.NewSubmitAttestationCommand(f.leg.ID(), f.leg.TenantID(), *f.leg.AgentID(),
			confirmation.Agent, point(t, scheduledLat, scheduledLon), 8, f.now)
		require.NoError(t, err)
		customerCmd, err := commands.NewSubmitAttestationCommand(f.leg.ID(), f.leg.TenantID(), f.leg.CustomerID(),
			confirmation.Customer, point(t, scheduledLat+0.0001, scheduledLon), 10, f.now)
		require.NoError(t, err)

		outcomes := make([]confirmation.Outcome, 2)
		g, ctx := errgroup.WithContext(f.ctx)
		for i, cmd := range []commands.SubmitAttestationCommand{agentCmd, customerCmd} {
			g.Go(func() error {
				res, err := h.Handle(ctx, cmd)
				outcomes[i] = res.Outcome
				return err
			})
		}
		require.NoError(t, g.Wait())

		assert.ElementsMatch(t,
			[]confirmation.Outcome{confirmation.OutcomeRecorded, confirmation.OutcomeDelivered}, outcomes)
		record := store.stored(t)
		assert.Equal(t, confirmation.BothConfirmed, record.Status())
		assert.True(t, record.ProximityVerified())
		assert.Equal(t, 2, store.updates)
		assert.Equal(t, shipment.Delivered, f.leg.Status())
		f.publisher.AssertExpectations(t)
		f.publisher.AssertNumberOfCalls(t, "Publish", 1)
	}
}
