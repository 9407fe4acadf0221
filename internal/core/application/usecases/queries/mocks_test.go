package queries_test

import (
	"context"
	"time"

	"handoff/internal/core/application/usecases/queries"
	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/recipient"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockShipmentLegRepository struct{ mock.Mock }

func (m *MockShipmentLegRepository) Add(ctx context.Context, l *shipment.Leg) error {
	return m.Called(ctx, l).Error(0)
}
func (m *MockShipmentLegRepository) Update(ctx context.Context, l *shipment.Leg) error {
	return m.Called(ctx, l).Error(0)
}
func (m *MockShipmentLegRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Leg, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*shipment.Leg)
	return l, args.Error(1)
}

type MockConfirmationRepository struct{ mock.Mock }

func (m *MockConfirmationRepository) GetOrCreateForUpdate(
	ctx context.Context, candidate *confirmation.Confirmation,
) (*confirmation.Confirmation, error) {
	args := m.Called(ctx, candidate)
	c, _ := args.Get(0).(*confirmation.Confirmation)
	return c, args.Error(1)
}
func (m *MockConfirmationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*confirmation.Confirmation, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*confirmation.Confirmation)
	return c, args.Error(1)
}
func (m *MockConfirmationRepository) GetByShipmentLeg(
	ctx context.Context, id kernel.UUID,
) (*confirmation.Confirmation, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*confirmation.Confirmation)
	return c, args.Error(1)
}
func (m *MockConfirmationRepository) Update(ctx context.Context, c *confirmation.Confirmation) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockConfirmationRepository) ListDueForReopen(
	ctx context.Context, now time.Time, maxReschedules int, limit int,
) ([]*confirmation.Confirmation, error) {
	args := m.Called(ctx, now, maxReschedules, limit)
	c, _ := args.Get(0).([]*confirmation.Confirmation)
	return c, args.Error(1)
}
func (m *MockConfirmationRepository) ListDueForAutoReturn(
	ctx context.Context, maxReschedules int, limit int,
) ([]*confirmation.Confirmation, error) {
	args := m.Called(ctx, maxReschedules, limit)
	c, _ := args.Get(0).([]*confirmation.Confirmation)
	return c, args.Error(1)
}

type MockAlternateRecipientRepository struct{ mock.Mock }

func (m *MockAlternateRecipientRepository) Add(ctx context.Context, r *recipient.AlternateRecipient) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockAlternateRecipientRepository) Update(ctx context.Context, r *recipient.AlternateRecipient) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockAlternateRecipientRepository) GetByToken(
	ctx context.Context, token recipient.Token,
) (*recipient.AlternateRecipient, error) {
	args := m.Called(ctx, token)
	r, _ := args.Get(0).(*recipient.AlternateRecipient)
	return r, args.Error(1)
}
func (m *MockAlternateRecipientRepository) GetByTokenForUpdate(
	ctx context.Context, token recipient.Token,
) (*recipient.AlternateRecipient, error) {
	args := m.Called(ctx, token)
	r, _ := args.Get(0).(*recipient.AlternateRecipient)
	return r, args.Error(1)
}
func (m *MockAlternateRecipientRepository) ListExpirableForUpdate(
	ctx context.Context, now time.Time, limit int,
) ([]*recipient.AlternateRecipient, error) {
	args := m.Called(ctx, now, limit)
	r, _ := args.Get(0).([]*recipient.AlternateRecipient)
	return r, args.Error(1)
}

// stubReader hands out the same mocks on every call.
type stubReader struct {
	legs          *MockShipmentLegRepository
	confirmations *MockConfirmationRepository
	recipients    *MockAlternateRecipientRepository
}

func newStubReader() *stubReader {
	return &stubReader{
		legs:          new(MockShipmentLegRepository),
		confirmations: new(MockConfirmationRepository),
		recipients:    new(MockAlternateRecipientRepository),
	}
}

func (r *stubReader) ShipmentLegRepository() ports.ShipmentLegRepository   { return r.legs }
func (r *stubReader) ConfirmationRepository() ports.ConfirmationRepository { return r.confirmations }
func (r *stubReader) AlternateRecipientRepository() ports.AlternateRecipientRepository {
	return r.recipients
}
func (r *stubReader) Create() queries.Reader { return r }

type MockCarrierRegistry struct{ mock.Mock }

func (m *MockCarrierRegistry) Provider(code string) (ports.CarrierProvider, error) {
	args := m.Called(code)
	p, _ := args.Get(0).(ports.CarrierProvider)
	return p, args.Error(1)
}

type MockCarrierProvider struct {
	mock.Mock
	ports.CarrierProvider
}

func (m *MockCarrierProvider) GetTracking(ctx context.Context, trackingID string) (ports.TrackingInfo, error) {
	args := m.Called(ctx, trackingID)
	return args.Get(0).(ports.TrackingInfo), args.Error(1)
}
