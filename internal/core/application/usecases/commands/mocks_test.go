package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/core/domain/model/ageverification"
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

type MockAgeVerificationRepository struct{ mock.Mock }

func (m *MockAgeVerificationRepository) GetByConfirmation(
	ctx context.Context, id kernel.UUID,
) (*ageverification.Verification, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*ageverification.Verification)
	return v, args.Error(1)
}
func (m *MockAgeVerificationRepository) Save(ctx context.Context, v *ageverification.Verification) error {
	return m.Called(ctx, v).Error(0)
}

// MockUoW serves every unit-of-work flavour of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) ShipmentLegRepository() ports.ShipmentLegRepository {
	return m.Called().Get(0).(ports.ShipmentLegRepository)
}
func (m *MockUoW) ConfirmationRepository() ports.ConfirmationRepository {
	return m.Called().Get(0).(ports.ConfirmationRepository)
}
func (m *MockUoW) AlternateRecipientRepository() ports.AlternateRecipientRepository {
	return m.Called().Get(0).(ports.AlternateRecipientRepository)
}
func (m *MockUoW) AgeVerificationRepository() ports.AgeVerificationRepository {
	return m.Called().Get(0).(ports.AgeVerificationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockRecipientUoWFactory struct{ mock.Mock }

func (m *MockRecipientUoWFactory) Create() commands.RecipientUoW {
	return m.Called().Get(0).(commands.RecipientUoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	return m.Called().Get(0).(commands.ShipmentUoW)
}

type MockRecordLocker struct{ mock.Mock }

func (m *MockRecordLocker) Lock(ctx context.Context, key string) (ports.Unlock, error) {
	args := m.Called(ctx, key)
	u, _ := args.Get(0).(ports.Unlock)
	return u, args.Error(1)
}
func (m *MockRecordLocker) TryLock(ctx context.Context, key string) (ports.Unlock, bool, error) {
	args := m.Called(ctx, key)
	u, _ := args.Get(0).(ports.Unlock)
	return u, args.Bool(1), args.Error(2)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, e ports.ShipmentEvent) error {
	return m.Called(ctx, e).Error(0)
}

type MockCarrierRegistry struct{ mock.Mock }

func (m *MockCarrierRegistry) Provider(code string) (ports.CarrierProvider, error) {
	args := m.Called(code)
	p, _ := args.Get(0).(ports.CarrierProvider)
	return p, args.Error(1)
}

type MockCarrierProvider struct{ mock.Mock }

func (m *MockCarrierProvider) Code() string { return m.Called().String(0) }
func (m *MockCarrierProvider) CreateShipment(ctx context.Context, req ports.CarrierShipmentRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
func (m *MockCarrierProvider) GetTracking(ctx context.Context, trackingID string) (ports.TrackingInfo, error) {
	args := m.Called(ctx, trackingID)
	return args.Get(0).(ports.TrackingInfo), args.Error(1)
}
func (m *MockCarrierProvider) CancelShipment(ctx context.Context, trackingID string, reason string) error {
	return m.Called(ctx, trackingID, reason).Error(0)
}
func (m *MockCarrierProvider) VerifyWebhookSignature(payload []byte, signature string) bool {
	return m.Called(payload, signature).Bool(0)
}
func (m *MockCarrierProvider) SupportsDeliveryType(t ports.DeliveryType) bool {
	return m.Called(t).Bool(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noopUnlock() ports.Unlock { return func() {} }
