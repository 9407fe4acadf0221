package commands_test

import (
	"testing"
	"time"

	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/recipient"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLink(t *testing.T, f *protocolFixture, issuedAt time.Time) *recipient.AlternateRecipient {
	t.Helper()
	token, err := recipient.NewToken()
	require.NoError(t, err)
	link, err := recipient.NewAlternateRecipient(kernel.NewUUID(), f.leg.ID(), f.leg.TenantID(), f.leg.CustomerID(),
		recipient.Contact{Name: "Ravi", Phone: "+919876543210"}, recipient.ShareByLink, token,
		"https://handoff.example/api/v1/public/share/"+token.String(), issuedAt, recipient.DefaultLinkExpiry)
	require.NoError(t, err)
	return link
}

func TestConfirmAsAlternateCommandHandler_DeliversAgainstAgent(t *testing.T) {
	f := newProtocolFixture(t)
	link := newLink(t, f, f.now.Add(-time.Hour))
	f.attest(t, confirmation.Agent, *f.leg.AgentID(), f.now.Add(-time2m), scheduledLat, scheduledLon)

	f.recipientRepo.On("GetByToken", f.ctx, link.Token()).Return(link, nil).Once()
	f.expectCriticalSection()
	f.recipientRepo.On("GetByTokenForUpdate", f.ctx, link.Token()).Return(link, nil).Once()
	f.recipientRepo.On("Update", f.ctx, link).Return(nil).Once()
	f.legRepo.On("Update", f.ctx, f.leg).Return(nil).Once()
	f.expectCommit()
	f.publisher.On("Publish", f.ctx, mock.MatchedBy(func(e ports.ShipmentEvent) bool {
		return e.Type == ports.ShipmentDelivered && e.ByAlternate
	})).Return(nil).Once()

	cmd, err := commands.NewConfirmAsAlternateCommand(link.Token().String(),
		point(t, scheduledLat, scheduledLon+0.0001), 6, f.now)
	require.NoError(t, err)

	h := commands.NewConfirmAsAlternateCommandHandler(f.factory, f.locker, f.notifier(), f.engine, f.policy)
	res, err := h.Handle(f.ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, confirmation.OutcomeDelivered, res.Outcome)
	assert.True(t, res.Snapshot.ConfirmedByAlternate)
	require.NotNil(t, res.Snapshot.AlternateRecipientID)
	assert.True(t, res.Snapshot.AlternateRecipientID.IsEqual(link.ID()))
	assert.Equal(t, recipient.Confirmed, link.Status())
	require.NotNil(t, link.ConfirmationID())
	assert.True(t, link.ConfirmationID().IsEqual(f.record.ID()))
	f.assertExpectations(t)
}

func TestConfirmAsAlternateCommandHandler_ExpiredLink(t *testing.T) {
	f := newProtocolFixture(t)
	link := newLink(t, f, f.now.Add(-25*time.Hour))
	f.recipientRepo.On("GetByToken", f.ctx, link.Token()).Return(link, nil).Once()

	cmd, err := commands.NewConfirmAsAlternateCommand(link.Token().String(), point(t, scheduledLat, scheduledLon), 6, f.now)
	require.NoError(t, err)

	h := commands.NewConfirmAsAlternateCommandHandler(f.factory, f.locker, f.notifier(), f.engine, f.policy)
	_, err = h.Handle(f.ctx, cmd)
	require.ErrorIs(t, err, errs.ErrExpiredLink)
	f.locker.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything)
}

func TestConfirmAsAlternateCommandHandler_RevokedWhileWaitingForLock(t *testing.T) {
	f := newProtocolFixture(t)
	link := newLink(t, f, f.now.Add(-time.Hour))
	f.recipientRepo.On("GetByToken", f.ctx, link.Token()).Return(link, nil).Once()

	revoked, err := recipient.RestoreAlternateRecipient(link.Snapshot())
	require.NoError(t, err)
	require.NoError(t, revoked.Revoke(f.leg.CustomerID(), "changed plans", f.now.Add(-time.Second)))

	f.expectCriticalSection()
	f.recipientRepo.On("GetByTokenForUpdate", f.ctx, link.Token()).Return(revoked, nil).Once()

	cmd, err := commands.NewConfirmAsAlternateCommand(link.Token().String(), point(t, scheduledLat, scheduledLon), 6, f.now)
	require.NoError(t, err)

	h := commands.NewConfirmAsAlternateCommandHandler(f.factory, f.locker, f.notifier(), f.engine, f.policy)
	_, err = h.Handle(f.ctx, cmd)
	require.ErrorIs(t, err, errs.ErrRevokedLink)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestConfirmAsAlternateCommandHandler_UnknownToken(t *testing.T) {
	f := newProtocolFixture(t)
	token, err := recipient.NewToken()
	require.NoError(t, err)
	f.recipientRepo.On("GetByToken", f.ctx, token).
		Return(nil, errs.NewObjectNotFoundError("token", token.String())).Once()

	cmd, err := commands.NewConfirmAsAlternateCommand(token.String(), point(t, scheduledLat, scheduledLon), 6, f.now)
	require.NoError(t, err)

	h := commands.NewConfirmAsAlternateCommandHandler(f.factory, f.locker, f.notifier(), f.engine, f.policy)
	_, err = h.Handle(f.ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewConfirmAsAlternateCommand_MalformedToken(t *testing.T) {
	_, err := commands.NewConfirmAsAlternateCommand("not-a-token", kernel.GeoPoint{}, 5, time.Now())
	require.Error(t, err)
}
