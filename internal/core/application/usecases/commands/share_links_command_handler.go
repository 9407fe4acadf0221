package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/recipient"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
)

const ShareLinkPath = "/api/v1/public/share/"

// IssuedLink is what the customer forwards to an alternate recipient.
type IssuedLink struct {
	RecipientID kernel.UUID
	Name        string
	Token       recipient.Token
	ShareLink   string
	ExpiresAt   time.Time
}

// ShareLinksCommandHandler issues share links for a shipment leg. All links of
// one request are stored in a single transaction.
type ShareLinksCommandHandler struct {
	uowFactory RecipientUoWFactory
	baseURL    string
}

func NewShareLinksCommandHandler(uowFactory RecipientUoWFactory, baseURL string) ShareLinksCommandHandler {
	return ShareLinksCommandHandler{
		uowFactory: uowFactory,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (h *ShareLinksCommandHandler) Handle(ctx context.Context, cmd ShareLinksCommand) ([]IssuedLink, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	leg, err := uow.ShipmentLegRepository().Get(ctx, cmd.ShipmentLegID())
	if err != nil {
		return nil, err
	}
	if err = authorizeCustomerOrAdmin(cmd.Caller(), leg); err != nil {
		return nil, err
	}
	if leg.Status().IsTerminal() {
		return nil, fmt.Errorf("%w: shipment leg is %s", errs.ErrConfirmationClosed, leg.Status())
	}

	recipientRepo := uow.AlternateRecipientRepository()
	links := make([]IssuedLink, 0, len(cmd.Recipients()))
	for _, contact := range cmd.Recipients() {
		token, err := recipient.NewToken()
		if err != nil {
			return nil, err
		}

		r, err := recipient.NewAlternateRecipient(
			kernel.NewUUID(), leg.ID(), leg.TenantID(), leg.CustomerID(),
			contact, cmd.Method(), token, h.shareLink(token), cmd.At(), cmd.Expiry(),
		)
		if err != nil {
			return nil, err
		}
		if err = recipientRepo.Add(ctx, r); err != nil {
			return nil, err
		}

		links = append(links, IssuedLink{
			RecipientID: r.ID(),
			Name:        r.Contact().Name,
			Token:       r.Token(),
			ShareLink:   r.ShareLink(),
			ExpiresAt:   r.ExpiresAt(),
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return links, nil
}

func (h *ShareLinksCommandHandler) shareLink(token recipient.Token) string {
	return h.baseURL + ShareLinkPath + token.String()
}

// authorizeCustomerOrAdmin hides legs of other tenants and lets only the
// leg's customer or an admin manage its share links.
func authorizeCustomerOrAdmin(caller ports.Identity, leg *shipment.Leg) error {
	if !leg.BelongsTo(caller.TenantID) {
		return fmt.Errorf("%w: shipment leg %s belongs to another tenant", errs.ErrAccessDenied, leg.ID())
	}
	if !caller.IsAdmin() && !leg.IsCustomer(caller.UserID) {
		return fmt.Errorf("%w: only the customer may share shipment leg %s", errs.ErrAccessDenied, leg.ID())
	}
	return nil
}
