package commands

import (
	"context"

	"handoff/internal/pkg/errs"
)

// RevokeShareLinkCommandHandler closes a share link. The link row is locked,
// so a revocation and a confirmation through the same link never interleave.
type RevokeShareLinkCommandHandler struct {
	uowFactory RecipientUoWFactory
}

func NewRevokeShareLinkCommandHandler(uowFactory RecipientUoWFactory) RevokeShareLinkCommandHandler {
	return RevokeShareLinkCommandHandler{uowFactory: uowFactory}
}

func (h *RevokeShareLinkCommandHandler) Handle(ctx context.Context, cmd RevokeShareLinkCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	leg, err := uow.ShipmentLegRepository().Get(ctx, cmd.ShipmentLegID())
	if err != nil {
		return err
	}
	if err = authorizeCustomerOrAdmin(cmd.Caller(), leg); err != nil {
		return err
	}

	recipientRepo := uow.AlternateRecipientRepository()
	link, err := recipientRepo.GetByTokenForUpdate(ctx, cmd.Token())
	if err != nil {
		return err
	}
	if !link.ShipmentLegID().IsEqual(leg.ID()) {
		return errs.NewObjectNotFoundError("token", cmd.Token().String())
	}

	if err = link.Revoke(cmd.Caller().UserID, cmd.Reason(), cmd.At()); err != nil {
		return err
	}
	if err = recipientRepo.Update(ctx, link); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
