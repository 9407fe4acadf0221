package commands

import (
	"context"
)

// ExpireShareLinksCommandHandler moves open links past their expiry to EXPIRED.
// Links locked by a concurrent confirmation are left for the next run.
type ExpireShareLinksCommandHandler struct {
	uowFactory RecipientUoWFactory
}

func NewExpireShareLinksCommandHandler(uowFactory RecipientUoWFactory) ExpireShareLinksCommandHandler {
	return ExpireShareLinksCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of links expired.
func (h *ExpireShareLinksCommandHandler) Handle(ctx context.Context, cmd ExpireShareLinksCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	recipientRepo := uow.AlternateRecipientRepository()
	links, err := recipientRepo.ListExpirableForUpdate(ctx, cmd.Now(), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	for _, link := range links {
		if err = link.Expire(cmd.Now()); err != nil {
			return 0, err
		}
		if err = recipientRepo.Update(ctx, link); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(links), nil
}
