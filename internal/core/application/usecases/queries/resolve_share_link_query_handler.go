package queries

import (
	"context"

	"handoff/internal/core/domain/model/confirmation"
)

type ResolveShareLinkQueryHandler struct {
	readers ReaderFactory
	policy  confirmation.Policy
}

func NewResolveShareLinkQueryHandler(readers ReaderFactory, policy confirmation.Policy) ResolveShareLinkQueryHandler {
	return ResolveShareLinkQueryHandler{readers: readers, policy: policy}
}

// Handle fails with errs.ErrObjectNotFound for an unknown token, and with
// errs.ErrExpiredLink, errs.ErrRevokedLink or errs.ErrLinkAlreadyUsed when the
// link can no longer be used. Expiry is judged at query time, whether or not
// the expiry sweep has run yet.
func (h ResolveShareLinkQueryHandler) Handle(
	ctx context.Context, query ResolveShareLinkQuery,
) (ResolveShareLinkQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveShareLinkQueryResponse{}, err
	}

	reader := h.readers.Create()
	link, err := reader.AlternateRecipientRepository().GetByToken(ctx, query.token)
	if err != nil {
		return ResolveShareLinkQueryResponse{}, err
	}
	if err = link.CheckUsable(query.at); err != nil {
		return ResolveShareLinkQueryResponse{}, err
	}

	leg, err := reader.ShipmentLegRepository().Get(ctx, link.ShipmentLegID())
	if err != nil {
		return ResolveShareLinkQueryResponse{}, err
	}
	status, err := confirmationStatus(ctx, reader, leg, confirmation.Customer, query.at, h.policy)
	if err != nil {
		return ResolveShareLinkQueryResponse{}, err
	}

	return ResolveShareLinkQueryResponse{
		RecipientID:             link.ID(),
		RecipientName:           link.Contact().Name,
		ShipmentLegID:           leg.ID(),
		TenantID:                leg.TenantID(),
		ShareMethod:             link.ShareMethod(),
		Status:                  link.Status(),
		ExpiresAt:               link.ExpiresAt(),
		ScheduledAddress:        leg.ScheduledAddress(),
		RequiresAgeVerification: leg.RequiresAgeVerification(),
		MinimumAge:              leg.MinimumAge(),
		Confirmation:            status,
	}, nil
}
