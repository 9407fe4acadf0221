package queries

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/recipient"
	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

var ErrResolveShareLinkQueryIsNotConstructed = errors.New(
	"ResolveShareLinkQuery must be created via NewResolveShareLinkQuery constructor",
)

// ResolveShareLinkQuery opens a share link. The token is the only credential.
type ResolveShareLinkQuery struct {
	token recipient.Token
	at    time.Time

	guard guard.ConstructorGuard
}

func NewResolveShareLinkQuery(token string, at time.Time) (ResolveShareLinkQuery, error) {
	parsed, tokenErr := recipient.ParseToken(token)
	var atErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("at")
	}
	if err := errors.Join(tokenErr, atErr); err != nil {
		return ResolveShareLinkQuery{}, err
	}

	return ResolveShareLinkQuery{token: parsed, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (q ResolveShareLinkQuery) Validate() error {
	return q.guard.Validate(ErrResolveShareLinkQueryIsNotConstructed)
}

// ResolveShareLinkQueryResponse is what an alternate recipient sees before attesting.
// Confirmation is viewed from the customer side, which the recipient acts for.
type ResolveShareLinkQueryResponse struct {
	RecipientID             kernel.UUID
	RecipientName           string
	ShipmentLegID           kernel.UUID
	TenantID                kernel.UUID
	ShareMethod             recipient.ShareMethod
	Status                  recipient.Status
	ExpiresAt               time.Time
	ScheduledAddress        kernel.GeoPoint
	RequiresAgeVerification bool
	MinimumAge              int
	Confirmation            ConfirmationStatusResponse
}
