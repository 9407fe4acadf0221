package queries

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

var ErrGetShareLinksQueryIsNotConstructed = errors.New(
	"GetShareLinksQuery must be created via NewGetShareLinksQuery constructor",
)

// GetShareLinksQuery lists every link ever issued for a shipment leg, oldest first.
type GetShareLinksQuery struct {
	shipmentLegID kernel.UUID
	caller        ports.Identity
	at            time.Time

	guard guard.ConstructorGuard
}

func NewGetShareLinksQuery(shipmentLegID kernel.UUID, caller ports.Identity, at time.Time) (GetShareLinksQuery, error) {
	var atErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("at")
	}
	if err := errors.Join(shipmentLegID.Validate(), caller.UserID.Validate(), caller.TenantID.Validate(), atErr); err != nil {
		return GetShareLinksQuery{}, err
	}

	return GetShareLinksQuery{
		shipmentLegID: shipmentLegID,
		caller:        caller,
		at:            at,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetShareLinksQuery) Validate() error {
	return q.guard.Validate(ErrGetShareLinksQueryIsNotConstructed)
}

// GetShareLinksQueryResponse describes one issued link. Status reads EXPIRED
// for open links past their expiry even before the expiry sweep closes them.
type GetShareLinksQueryResponse struct {
	RecipientID   kernel.UUID
	RecipientName string
	Phone         string
	Email         string
	Token         string
	ShareLink     string
	ShareMethod   string
	Status        string
	ExpiresAt     time.Time
	CreatedAt     time.Time
	ConfirmedAt   *time.Time
	RevokedAt     *time.Time
}
