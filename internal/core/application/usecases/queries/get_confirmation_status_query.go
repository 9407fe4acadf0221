package queries

import (
	"errors"
	"time"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
	"handoff/internal/pkg/guard"
)

var ErrGetConfirmationStatusQueryIsNotConstructed = errors.New(
	"GetConfirmationStatusQuery must be created via NewGetConfirmationStatusQuery constructor",
)

// GetConfirmationStatusQuery asks how the handoff of a shipment leg looks from one side.
type GetConfirmationStatusQuery struct {
	shipmentLegID kernel.UUID
	caller        ports.Identity
	side          confirmation.Side
	at            time.Time

	guard guard.ConstructorGuard
}

func NewGetConfirmationStatusQuery(
	shipmentLegID kernel.UUID, caller ports.Identity, side confirmation.Side, at time.Time,
) (GetConfirmationStatusQuery, error) {
	var atErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("at")
	}
	if err := errors.Join(
		shipmentLegID.Validate(),
		caller.UserID.Validate(),
		caller.TenantID.Validate(),
		side.Validate(),
		atErr,
	); err != nil {
		return GetConfirmationStatusQuery{}, err
	}

	return GetConfirmationStatusQuery{
		shipmentLegID: shipmentLegID,
		caller:        caller,
		side:          side,
		at:            at,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetConfirmationStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetConfirmationStatusQueryIsNotConstructed)
}

func (q GetConfirmationStatusQuery) ShipmentLegID() kernel.UUID { return q.shipmentLegID }
func (q GetConfirmationStatusQuery) Caller() ports.Identity     { return q.caller }
func (q GetConfirmationStatusQuery) Side() confirmation.Side    { return q.side }

// ConfirmationStatusResponse is the record as seen by Side at the query time.
// Exists is false while nobody has attested or reported anything yet; the
// snapshot then describes the PENDING record that would be created.
type ConfirmationStatusResponse struct {
	Exists            bool
	Confirmation      confirmation.Snapshot
	ShipmentLegStatus shipment.Status
	Side              confirmation.Side
	CanConfirm        bool
	TimeRemaining     time.Duration
	IsInProximity     bool
}
