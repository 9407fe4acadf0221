package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/domain/services"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
)

// RecordLockKey is the lock key of the confirmation record of a shipment leg.
func RecordLockKey(shipmentLegID kernel.UUID) string {
	return "confirmation:" + shipmentLegID.String()
}

// AttestationResult is the record state after a protocol command.
type AttestationResult struct {
	Outcome  confirmation.Outcome
	Snapshot confirmation.Snapshot
}

// handoffProtocol holds what every state-machine command needs.
type handoffProtocol struct {
	uowFactory  UoWFactory
	locker      ports.RecordLocker
	notifier    OutcomeNotifier
	engine      services.GeoProximityEngine
	adjudicator services.HandoffAdjudicator
	policy      confirmation.Policy
}

func newHandoffProtocol(
	uowFactory UoWFactory,
	locker ports.RecordLocker,
	notifier OutcomeNotifier,
	engine services.GeoProximityEngine,
	policy confirmation.Policy,
) handoffProtocol {
	return handoffProtocol{
		uowFactory:  uowFactory,
		locker:      locker,
		notifier:    notifier,
		engine:      engine,
		adjudicator: services.NewHandoffAdjudicator(engine),
		policy:      policy,
	}
}

// mutation changes a locked record inside a transaction and reports the outcome.
type mutation func(ctx context.Context, uow UoW, leg *shipment.Leg, c *confirmation.Confirmation) (confirmation.Outcome, error)

// run executes m in the record's critical section: record lock, transaction,
// upsert-and-lock of the record, adjudication when both sides are present,
// commit and finally the outcome notification.
func (p handoffProtocol) run(
	ctx context.Context, shipmentLegID kernel.UUID, authorize func(*shipment.Leg) error, at time.Time, m mutation,
) (AttestationResult, error) {
	unlock, err := p.locker.Lock(ctx, RecordLockKey(shipmentLegID))
	if err != nil {
		return AttestationResult{}, err
	}
	defer unlock()

	uow := p.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return AttestationResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	legRepo := uow.ShipmentLegRepository()
	leg, err := legRepo.Get(ctx, shipmentLegID)
	if err != nil {
		return AttestationResult{}, err
	}
	if err = authorize(leg); err != nil {
		return AttestationResult{}, err
	}

	candidate, err := confirmation.NewConfirmation(
		kernel.NewUUID(), leg.ID(), leg.TenantID(), leg.RequiresAgeVerification(), leg.MinimumAge(), at)
	if err != nil {
		return AttestationResult{}, err
	}
	confirmationRepo := uow.ConfirmationRepository()
	record, err := confirmationRepo.GetOrCreateForUpdate(ctx, candidate)
	if err != nil {
		return AttestationResult{}, err
	}

	outcome, err := m(ctx, uow, leg, record)
	if err != nil {
		return AttestationResult{}, err
	}

	if outcome == confirmation.OutcomeReadyForAdjudication {
		if outcome, err = p.adjudicate(ctx, uow, leg, record, at); err != nil {
			return AttestationResult{}, err
		}
	}

	switch outcome {
	case confirmation.OutcomeDelivered:
		err = legRepo.Update(ctx, leg)
	case confirmation.OutcomeReturned:
		if err = leg.MarkReturned(); err == nil {
			err = legRepo.Update(ctx, leg)
		}
	}
	if err != nil {
		return AttestationResult{}, err
	}

	if err = confirmationRepo.Update(ctx, record); err != nil {
		return AttestationResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return AttestationResult{}, err
	}

	switch outcome {
	case confirmation.OutcomeDelivered:
		p.notifier.Delivered(ctx, leg, record)
	case confirmation.OutcomeReturned:
		p.notifier.Returned(ctx, leg, record)
	}

	return AttestationResult{Outcome: outcome, Snapshot: record.Snapshot()}, nil
}

func (p handoffProtocol) adjudicate(
	ctx context.Context, uow UoW, leg *shipment.Leg, record *confirmation.Confirmation, at time.Time,
) (confirmation.Outcome, error) {
	gateSatisfied := false
	if leg.RequiresAgeVerification() {
		var err error
		gate := services.NewAgeVerificationGate(uow.AgeVerificationRepository())
		if gateSatisfied, err = gate.IsSatisfied(ctx, record.ID()); err != nil {
			return 0, err
		}
	}

	return p.adjudicator.Adjudicate(record, leg, gateSatisfied, at)
}

// authorizeSide checks that actor may speak for side on leg within tenant.
func authorizeSide(tenantID, actorID kernel.UUID, side confirmation.Side) func(*shipment.Leg) error {
	return func(leg *shipment.Leg) error {
		if !leg.BelongsTo(tenantID) {
			return fmt.Errorf("%w: shipment leg %s belongs to another tenant", errs.ErrAccessDenied, leg.ID())
		}
		switch side {
		case confirmation.Agent:
			if !leg.IsAgent(actorID) {
				return fmt.Errorf("%w: %s is not the agent of shipment leg %s", errs.ErrAccessDenied, actorID, leg.ID())
			}
		case confirmation.Customer:
			if !leg.IsCustomer(actorID) {
				return fmt.Errorf("%w: %s is not the customer of shipment leg %s", errs.ErrAccessDenied, actorID, leg.ID())
			}
		default:
			return errors.New("unknown side")
		}
		return nil
	}
}
