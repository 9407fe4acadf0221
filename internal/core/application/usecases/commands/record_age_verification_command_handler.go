package commands

import (
	"context"
	"errors"
	"fmt"

	"handoff/internal/core/domain/model/ageverification"
	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
)

// RecordAgeVerificationCommandHandler stores the age check result linked to
// the leg's confirmation record and copies its status onto the record. It runs
// in the record's critical section because the record may not exist yet.
type RecordAgeVerificationCommandHandler struct {
	uowFactory UoWFactory
	locker     ports.RecordLocker
}

func NewRecordAgeVerificationCommandHandler(
	uowFactory UoWFactory, locker ports.RecordLocker,
) RecordAgeVerificationCommandHandler {
	return RecordAgeVerificationCommandHandler{uowFactory: uowFactory, locker: locker}
}

func (h *RecordAgeVerificationCommandHandler) Handle(ctx context.Context, cmd RecordAgeVerificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.locker.Lock(ctx, RecordLockKey(cmd.ShipmentLegID()))
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	leg, err := uow.ShipmentLegRepository().Get(ctx, cmd.ShipmentLegID())
	if err != nil {
		return err
	}
	caller := cmd.Caller()
	if !leg.BelongsTo(caller.TenantID) {
		return fmt.Errorf("%w: shipment leg %s belongs to another tenant", errs.ErrAccessDenied, leg.ID())
	}
	if !caller.IsAdmin() && !(caller.Has(ports.CapabilityAgent) && leg.IsAgent(caller.UserID)) {
		return fmt.Errorf("%w: age verification is recorded by the agent or an admin", errs.ErrAccessDenied)
	}
	if !leg.RequiresAgeVerification() {
		return errs.NewValueIsInvalidErrorWithCause("shipmentLegID",
			fmt.Errorf("shipment leg %s does not require age verification", leg.ID()))
	}

	candidate, err := confirmation.NewConfirmation(
		kernel.NewUUID(), leg.ID(), leg.TenantID(), leg.RequiresAgeVerification(), leg.MinimumAge(), cmd.At())
	if err != nil {
		return err
	}
	confirmationRepo := uow.ConfirmationRepository()
	record, err := confirmationRepo.GetOrCreateForUpdate(ctx, candidate)
	if err != nil {
		return err
	}
	if record.Status().IsImmutable() {
		return fmt.Errorf("%w: status is %s", errs.ErrConfirmationClosed, record.Status())
	}

	verificationRepo := uow.AgeVerificationRepository()
	verification, err := verificationRepo.GetByConfirmation(ctx, record.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		verification, err = ageverification.NewVerification(
			kernel.NewUUID(), record.ID(), leg.ID(), leg.TenantID(), cmd.Method(), cmd.At())
	}
	if err != nil {
		return err
	}

	if err = verification.RecordResult(cmd.Method(), cmd.Status(), cmd.AgeVerified(), cmd.Person(), cmd.At()); err != nil {
		return err
	}
	if err = verificationRepo.Save(ctx, verification); err != nil {
		return err
	}

	record.UpdateAgeVerificationStatus(string(verification.Status()), cmd.At())
	if err = confirmationRepo.Update(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
