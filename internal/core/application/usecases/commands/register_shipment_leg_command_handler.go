package commands

import (
	"context"
	"errors"
	"fmt"

	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"
)

// RegisterShipmentLegCommandHandler stores dispatched legs. Redelivered
// dispatch messages update the open leg in place; terminal legs are left alone.
// A leg handed to a carrier without a tracking id is booked with that carrier first.
type RegisterShipmentLegCommandHandler struct {
	uowFactory    ShipmentUoWFactory
	carriers      ports.CarrierRegistry
	defaultRadius float64
}

func NewRegisterShipmentLegCommandHandler(
	uowFactory ShipmentUoWFactory, carriers ports.CarrierRegistry, defaultRadiusMeters float64,
) RegisterShipmentLegCommandHandler {
	if defaultRadiusMeters <= 0 {
		defaultRadiusMeters = shipment.DefaultProximityRadiusMeters
	}
	return RegisterShipmentLegCommandHandler{
		uowFactory:    uowFactory,
		carriers:      carriers,
		defaultRadius: defaultRadiusMeters,
	}
}

func (h *RegisterShipmentLegCommandHandler) Handle(ctx context.Context, cmd RegisterShipmentLegCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d := cmd.Details()
	if d.ProximityRadiusMeters <= 0 {
		d.ProximityRadiusMeters = h.defaultRadius
	}

	incoming, err := shipment.RestoreLeg(
		d.ShipmentLegID, d.TenantID, d.CustomerID, d.AgentID, d.ScheduledAddress, d.ProximityRadiusMeters,
		d.RequiresAgeVerification, d.MinimumAge, d.CarrierCode, d.TrackingID, shipment.OutForDelivery,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	legRepo := uow.ShipmentLegRepository()
	existing, err := legRepo.Get(ctx, d.ShipmentLegID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if err = h.bookCarrier(ctx, incoming, d.DeliveryType); err != nil {
			return err
		}
		err = legRepo.Add(ctx, incoming)
	case err != nil:
		return err
	case existing.Status().IsTerminal():
		return nil
	case !existing.BelongsTo(d.TenantID):
		return fmt.Errorf("%w: shipment leg %s is registered for another tenant", errs.ErrConflict, d.ShipmentLegID)
	default:
		if incoming.TrackingID() == "" && incoming.CarrierCode() == existing.CarrierCode() {
			if err = incoming.AttachCarrier(existing.CarrierCode(), existing.TrackingID()); err != nil {
				return err
			}
		} else if err = h.bookCarrier(ctx, incoming, d.DeliveryType); err != nil {
			return err
		}
		err = legRepo.Update(ctx, incoming)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *RegisterShipmentLegCommandHandler) bookCarrier(ctx context.Context, leg *shipment.Leg, t ports.DeliveryType) error {
	if leg.CarrierCode() == "" || leg.TrackingID() != "" || h.carriers == nil {
		return nil
	}

	provider, err := h.carriers.Provider(leg.CarrierCode())
	if err != nil {
		return err
	}
	if !provider.SupportsDeliveryType(t) {
		return errs.NewValueIsInvalidErrorWithCause("deliveryType",
			fmt.Errorf("carrier %s does not support %s", provider.Code(), t))
	}

	trackingID, err := provider.CreateShipment(ctx, ports.CarrierShipmentRequest{
		ShipmentLegID: leg.ID().String(),
		TenantID:      leg.TenantID().String(),
		DeliveryType:  t,
		DropLatitude:  leg.ScheduledAddress().Latitude(),
		DropLongitude: leg.ScheduledAddress().Longitude(),
	})
	if err != nil {
		return err
	}

	return leg.AttachCarrier(leg.CarrierCode(), trackingID)
}
