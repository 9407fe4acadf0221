package commands

import (
	"context"
	"log/slog"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/ports"
)

const returnCancellationReason = "handoff returned after repeated mutual unavailability"

// OutcomeNotifier tells the outside world how a handoff ended. It runs after
// commit and never fails the caller: errors are logged.
type OutcomeNotifier struct {
	publisher ports.ShipmentEventPublisher
	carriers  ports.CarrierRegistry
	logger    *slog.Logger
}

func NewOutcomeNotifier(publisher ports.ShipmentEventPublisher, carriers ports.CarrierRegistry, logger *slog.Logger) OutcomeNotifier {
	return OutcomeNotifier{
		publisher: publisher,
		carriers:  carriers,
		logger:    logger.With("component", "outcome_notifier"),
	}
}

func (n OutcomeNotifier) Delivered(ctx context.Context, leg *shipment.Leg, c *confirmation.Confirmation) {
	event := newShipmentEvent(ports.ShipmentDelivered, leg, c)
	if p := c.HandoffPoint(); p != nil {
		lat, lon := p.Latitude(), p.Longitude()
		event.HandoffLat = &lat
		event.HandoffLon = &lon
	}
	event.LocationType = c.LocationType().String()
	event.ByAlternate = c.ConfirmedByAlternate()

	n.publish(ctx, event)
}

func (n OutcomeNotifier) Returned(ctx context.Context, leg *shipment.Leg, c *confirmation.Confirmation) {
	n.publish(ctx, newShipmentEvent(ports.ShipmentReturned, leg, c))

	if n.carriers == nil || leg.CarrierCode() == "" || leg.TrackingID() == "" {
		return
	}
	provider, err := n.carriers.Provider(leg.CarrierCode())
	if err != nil {
		n.logger.WarnContext(ctx, "No carrier provider for returned shipment",
			"carrier", leg.CarrierCode(), "shipment_leg_id", leg.ID().String(), "error", err)
		return
	}
	if err = provider.CancelShipment(ctx, leg.TrackingID(), returnCancellationReason); err != nil {
		n.logger.ErrorContext(ctx, "Failed to cancel carrier shipment",
			"carrier", leg.CarrierCode(), "tracking_id", leg.TrackingID(), "error", err)
	}
}

func (n OutcomeNotifier) publish(ctx context.Context, event ports.ShipmentEvent) {
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.ErrorContext(ctx, "Failed to publish shipment event",
			"event_type", string(event.Type), "shipment_leg_id", event.ShipmentLegID, "error", err)
		return
	}
	n.logger.InfoContext(ctx, "Shipment event published",
		"event_type", string(event.Type), "shipment_leg_id", event.ShipmentLegID)
}

func newShipmentEvent(t ports.ShipmentEventType, leg *shipment.Leg, c *confirmation.Confirmation) ports.ShipmentEvent {
	return ports.ShipmentEvent{
		Type:           t,
		ShipmentLegID:  leg.ID().String(),
		TenantID:       leg.TenantID().String(),
		ConfirmationID: c.ID().String(),
		OccurredAt:     c.UpdatedAt(),
	}
}
