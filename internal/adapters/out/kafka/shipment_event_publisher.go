package kafka

import (
	"context"
	"encoding/json"

	"handoff/internal/core/ports"
	"handoff/internal/metrics"

	"github.com/pkg/errors"
)

type publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// ShipmentEventPublisher implements ports.ShipmentEventPublisher on a Kafka topic,
// keyed by shipment leg so the events of one leg stay ordered.
type ShipmentEventPublisher struct {
	producer publisher
	topic    string
}

func NewShipmentEventPublisher(producer publisher, topic string) *ShipmentEventPublisher {
	return &ShipmentEventPublisher{producer: producer, topic: topic}
}

func (p *ShipmentEventPublisher) Publish(ctx context.Context, event ports.ShipmentEvent) error {
	value, err := json.Marshal(ShipmentStatusChanged{
		EventType:      string(event.Type),
		ShipmentLegID:  event.ShipmentLegID,
		TenantID:       event.TenantID,
		ConfirmationID: event.ConfirmationID,
		OccurredAt:     event.OccurredAt.UTC(),
		HandoffLat:     event.HandoffLat,
		HandoffLon:     event.HandoffLon,
		LocationType:   event.LocationType,
		ByAlternate:    event.ByAlternate,
	})
	if err != nil {
		return errors.Wrap(err, "marshal shipment event")
	}

	if err = p.producer.Publish(ctx, p.topic, []byte(event.ShipmentLegID), value); err != nil {
		metrics.ShipmentEventsTotal.WithLabelValues(string(event.Type), "failed").Inc()
		return err
	}
	metrics.ShipmentEventsTotal.WithLabelValues(string(event.Type), "published").Inc()
	return nil
}
