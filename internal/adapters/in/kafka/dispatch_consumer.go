// Package kafka feeds shipment legs dispatched by the shipment service into the
// handoff service.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/ports"
	"handoff/internal/metrics"
	"handoff/internal/pkg/errs"
)

const defaultRetryDelay = 5 * time.Second

// ShipmentLegDispatched is the payload of the dispatch topic.
type ShipmentLegDispatched struct {
	ShipmentLegID           string  `json:"shipment_leg_id"`
	TenantID                string  `json:"tenant_id"`
	CustomerID              string  `json:"customer_id"`
	AgentID                 *string `json:"agent_id,omitempty"`
	Latitude                float64 `json:"latitude"`
	Longitude               float64 `json:"longitude"`
	ProximityRadiusMeters   float64 `json:"proximity_radius_meters,omitempty"`
	RequiresAgeVerification bool    `json:"requires_age_verification"`
	MinimumAge              int     `json:"minimum_age,omitempty"`
	CarrierCode             string  `json:"carrier_code,omitempty"`
	TrackingID              string  `json:"tracking_id,omitempty"`
	DeliveryType            string  `json:"delivery_type,omitempty"`
}

type messageSource interface {
	Consume(ctx context.Context, handler func(ctx context.Context, key, value []byte) error) error
}

type shipmentLegRegistrar interface {
	Handle(ctx context.Context, cmd commands.RegisterShipmentLegCommand) error
}

// DispatchConsumer registers every dispatched leg. Malformed or rejected
// messages are logged and skipped; infrastructure failures are retried until
// they succeed or the context ends, so no message is committed unprocessed.
type DispatchConsumer struct {
	source     messageSource
	registrar  shipmentLegRegistrar
	logger     *slog.Logger
	retryDelay time.Duration
}

func NewDispatchConsumer(source messageSource, registrar shipmentLegRegistrar, logger *slog.Logger) *DispatchConsumer {
	return &DispatchConsumer{
		source:     source,
		registrar:  registrar,
		logger:     logger.With("component", "dispatch_consumer"),
		retryDelay: defaultRetryDelay,
	}
}

// Run blocks until ctx is cancelled or the source fails.
func (c *DispatchConsumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "Dispatch consumer started")
	err := c.source.Consume(ctx, c.handle)
	if ctx.Err() != nil {
		c.logger.InfoContext(ctx, "Dispatch consumer stopped")
		return nil
	}
	return err
}

func (c *DispatchConsumer) handle(ctx context.Context, key, value []byte) error {
	var msg ShipmentLegDispatched
	if err := json.Unmarshal(value, &msg); err != nil {
		c.skip(ctx, key, "malformed dispatch message", err)
		return nil
	}

	cmd, err := toRegisterCommand(msg)
	if err != nil {
		c.skip(ctx, key, "invalid dispatch message", err)
		return nil
	}

	for {
		err = c.registrar.Handle(ctx, cmd)
		switch {
		case err == nil:
			metrics.DispatchMessagesTotal.WithLabelValues("registered").Inc()
			return nil
		case isPermanent(err):
			c.skip(ctx, key, "shipment leg rejected", err)
			return nil
		}

		c.logger.WarnContext(ctx, "Shipment leg registration failed, retrying",
			"shipment_leg_id", msg.ShipmentLegID, "error", err)
		metrics.DispatchMessagesTotal.WithLabelValues("retried").Inc()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}
}

func (c *DispatchConsumer) skip(ctx context.Context, key []byte, msg string, err error) {
	c.logger.ErrorContext(ctx, msg, "key", string(key), "error", err)
	metrics.DispatchMessagesTotal.WithLabelValues("skipped").Inc()
}

func toRegisterCommand(msg ShipmentLegDispatched) (commands.RegisterShipmentLegCommand, error) {
	legID, legErr := kernel.UUIDFromString(msg.ShipmentLegID)
	tenantID, tenantErr := kernel.UUIDFromString(msg.TenantID)
	customerID, customerErr := kernel.UUIDFromString(msg.CustomerID)
	address, addressErr := kernel.NewGeoPoint(msg.Latitude, msg.Longitude)

	var agentID *kernel.UUID
	var agentErr error
	if msg.AgentID != nil && *msg.AgentID != "" {
		var id kernel.UUID
		id, agentErr = kernel.UUIDFromString(*msg.AgentID)
		agentID = &id
	}

	if err := errors.Join(legErr, tenantErr, customerErr, addressErr, agentErr); err != nil {
		return commands.RegisterShipmentLegCommand{}, err
	}

	return commands.NewRegisterShipmentLegCommand(commands.ShipmentLegDetails{
		ShipmentLegID:           legID,
		TenantID:                tenantID,
		CustomerID:              customerID,
		AgentID:                 agentID,
		ScheduledAddress:        address,
		ProximityRadiusMeters:   msg.ProximityRadiusMeters,
		RequiresAgeVerification: msg.RequiresAgeVerification,
		MinimumAge:              msg.MinimumAge,
		CarrierCode:             msg.CarrierCode,
		TrackingID:              msg.TrackingID,
		DeliveryType:            ports.DeliveryType(msg.DeliveryType),
	})
}

func isPermanent(err error) bool {
	return errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrConflict)
}
