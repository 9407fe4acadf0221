// Package shipmentrepo persists the local read model of dispatched shipment legs.
package shipmentrepo

import (
	"errors"

	"handoff/internal/adapters/out/postgres/mapping"
	"handoff/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

type ShipmentLegDTO struct {
	ID                      uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TenantID                uuid.UUID           `gorm:"type:uuid;index;not null"`
	CustomerID              uuid.UUID           `gorm:"type:uuid;not null"`
	AgentID                 *uuid.UUID          `gorm:"type:uuid"`
	ScheduledAddress        mapping.GeoPointDTO `gorm:"embedded;embeddedPrefix:scheduled_"`
	ProximityRadiusMeters   float64             `gorm:"not null"`
	RequiresAgeVerification bool                `gorm:"not null;default:false"`
	MinimumAge              int
	CarrierCode             string `gorm:"size:32"`
	TrackingID              string `gorm:"size:128"`
	Status                  int    `gorm:"index"`
}

func (ShipmentLegDTO) TableName() string {
	return "shipment_legs"
}

func fromDomain(leg *shipment.Leg) ShipmentLegDTO {
	return ShipmentLegDTO{
		ID:                      leg.ID().Bytes(),
		TenantID:                leg.TenantID().Bytes(),
		CustomerID:              leg.CustomerID().Bytes(),
		AgentID:                 mapping.UUIDPtr(leg.AgentID()),
		ScheduledAddress:        mapping.GeoPointFromDomain(leg.ScheduledAddress()),
		ProximityRadiusMeters:   leg.ProximityRadiusMeters(),
		RequiresAgeVerification: leg.RequiresAgeVerification(),
		MinimumAge:              leg.MinimumAge(),
		CarrierCode:             leg.CarrierCode(),
		TrackingID:              leg.TrackingID(),
		Status:                  int(leg.Status()),
	}
}

func toDomain(dto ShipmentLegDTO) (*shipment.Leg, error) {
	id, idErr := mapping.UUID(dto.ID)
	tenantID, tenantErr := mapping.UUID(dto.TenantID)
	customerID, customerErr := mapping.UUID(dto.CustomerID)
	agentID, agentErr := mapping.KernelUUIDPtr(dto.AgentID)
	address, addressErr := dto.ScheduledAddress.ToDomain()
	if err := errors.Join(idErr, tenantErr, customerErr, agentErr, addressErr); err != nil {
		return nil, err
	}

	return shipment.RestoreLeg(
		id, tenantID, customerID, agentID, address, dto.ProximityRadiusMeters,
		dto.RequiresAgeVerification, dto.MinimumAge, dto.CarrierCode, dto.TrackingID,
		shipment.Status(dto.Status),
	)
}
