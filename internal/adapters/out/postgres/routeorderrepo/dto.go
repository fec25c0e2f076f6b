// Package routeorderrepo persists the stable per-driver client order with GORM.
package routeorderrepo

import (
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/routeorder"

	"github.com/google/uuid"
)

// RouteOrderDTO is the row layout of the route_orders table, unique on (driver, client).
type RouteOrderDTO struct {
	DriverID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position int       `gorm:"type:int;not null"`
}

// TableName overrides GORM's default "route_order_dtos".
func (RouteOrderDTO) TableName() string {
	return "route_orders"
}

func fromDomain(e routeorder.Entry) RouteOrderDTO {
	return RouteOrderDTO{
		DriverID: e.DriverID().Bytes(),
		ClientID: e.ClientID().Bytes(),
		Position: e.Position(),
	}
}

func toDomain(dto RouteOrderDTO) (routeorder.Entry, error) {
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return routeorder.Entry{}, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return routeorder.Entry{}, err
	}
	return routeorder.NewEntry(driverID, clientID, dto.Position)
}

func toDomainSlice(dtos []RouteOrderDTO) ([]routeorder.Entry, error) {
	entries := make([]routeorder.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	routeorder.Sort(entries)
	return entries, nil
}
