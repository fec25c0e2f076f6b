// Package clientrepo persists client aggregates with GORM.
package clientrepo

import (
	"routeengine/internal/core/domain/model/client"
	"routeengine/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ClientDTO is the row layout of the clients table. Coordinates are nullable;
// a client without both is not geocoded.
type ClientDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name            string     `gorm:"type:varchar(255);not null"`
	Address         string     `gorm:"type:text;not null;default:''"`
	Lat             *float64   `gorm:"type:double precision"`
	Lng             *float64   `gorm:"type:double precision"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	Paused          bool       `gorm:"not null;default:false"`
	DeliveryEnabled bool       `gorm:"not null;default:true"`
}

// TableName overrides GORM's default "client_dtos".
func (ClientDTO) TableName() string {
	return "clients"
}

func fromDomain(c *client.Client) ClientDTO {
	dto := ClientDTO{
		ID:              c.ID().Bytes(),
		Name:            c.Name(),
		Address:         c.Address(),
		Paused:          c.IsPaused(),
		DeliveryEnabled: c.IsDeliveryEnabled(),
	}
	if loc := c.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}
	if driverID := c.AssignedDriverID(); driverID != nil {
		raw := driverID.Bytes()
		dto.DriverID = &raw
	}
	return dto
}

func toDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		parsed, parseErr := kernel.UUIDFromBytes(dto.DriverID[:])
		if parseErr != nil {
			return nil, parseErr
		}
		driverID = &parsed
	}

	// Out-of-range stored coordinates are kept out of the aggregate so the
	// client reads as not geocoded.
	loc := kernel.LocationFromNullable(dto.Lat, dto.Lng)

	return client.RestoreClient(id, dto.Name, dto.Address, loc, driverID, dto.Paused, dto.DeliveryEnabled)
}
