// Package driverrepo persists drivers with GORM.
package driverrepo

import (
	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is the row layout of the drivers table. ScopeDay holds the
// lowercase day name or "all".
type DriverDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Color    string    `gorm:"type:varchar(7);not null"`
	ScopeDay string    `gorm:"type:varchar(16);not null;default:'all'"`
}

// TableName overrides GORM's default "driver_dtos".
func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:       d.ID().Bytes(),
		Name:     d.Name(),
		Color:    d.Color(),
		ScopeDay: d.ScopeDay().String(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	day, err := kernel.ParseDay(dto.ScopeDay)
	if err != nil {
		return nil, err
	}
	return driver.NewDriver(id, dto.Name, dto.Color, day)
}
