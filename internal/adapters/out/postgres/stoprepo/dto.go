// Package stoprepo persists dated delivery stops with GORM.
package stoprepo

import (
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/stop"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used in date filters.
const DateLayout = "2006-01-02"

// StopDTO is the row layout of the stops table.
type StopDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID    *uuid.UUID `gorm:"type:uuid;index:idx_stops_driver_date,priority:1"`
	ServiceDate time.Time  `gorm:"type:date;not null;index:idx_stops_driver_date,priority:2"`
	Sequence    int        `gorm:"type:int;not null;default:0"`
	Status      string     `gorm:"type:varchar(16);not null"`
}

// TableName overrides GORM's default "stop_dtos".
func (StopDTO) TableName() string {
	return "stops"
}

// DateKey renders t as the calendar date used by date filters.
func DateKey(t time.Time) string {
	return kernel.DateOf(t).Format(DateLayout)
}

func fromDomain(s *stop.Stop) StopDTO {
	dto := StopDTO{
		ID:          s.ID().Bytes(),
		ClientID:    s.ClientID().Bytes(),
		ServiceDate: s.Date(),
		Sequence:    s.Sequence(),
		Status:      s.Status().String(),
	}
	if driverID := s.DriverID(); driverID != nil {
		raw := driverID.Bytes()
		dto.DriverID = &raw
	}
	return dto
}

func toDomain(dto StopDTO) (*stop.Stop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
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

	status, err := stop.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return stop.RestoreStop(id, clientID, driverID, kernel.DateOf(dto.ServiceDate), dto.Sequence, status)
}
