package queries

import (
	"context"
	"database/sql"
	"time"

	"routeengine/internal/adapters/out/postgres/stoprepo"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/stop"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDayStopsQueryHandler reads the stops of a date with plain SQL.
type GetDayStopsQueryHandler struct {
	db *gorm.DB
}

// NewGetDayStopsQueryHandler creates a handler for day stop queries.
func NewGetDayStopsQueryHandler(db *gorm.DB) GetDayStopsQueryHandler {
	return GetDayStopsQueryHandler{db: db}
}

// Handle returns the date's stops grouped by driver (unassigned last) and
// ordered by sequence within a driver.
func (h GetDayStopsQueryHandler) Handle(
	ctx context.Context,
	query GetDayStopsQuery,
) ([]DayStopView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := `
		SELECT
			s.id,
			s.client_id,
			c.name,
			c.address,
			c.lat,
			c.lng,
			s.driver_id,
			d.name,
			d.color,
			s.service_date,
			s.sequence,
			s.status
		FROM stops s
		JOIN clients c ON c.id = s.client_id
		LEFT JOIN drivers d ON d.id = s.driver_id
		WHERE date(s.service_date) = ?`
	args := []any{stoprepo.DateKey(query.Date())}
	if driverID := query.DriverID(); driverID != nil {
		stmt += ` AND s.driver_id = ?`
		args = append(args, driverID.Bytes())
	}
	stmt += ` ORDER BY s.driver_id IS NULL, s.driver_id, s.sequence, s.id`

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]DayStopView, 0)
	for rows.Next() {
		var view DayStopView
		var stopID, clientID uuid.UUID
		var driverID uuid.NullUUID
		var lat, lng *float64
		var driverName, driverColor sql.NullString
		var date time.Time
		var status string

		if err = rows.Scan(
			&stopID,
			&clientID,
			&view.ClientName,
			&view.Address,
			&lat,
			&lng,
			&driverID,
			&driverName,
			&driverColor,
			&date,
			&view.Sequence,
			&status,
		); err != nil {
			return nil, err
		}

		if view.StopID, err = kernel.UUIDFromBytes(stopID[:]); err != nil {
			return nil, err
		}
		if view.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
			return nil, err
		}
		if view.DriverID, err = nullableUUID(driverID); err != nil {
			return nil, err
		}
		if view.Status, err = stop.ParseStatus(status); err != nil {
			return nil, err
		}
		view.Location = kernel.LocationFromNullable(lat, lng)
		view.DriverName = driverName.String
		view.DriverColor = driverColor.String
		view.Date = kernel.DateOf(date)
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
