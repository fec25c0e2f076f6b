package queries

import (
	"context"

	"routeengine/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllDriversQueryHandler reads the driver list with plain SQL.
type GetAllDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetAllDriversQueryHandler creates a handler for driver list queries.
func NewGetAllDriversQueryHandler(db *gorm.DB) GetAllDriversQueryHandler {
	return GetAllDriversQueryHandler{db: db}
}

// Handle returns every driver sorted by name, then id.
func (h GetAllDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAllDriversQuery,
) ([]DriverView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]DriverView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			color,
			scope_day
		FROM drivers
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view DriverView
		var id uuid.UUID
		var scopeDay string

		if err = rows.Scan(&id, &view.Name, &view.Color, &scopeDay); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.ScopeDay, err = kernel.ParseDay(scopeDay); err != nil {
			return nil, err
		}
		drivers = append(drivers, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
