package queries

import (
	"context"

	"routeengine/internal/adapters/out/postgres/routerepo"
	"routeengine/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDayRoutesQueryHandler reads driver routes with plain SQL.
type GetDayRoutesQueryHandler struct {
	db *gorm.DB
}

// NewGetDayRoutesQueryHandler creates a handler for day route queries.
func NewGetDayRoutesQueryHandler(db *gorm.DB) GetDayRoutesQueryHandler {
	return GetDayRoutesQueryHandler{db: db}
}

// Handle returns one view per driver, ordered by driver id.
func (h GetDayRoutesQueryHandler) Handle(
	ctx context.Context,
	query GetDayRoutesQuery,
) ([]DriverRouteView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	day := query.Day().String()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			d.color,
			r.stop_ids
		FROM drivers d
		LEFT JOIN driver_routes r ON r.driver_id = d.id AND r.day = ?
		WHERE r.driver_id IS NOT NULL
			OR d.scope_day = ?
			OR d.scope_day = ?
		ORDER BY d.id
	`, day, day, kernel.AllDays.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]DriverRouteView, 0)
	for rows.Next() {
		var view DriverRouteView
		var id uuid.UUID
		var stopIDs routerepo.StopIDList

		if err = rows.Scan(&id, &view.Name, &view.Color, &stopIDs); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.StopIDs, err = stopIDs.ToDomain(); err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
