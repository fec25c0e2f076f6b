package queries

import (
	"context"

	"routeengine/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverRouteOrderQueryHandler reads a driver's stable order with plain SQL.
type GetDriverRouteOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverRouteOrderQueryHandler creates a handler for route order queries.
func NewGetDriverRouteOrderQueryHandler(db *gorm.DB) GetDriverRouteOrderQueryHandler {
	return GetDriverRouteOrderQueryHandler{db: db}
}

// Handle returns the driver's entries by (position, client id). Entries whose
// client row is gone are still listed with an empty name.
func (h GetDriverRouteOrderQueryHandler) Handle(
	ctx context.Context,
	query GetDriverRouteOrderQuery,
) ([]RouteOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.client_id,
			COALESCE(c.name, ''),
			COALESCE(c.address, ''),
			o.position
		FROM route_orders o
		LEFT JOIN clients c ON c.id = o.client_id
		WHERE o.driver_id = ?
		ORDER BY o.position, o.client_id
	`, query.DriverID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]RouteOrderView, 0)
	for rows.Next() {
		var view RouteOrderView
		var clientID uuid.UUID

		if err = rows.Scan(&clientID, &view.ClientName, &view.Address, &view.Position); err != nil {
			return nil, err
		}

		if view.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
