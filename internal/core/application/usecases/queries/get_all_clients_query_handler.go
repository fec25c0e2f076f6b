package queries

import (
	"context"

	"routeengine/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllClientsQueryHandler reads the client list with plain SQL.
type GetAllClientsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllClientsQueryHandler creates a handler for client list queries.
func NewGetAllClientsQueryHandler(db *gorm.DB) GetAllClientsQueryHandler {
	return GetAllClientsQueryHandler{db: db}
}

// Handle returns clients sorted by name, then id.
func (h GetAllClientsQueryHandler) Handle(
	ctx context.Context,
	query GetAllClientsQuery,
) ([]ClientView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			name,
			address,
			lat,
			lng,
			driver_id,
			paused,
			delivery_enabled
		FROM clients`
	args := []any{}
	if driverID := query.DriverID(); driverID != nil {
		sql += ` WHERE driver_id = ?`
		args = append(args, driverID.Bytes())
	}
	sql += ` ORDER BY name, id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]ClientView, 0)
	for rows.Next() {
		var view ClientView
		var id uuid.UUID
		var driverID uuid.NullUUID
		var lat, lng *float64

		if err = rows.Scan(
			&id,
			&view.Name,
			&view.Address,
			&lat,
			&lng,
			&driverID,
			&view.Paused,
			&view.DeliveryEnabled,
		); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.DriverID, err = nullableUUID(driverID); err != nil {
			return nil, err
		}
		view.Location = kernel.LocationFromNullable(lat, lng)
		clients = append(clients, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

func nullableUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil //nolint:nilnil // absent id is not an error
	}
	id, err := kernel.UUIDFromBytes(v.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
