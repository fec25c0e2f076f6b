package queries

import (
	"context"
	"time"

	"routeengine/internal/adapters/out/postgres/routerepo"
	"routeengine/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRouteRunsQueryHandler reads the run log with plain SQL.
type GetRouteRunsQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteRunsQueryHandler creates a handler for run log queries.
func NewGetRouteRunsQueryHandler(db *gorm.DB) GetRouteRunsQueryHandler {
	return GetRouteRunsQueryHandler{db: db}
}

// Handle returns runs newest first.
func (h GetRouteRunsQueryHandler) Handle(
	ctx context.Context,
	query GetRouteRunsQuery,
) ([]RouteRunView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			reason,
			created_at,
			snapshot
		FROM route_runs
		WHERE day = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, query.Day().String(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]RouteRunView, 0)
	for rows.Next() {
		view := RouteRunView{Day: query.Day()}
		var id uuid.UUID
		var createdAt time.Time
		var snapshot routerepo.SnapshotDoc

		if err = rows.Scan(&id, &view.Reason, &createdAt, &snapshot); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		view.CreatedAt = createdAt.UTC()
		if view.Snapshot, err = snapshotView(snapshot); err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

func snapshotView(doc routerepo.SnapshotDoc) ([]RouteRunEntryView, error) {
	entries := make([]RouteRunEntryView, 0, len(doc))
	for _, e := range doc {
		driverID, err := kernel.UUIDFromString(e.DriverID)
		if err != nil {
			return nil, err
		}
		stopIDs := make([]kernel.UUID, 0, len(e.StopIDs))
		for _, raw := range e.StopIDs {
			stopID, stopErr := kernel.UUIDFromString(raw)
			if stopErr != nil {
				return nil, stopErr
			}
			stopIDs = append(stopIDs, stopID)
		}
		entries = append(entries, RouteRunEntryView{
			DriverID:   driverID,
			DriverName: e.DriverName,
			Color:      e.Color,
			StopIDs:    stopIDs,
		})
	}
	return entries, nil
}
