package ports

import (
	"context"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/stop"
)

// StopRepository defines the persistence contract for stops. The engine
// never deletes stops; Add exists for fixtures and upstream generators.
type StopRepository interface {
	// Add persists a new stop.
	Add(ctx context.Context, entity *stop.Stop) error

	// Update persists the driver, sequence and status of an existing stop.
	Update(ctx context.Context, entity *stop.Stop) error

	// Get retrieves a stop by id. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*stop.Stop, error)

	// GetMany retrieves the stops with the given ids. Unknown ids are omitted.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*stop.Stop, error)

	// ListByClient returns all stops of a client ordered by date.
	ListByClient(ctx context.Context, clientID kernel.UUID) ([]*stop.Stop, error)

	// ListByDriverAndDate returns a driver's stops on one calendar date.
	ListByDriverAndDate(ctx context.Context, driverID kernel.UUID, date time.Time) ([]*stop.Stop, error)
}
