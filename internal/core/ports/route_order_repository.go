package ports

import (
	"context"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/routeorder"
)

// RouteOrderRepository stores the stable per-driver client order.
// Rows are unique on (driver, client). Positions are never renumbered.
type RouteOrderRepository interface {
	// Add inserts an entry.
	Add(ctx context.Context, entry routeorder.Entry) error

	// Find returns the (driver, client) entry. Returns errs.ErrObjectNotFound when absent.
	Find(ctx context.Context, driverID kernel.UUID, clientID kernel.UUID) (routeorder.Entry, error)

	// Delete removes the (driver, client) entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, driverID kernel.UUID, clientID kernel.UUID) error

	// ListByDriver returns a driver's entries ordered by (position, client id).
	ListByDriver(ctx context.Context, driverID kernel.UUID) ([]routeorder.Entry, error)

	// ListByClient returns every entry for a client, across drivers.
	ListByClient(ctx context.Context, clientID kernel.UUID) ([]routeorder.Entry, error)

	// MaxPosition returns the highest position for a driver, or 0 when the list is empty.
	MaxPosition(ctx context.Context, driverID kernel.UUID) (int, error)
}
