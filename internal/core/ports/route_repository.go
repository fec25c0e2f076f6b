package ports

import (
	"context"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
)

// RouteRepository stores the ordered stop-id list of each driver per weekday.
//
// Inside a transaction, Get and ListByDay lock the rows they return so that
// concurrent read-modify-write cycles on the same driver list serialize.
type RouteRepository interface {
	// Get returns the driver's route for day. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, driverID kernel.UUID, day kernel.Day) (*route.DriverRoute, error)

	// ListByDay returns every driver route for day in ascending driver id order.
	ListByDay(ctx context.Context, day kernel.Day) ([]*route.DriverRoute, error)

	// Save inserts or replaces the route.
	Save(ctx context.Context, r *route.DriverRoute) error
}

// RouteRunRepository is the append-only log of route snapshots.
type RouteRunRepository interface {
	// Add appends a run.
	Add(ctx context.Context, run *route.Run) error

	// Get retrieves a run by id. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*route.Run, error)

	// ListByDay returns up to limit runs for day, newest first.
	ListByDay(ctx context.Context, day kernel.Day, limit int) ([]*route.Run, error)
}
