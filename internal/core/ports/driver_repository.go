package ports

import (
	"context"

	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver reference data.
type DriverRepository interface {
	// Add persists a new driver.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver by id. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAll returns every driver in ascending id order.
	GetAll(ctx context.Context) ([]*driver.Driver, error)

	// Count returns the number of drivers.
	Count(ctx context.Context) (int64, error)
}
