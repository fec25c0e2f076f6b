// Package ports defines the persistence and integration contracts of the
// routing engine. Adapters implement them; application handlers depend on them.
package ports

import (
	"context"

	"routeengine/internal/core/domain/model/client"
	"routeengine/internal/core/domain/model/kernel"
)

// ClientRepository defines the persistence contract for client aggregates.
type ClientRepository interface {
	// Add persists a new client.
	Add(ctx context.Context, aggregate *client.Client) error

	// Update persists changes to an existing client, including its assigned driver.
	Update(ctx context.Context, aggregate *client.Client) error

	// Get retrieves a client by id. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)

	// GetMany retrieves the clients with the given ids. Unknown ids are omitted.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*client.Client, error)

	// ListAssigned returns every client with a non-null assigned driver.
	ListAssigned(ctx context.Context) ([]*client.Client, error)
}
