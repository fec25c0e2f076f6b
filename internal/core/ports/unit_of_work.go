package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. After Commit it returns an
	// error, which deferred calls ignore.
	Rollback(ctx context.Context) error

	ClientRepository() ClientRepository
	DriverRepository() DriverRepository
	StopRepository() StopRepository
	RouteRepository() RouteRepository
	RouteRunRepository() RouteRunRepository
	RouteOrderRepository() RouteOrderRepository
}
