package postgres

import (
	"context"
	"fmt"

	"routeengine/internal/adapters/out/postgres/clientrepo"
	"routeengine/internal/adapters/out/postgres/driverrepo"
	"routeengine/internal/adapters/out/postgres/routeorderrepo"
	"routeengine/internal/adapters/out/postgres/routerepo"
	"routeengine/internal/adapters/out/postgres/stoprepo"

	"gorm.io/gorm"
)

// Models lists every persisted table in creation order.
func Models() []any {
	return []any{
		&driverrepo.DriverDTO{},
		&clientrepo.ClientDTO{},
		&stoprepo.StopDTO{},
		&routerepo.DriverRouteDTO{},
		&routerepo.RouteRunDTO{},
		&routeorderrepo.RouteOrderDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
