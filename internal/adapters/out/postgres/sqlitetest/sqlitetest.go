// Package sqlitetest opens a migrated in-memory SQLite database and seeds it
// through the GORM repositories, for tests that need real persistence
// without a PostgreSQL container.
package sqlitetest

import (
	"context"
	"testing"
	"time"

	"routeengine/internal/adapters/out/postgres"
	"routeengine/internal/core/domain/model/client"
	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/model/routeorder"
	"routeengine/internal/core/domain/model/stop"
	"routeengine/internal/core/ports"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory database closed at the end of the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(context.Background(), db))
	return db
}

// Seeder writes fixtures through a unit of work without a transaction.
type Seeder struct {
	t   testing.TB
	ctx context.Context
	uow ports.UnitOfWork
}

// NewSeeder creates a Seeder for db.
func NewSeeder(t testing.TB, db *gorm.DB) *Seeder {
	return &Seeder{
		t:   t,
		ctx: context.Background(),
		uow: postgres.NewGormUnitOfWorkFactory(db).Create(),
	}
}

// Driver stores a driver.
func (s *Seeder) Driver(name, color string, scope kernel.Day) *driver.Driver {
	d, err := driver.NewDriver(kernel.NewUUID(), name, color, scope)
	require.NoError(s.t, err)
	require.NoError(s.t, s.uow.DriverRepository().Add(s.ctx, d))
	return d
}

// Client stores an active client. loc and driverID may be nil.
func (s *Seeder) Client(name string, loc *kernel.Location, driverID *kernel.UUID) *client.Client {
	c, err := client.RestoreClient(kernel.NewUUID(), name, name+" street", loc, driverID, false, true)
	require.NoError(s.t, err)
	require.NoError(s.t, s.uow.ClientRepository().Add(s.ctx, c))
	return c
}

// Stop stores a pending stop.
func (s *Seeder) Stop(clientID kernel.UUID, driverID *kernel.UUID, date time.Time, sequence int) *stop.Stop {
	st, err := stop.RestoreStop(kernel.NewUUID(), clientID, driverID, date, sequence, stop.Pending)
	require.NoError(s.t, err)
	require.NoError(s.t, s.uow.StopRepository().Add(s.ctx, st))
	return st
}

// Route stores a driver's stop list for a weekday.
func (s *Seeder) Route(driverID kernel.UUID, day kernel.Day, stopIDs ...kernel.UUID) *route.DriverRoute {
	r, err := route.NewDriverRoute(driverID, day, stopIDs)
	require.NoError(s.t, err)
	require.NoError(s.t, s.uow.RouteRepository().Save(s.ctx, r))
	return r
}

// Order stores a stable route order entry.
func (s *Seeder) Order(driverID, clientID kernel.UUID, position int) {
	e, err := routeorder.NewEntry(driverID, clientID, position)
	require.NoError(s.t, err)
	require.NoError(s.t, s.uow.RouteOrderRepository().Add(s.ctx, e))
}

// Run appends a run to the log.
func (s *Seeder) Run(day kernel.Day, reason route.Reason, at time.Time, snapshot ...route.SnapshotEntry) *route.Run {
	r, err := route.NewRun(day, reason, at, snapshot)
	require.NoError(s.t, err)
	require.NoError(s.t, s.uow.RouteRunRepository().Add(s.ctx, r))
	return r
}

// UnitOfWork exposes the seeder's unit of work for assertions.
func (s *Seeder) UnitOfWork() ports.UnitOfWork {
	return s.uow
}

// Location builds a valid location.
func Location(t testing.TB, lat, lng float64) *kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return &loc
}
