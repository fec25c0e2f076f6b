package queries_test

import (
	"testing"
	"time"

	"routeengine/internal/adapters/out/postgres/sqlitetest"
	"routeengine/internal/core/domain/model/client"
	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/model/stop"

	"gorm.io/gorm"
)

var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

type fixture struct {
	db   *gorm.DB
	seed *sqlitetest.Seeder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := sqlitetest.Open(t)
	return &fixture{db: db, seed: sqlitetest.NewSeeder(t, db)}
}

func (f *fixture) driver(name, color string, scope kernel.Day) *driver.Driver {
	return f.seed.Driver(name, color, scope)
}

func (f *fixture) client(name string, loc *kernel.Location, driverID *kernel.UUID) *client.Client {
	return f.seed.Client(name, loc, driverID)
}

func (f *fixture) stop(clientID kernel.UUID, driverID *kernel.UUID, date time.Time, sequence int) *stop.Stop {
	return f.seed.Stop(clientID, driverID, date, sequence)
}

func (f *fixture) route(driverID kernel.UUID, day kernel.Day, stopIDs ...kernel.UUID) {
	f.seed.Route(driverID, day, stopIDs...)
}

func (f *fixture) order(driverID, clientID kernel.UUID, position int) {
	f.seed.Order(driverID, clientID, position)
}

func (f *fixture) run(day kernel.Day, reason route.Reason, at time.Time, snapshot ...route.SnapshotEntry) *route.Run {
	return f.seed.Run(day, reason, at, snapshot...)
}

func location(t *testing.T, lat, lng float64) *kernel.Location {
	return sqlitetest.Location(t, lat, lng)
}
