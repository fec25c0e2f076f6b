package postgres_test

import (
	"context"
	"testing"
	"time"

	"routeengine/internal/adapters/out/postgres"
	"routeengine/internal/adapters/out/postgres/pgtest"
	"routeengine/internal/core/domain/model/client"
	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/model/routeorder"
	"routeengine/internal/core/domain/model/stop"
	"routeengine/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	pg, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.pg = pg

	suite.Require().NoError(postgres.Migrate(ctx, pg.DB))
	suite.factory = postgres.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(
		"drivers", "clients", "stops", "driver_routes", "route_runs", "route_orders"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) newDriver() *driver.Driver {
	d, err := driver.NewDriver(kernel.NewUUID(), "Alice", "#123456", kernel.AllDays)
	suite.Require().NoError(err)
	return d
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMigrate_IsIdempotent() {
	suite.Require().NoError(postgres.Migrate(context.Background(), suite.pg.DB))

	for _, table := range []string{"drivers", "clients", "stops", "driver_routes", "route_runs", "route_orders"} {
		suite.True(suite.pg.DB.Migrator().HasTable(table), table)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	d := suite.newDriver()
	c, err := client.NewClient(kernel.NewUUID(), "Ada", "1 Main St")
	suite.Require().NoError(err)
	suite.Require().NoError(c.AssignDriver(d.ID()))
	driverID := d.ID()
	s, err := stop.NewStop(kernel.NewUUID(), c.ID(), &driverID, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	r, err := route.NewDriverRoute(d.ID(), kernel.Monday, []kernel.UUID{s.ID()})
	suite.Require().NoError(err)
	entry, err := routeorder.NewEntry(d.ID(), c.ID(), 1)
	suite.Require().NoError(err)

	uow := suite.factory.CreateGorm()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, d))
	suite.Require().NoError(uow.ClientRepository().Add(ctx, c))
	suite.Require().NoError(uow.StopRepository().Add(ctx, s))
	suite.Require().NoError(uow.RouteRepository().Save(ctx, r))
	suite.Require().NoError(uow.RouteOrderRepository().Add(ctx, entry))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Len(uow.TrackedAggregates(), 4)

	reader := suite.factory.Create()
	gotRoute, err := reader.RouteRepository().Get(ctx, d.ID(), kernel.Monday)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{s.ID()}, gotRoute.StopIDs())
	gotEntry, err := reader.RouteOrderRepository().Find(ctx, d.ID(), c.ID())
	suite.Require().NoError(err)
	suite.Equal(1, gotEntry.Position())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	d := suite.newDriver()

	uow := suite.factory.CreateGorm()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, d))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(uow.TrackedAggregates())
	_, err := suite.factory.Create().DriverRepository().Get(ctx, d.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUncommittedWrites_InvisibleToOtherUnits() {
	ctx := context.Background()
	d := suite.newDriver()

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	defer func() { _ = writer.Rollback(ctx) }()
	suite.Require().NoError(writer.DriverRepository().Add(ctx, d))

	n, err := suite.factory.Create().DriverRepository().Count(ctx)
	suite.Require().NoError(err)
	suite.Zero(n)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWithoutTransaction_WritesImmediately() {
	ctx := context.Background()
	d := suite.newDriver()

	suite.Require().NoError(suite.factory.Create().DriverRepository().Add(ctx, d))

	n, err := suite.factory.Create().DriverRepository().Count(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), n)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
