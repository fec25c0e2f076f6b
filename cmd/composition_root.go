package cmd

import (
	"log/slog"

	httpin "routeengine/internal/adapters/in/http"
	"routeengine/internal/adapters/out/postgres"
	"routeengine/internal/adapters/out/redis"
	"routeengine/internal/config"
	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/application/usecases/queries"
	"routeengine/internal/core/domain/services"
	"routeengine/internal/core/ports"
	"routeengine/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	engine     *config.Engine
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  *redis.RunPublisher
	clock      ports.Clock
	logger     *slog.Logger
}

// NewCompositionRoot wires the application. A Redis publisher is created
// only when configs.RedisURL is set.
func NewCompositionRoot(configs Config, engine *config.Engine, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if engine == nil {
		engine = config.DefaultEngine()
	}
	if logger == nil {
		logger = slog.Default()
	}

	root := &CompositionRoot{
		configs:    configs,
		engine:     engine,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      ports.ClockFunc(engine.Now),
		logger:     logger,
	}

	if configs.RedisURL != "" {
		publisher, err := redis.NewRunPublisherFromURL(configs.RedisURL, redis.WithPrefix(engine.ChannelPrefix))
		if err != nil {
			return nil, err
		}
		root.publisher = publisher
	}

	return root, nil
}

// Close releases the Redis connection, if any.
func (c *CompositionRoot) Close() error {
	if c.publisher != nil {
		return c.publisher.Close()
	}
	return nil
}

// Publisher returns the run publisher, or nil when Redis is not configured.
func (c *CompositionRoot) Publisher() ports.RouteRunPublisher {
	if c.publisher == nil {
		return nil
	}
	return c.publisher
}

// Clock returns the engine clock.
func (c *CompositionRoot) Clock() ports.Clock {
	return c.clock
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f, c.engine.Palette)
}

func (c *CompositionRoot) CreateCreateClientCommandHandler() commands.CreateClientCommandHandler {
	var f commands.ClientUoWFactory = FuncClientUoWFactory(func() commands.ClientUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateClientCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateStopCommandHandler() commands.CreateStopCommandHandler {
	var f commands.StopUoWFactory = FuncStopUoWFactory(func() commands.StopUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateStopCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignClientCommandHandler() commands.AssignClientCommandHandler {
	return commands.NewAssignClientCommandHandler(c.uow(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateBulkAssignClientsCommandHandler() commands.BulkAssignClientsCommandHandler {
	return commands.NewBulkAssignClientsCommandHandler(c.CreateAssignClientCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateDeduplicateStopsCommandHandler() commands.DeduplicateStopsCommandHandler {
	return commands.NewDeduplicateStopsCommandHandler(
		c.uow(),
		services.NewStopDeduplicator(c.engine.SentinelDriverNames),
		c.logger,
	)
}

func (c *CompositionRoot) CreateSequenceDayRoutesCommandHandler() commands.SequenceDayRoutesCommandHandler {
	return commands.NewSequenceDayRoutesCommandHandler(
		c.uow(),
		services.NewRouteSequencer(),
		c.Publisher(),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateMaterializeRouteCommandHandler() commands.MaterializeRouteCommandHandler {
	return commands.NewMaterializeRouteCommandHandler(c.uow(), services.NewRouteOrderMaterializer())
}

func (c *CompositionRoot) CreateReconcileRouteOrdersCommandHandler() commands.ReconcileRouteOrdersCommandHandler {
	return commands.NewReconcileRouteOrdersCommandHandler(c.uow(), c.logger)
}

func (c *CompositionRoot) CreateRestoreRouteRunCommandHandler() commands.RestoreRouteRunCommandHandler {
	return commands.NewRestoreRouteRunCommandHandler(c.uow(), c.Publisher(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetAllDriversQueryHandler() queries.GetAllDriversQueryHandler {
	return queries.NewGetAllDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllClientsQueryHandler() queries.GetAllClientsQueryHandler {
	return queries.NewGetAllClientsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDayStopsQueryHandler() queries.GetDayStopsQueryHandler {
	return queries.NewGetDayStopsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDayRoutesQueryHandler() queries.GetDayRoutesQueryHandler {
	return queries.NewGetDayRoutesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteRunsQueryHandler() queries.GetRouteRunsQueryHandler {
	return queries.NewGetRouteRunsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverRouteOrderQueryHandler() queries.GetDriverRouteOrderQueryHandler {
	return queries.NewGetDriverRouteOrderQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the API server over every use case.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateDriver:        c.CreateCreateDriverCommandHandler(),
		CreateClient:        c.CreateCreateClientCommandHandler(),
		CreateStop:          c.CreateCreateStopCommandHandler(),
		AssignClient:        c.CreateAssignClientCommandHandler(),
		BulkAssignClients:   c.CreateBulkAssignClientsCommandHandler(),
		DeduplicateStops:    c.CreateDeduplicateStopsCommandHandler(),
		SequenceDayRoutes:   c.CreateSequenceDayRoutesCommandHandler(),
		MaterializeRoute:    c.CreateMaterializeRouteCommandHandler(),
		ReconcileOrders:     c.CreateReconcileRouteOrdersCommandHandler(),
		RestoreRouteRun:     c.CreateRestoreRouteRunCommandHandler(),
		GetAllDrivers:       c.CreateGetAllDriversQueryHandler(),
		GetAllClients:       c.CreateGetAllClientsQueryHandler(),
		GetDayStops:         c.CreateGetDayStopsQueryHandler(),
		GetDayRoutes:        c.CreateGetDayRoutesQueryHandler(),
		GetRouteRuns:        c.CreateGetRouteRunsQueryHandler(),
		GetDriverRouteOrder: c.CreateGetDriverRouteOrderQueryHandler(),
	}, c.logger, httpin.WithRunHistoryLimit(c.engine.RunHistoryLimit))
}

func (c *CompositionRoot) CreateCleanupJob() *jobs.CleanupJob {
	return jobs.NewCleanupJob(
		c.CreateDeduplicateStopsCommandHandler(),
		c.CreateReconcileRouteOrdersCommandHandler(),
		c.clock,
		c.configs.CleanupCron,
		c.logger,
	)
}

func (c *CompositionRoot) CreateSequencingJob() *jobs.SequencingJob {
	return jobs.NewSequencingJob(
		c.CreateSequenceDayRoutesCommandHandler(),
		c.clock,
		c.configs.SequencingCron,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCleanupJob(), c.CreateSequencingJob())
}

type FuncClientUoWFactory func() commands.ClientUoW

func (f FuncClientUoWFactory) Create() commands.ClientUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncStopUoWFactory func() commands.StopUoW

func (f FuncStopUoWFactory) Create() commands.StopUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
