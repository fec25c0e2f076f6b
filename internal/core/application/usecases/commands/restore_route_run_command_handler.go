package commands

import (
	"context"
	"errors"
	"log/slog"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/ports"
	"routeengine/internal/pkg/errs"
)

// RestoreRouteRunResult reports a restore.
type RestoreRouteRunResult struct {
	Run       *route.Run
	Restored  int
	Dropped   []kernel.UUID
	Published bool
}

// RestoreRouteRunCommandHandler writes the lists of an earlier run back
// into the routes of its day and records a new run with reason "restore".
//
// Drivers that are not part of the snapshot keep their current list. Stop
// ids from the snapshot that no longer exist are dropped and reported.
type RestoreRouteRunCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.RouteRunPublisher
	clock      ports.Clock
	logger     *slog.Logger
}

// NewRestoreRouteRunCommandHandler creates the handler. publisher may be nil.
func NewRestoreRouteRunCommandHandler(
	uowFactory UoWFactory,
	publisher ports.RouteRunPublisher,
	clock ports.Clock,
	logger *slog.Logger,
) RestoreRouteRunCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return RestoreRouteRunCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "restore_route_run"),
	}
}

// Handle restores the run in one transaction and publishes the new run.
func (h RestoreRouteRunCommandHandler) Handle(ctx context.Context, cmd RestoreRouteRunCommand) (RestoreRouteRunResult, error) {
	if err := cmd.Validate(); err != nil {
		return RestoreRouteRunResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RestoreRouteRunResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	source, err := uow.RouteRunRepository().Get(ctx, cmd.RunID())
	if err != nil {
		return RestoreRouteRunResult{}, err
	}

	snapshot := source.Snapshot()
	var wanted []kernel.UUID
	for _, e := range snapshot {
		wanted = append(wanted, e.StopIDs...)
	}
	stops, err := uow.StopRepository().GetMany(ctx, wanted)
	if err != nil {
		return RestoreRouteRunResult{}, err
	}
	exists := make(map[kernel.UUID]bool, len(stops))
	for _, s := range stops {
		exists[s.ID()] = true
	}

	var result RestoreRouteRunResult
	routes := uow.RouteRepository()
	for _, e := range snapshot {
		r, err := routes.Get(ctx, e.DriverID, source.Day())
		if errors.Is(err, errs.ErrObjectNotFound) {
			r, err = route.NewDriverRoute(e.DriverID, source.Day(), nil)
		}
		if err != nil {
			return RestoreRouteRunResult{}, err
		}

		kept := make([]kernel.UUID, 0, len(e.StopIDs))
		for _, id := range e.StopIDs {
			if exists[id] {
				kept = append(kept, id)
				continue
			}
			result.Dropped = append(result.Dropped, id)
		}
		r.Replace(kept)
		if err = routes.Save(ctx, r); err != nil {
			return RestoreRouteRunResult{}, err
		}
		result.Restored++
	}

	current, err := routes.ListByDay(ctx, source.Day())
	if err != nil {
		return RestoreRouteRunResult{}, err
	}
	drivers, err := driversByID(ctx, uow.DriverRepository())
	if err != nil {
		return RestoreRouteRunResult{}, err
	}
	run, err := route.NewRun(source.Day(), route.ReasonRestore, h.clock.Now(), snapshotOf(current, drivers))
	if err != nil {
		return RestoreRouteRunResult{}, err
	}
	if err = uow.RouteRunRepository().Add(ctx, run); err != nil {
		return RestoreRouteRunResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RestoreRouteRunResult{}, err
	}

	result.Run = run
	result.Published = publishRun(ctx, h.publisher, run, h.logger)

	h.logger.InfoContext(ctx, "route run restored",
		"source_run_id", source.ID().String(),
		"run_id", run.ID().String(),
		"drivers", result.Restored,
		"dropped_stops", len(result.Dropped),
	)
	return result, nil
}
