package commands

import (
	"context"
	"log/slog"

	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/stop"
	"routeengine/internal/core/domain/services"
	"routeengine/internal/core/ports"
)

// DeduplicateStopsResult reports a deduplication pass.
type DeduplicateStopsResult struct {
	Day            kernel.Day
	Removed        []services.RemovedStop
	SkippedDrivers []kernel.UUID
}

// DeduplicateStopsCommandHandler loads every route of a weekday, removes
// duplicate (client, date) claims with StopDeduplicator and saves the routes
// that changed. A removed pending stop is also unassigned from the losing
// driver, so no later pass reading stops by driver brings it back.
//
// Routes whose driver record cannot be found are left out of the pass and
// reported in SkippedDrivers; the rest of the day is still processed.
type DeduplicateStopsCommandHandler struct {
	uowFactory   UoWFactory
	deduplicator services.StopDeduplicator
	logger       *slog.Logger
}

// NewDeduplicateStopsCommandHandler creates the handler.
func NewDeduplicateStopsCommandHandler(
	uowFactory UoWFactory,
	deduplicator services.StopDeduplicator,
	logger *slog.Logger,
) DeduplicateStopsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return DeduplicateStopsCommandHandler{
		uowFactory:   uowFactory,
		deduplicator: deduplicator,
		logger:       logger.With("component", "deduplicate_stops"),
	}
}

// Handle runs the pass in one transaction.
func (h DeduplicateStopsCommandHandler) Handle(ctx context.Context, cmd DeduplicateStopsCommand) (DeduplicateStopsResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeduplicateStopsResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeduplicateStopsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	result := DeduplicateStopsResult{Day: cmd.Day()}

	routes, err := uow.RouteRepository().ListByDay(ctx, cmd.Day())
	if err != nil {
		return DeduplicateStopsResult{}, err
	}
	if len(routes) == 0 {
		return result, nil
	}

	drivers, err := driversByID(ctx, uow.DriverRepository())
	if err != nil {
		return DeduplicateStopsResult{}, err
	}

	candidates := make([]services.DedupRoute, 0, len(routes))
	var stopIDs []kernel.UUID
	for _, r := range routes {
		d, ok := drivers[r.DriverID()]
		if !ok {
			h.logger.WarnContext(ctx, "driver not found, skipping route",
				"driver_id", r.DriverID().String(),
				"day", cmd.Day().String(),
				"stops", r.Len(),
			)
			result.SkippedDrivers = append(result.SkippedDrivers, r.DriverID())
			continue
		}
		candidates = append(candidates, services.DedupRoute{Driver: d, Route: r})
		stopIDs = append(stopIDs, r.StopIDs()...)
	}

	stops, err := uow.StopRepository().GetMany(ctx, stopIDs)
	if err != nil {
		return DeduplicateStopsResult{}, err
	}
	claimOf := make(map[kernel.UUID]services.ClaimKey, len(stops))
	stopByID := make(map[kernel.UUID]*stop.Stop, len(stops))
	for _, s := range stops {
		claimOf[s.ID()] = services.NewClaimKey(s.ClientID(), s.Date())
		stopByID[s.ID()] = s
	}

	dedup := h.deduplicator.Deduplicate(candidates, claimOf)
	for _, r := range dedup.Changed {
		if err = uow.RouteRepository().Save(ctx, r); err != nil {
			return DeduplicateStopsResult{}, err
		}
	}
	for _, removed := range dedup.Removed {
		s := stopByID[removed.StopID]
		if s.IsCompleted() || !kernel.EqualPtr(s.DriverID(), &removed.DriverID) {
			continue
		}
		if err = s.Unassign(); err != nil {
			return DeduplicateStopsResult{}, err
		}
		if err = uow.StopRepository().Update(ctx, s); err != nil {
			return DeduplicateStopsResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return DeduplicateStopsResult{}, err
	}

	result.Removed = dedup.Removed
	for _, removed := range dedup.Removed {
		h.logger.InfoContext(ctx, "removed duplicate stop",
			"client_id", removed.ClientID.String(),
			"driver_id", removed.DriverID.String(),
			"stop_id", removed.StopID.String(),
			"kept_driver_id", removed.KeptDriverID.String(),
		)
	}
	return result, nil
}

func driversByID(ctx context.Context, repo ports.DriverRepository) (map[kernel.UUID]*driver.Driver, error) {
	all, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[kernel.UUID]*driver.Driver, len(all))
	for _, d := range all {
		out[d.ID()] = d
	}
	return out, nil
}
