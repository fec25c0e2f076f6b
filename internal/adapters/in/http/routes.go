package http

import (
	"net/http"
	"time"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/application/usecases/queries"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/generated/servers"
	"routeengine/internal/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// GetDayRoutes handles GET /api/v1/routes/{day} - every driver's stop list of a weekday.
func (s *Server) GetDayRoutes(ctx echo.Context, day servers.Day) error {
	d, err := kernel.ParseDay(string(day))
	if err != nil {
		return badRequest(ctx, "Invalid day: "+err.Error())
	}
	query, err := queries.NewGetDayRoutesQuery(d)
	if err != nil {
		return badRequest(ctx, "Invalid day: "+err.Error())
	}

	routes, err := s.h.GetDayRoutes.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve routes")
	}

	response := make([]servers.DriverRoute, len(routes))
	for i, r := range routes {
		response[i] = servers.DriverRoute{
			DriverId: r.ID.Bytes(),
			Name:     r.Name,
			Color:    r.Color,
			StopIds:  apiUUIDs(r.StopIDs),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SequenceDayRoutes handles POST /api/v1/routes/{day}/sequence.
func (s *Server) SequenceDayRoutes(ctx echo.Context, day servers.Day) error {
	var body servers.SequenceDayRoutesJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	d, err := kernel.ParseDay(string(day))
	if err != nil {
		return badRequest(ctx, "Invalid day: "+err.Error())
	}
	driverID, err := toKernelUUIDPtr(body.DriverId)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}
	cmd, err := commands.NewSequenceDayRoutesCommand(d, driverID)
	if err != nil {
		return badRequest(ctx, "Invalid sequencing request: "+err.Error())
	}

	started := time.Now()
	result, err := s.h.SequenceDayRoutes.Handle(ctx.Request().Context(), cmd)
	metrics.ObservePass(metrics.PassSequence, started, false, err)
	if err != nil {
		return s.fail(ctx, err, "Failed to sequence routes")
	}
	metrics.StopsSequenced.Add(float64(result.Sequenced))

	return ctx.JSON(http.StatusOK, servers.SequenceResult{
		Run:       toRouteRunResponse(result.Run),
		Sequenced: result.Sequenced,
		Published: result.Published,
	})
}

// DeduplicateDayStops handles POST /api/v1/routes/{day}/dedup.
func (s *Server) DeduplicateDayStops(ctx echo.Context, day servers.Day) error {
	d, err := kernel.ParseDay(string(day))
	if err != nil {
		return badRequest(ctx, "Invalid day: "+err.Error())
	}
	cmd, err := commands.NewDeduplicateStopsCommand(d)
	if err != nil {
		return badRequest(ctx, "Invalid deduplication request: "+err.Error())
	}

	started := time.Now()
	result, err := s.h.DeduplicateStops.Handle(ctx.Request().Context(), cmd)
	metrics.ObservePass(metrics.PassDedup, started, len(result.SkippedDrivers) > 0, err)
	if err != nil {
		return s.fail(ctx, err, "Failed to deduplicate stops")
	}
	metrics.StopsRemoved.Add(float64(len(result.Removed)))

	return ctx.JSON(http.StatusOK, toDedupResponse(result))
}

// GetRouteRuns handles GET /api/v1/routes/{day}/runs - the run log, newest first.
func (s *Server) GetRouteRuns(ctx echo.Context, day servers.Day, params servers.GetRouteRunsParams) error {
	d, err := kernel.ParseDay(string(day))
	if err != nil {
		return badRequest(ctx, "Invalid day: "+err.Error())
	}
	limit := s.runHistoryLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	query, err := queries.NewGetRouteRunsQuery(d, limit)
	if err != nil {
		return badRequest(ctx, "Invalid run query: "+err.Error())
	}

	runs, err := s.h.GetRouteRuns.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve route runs")
	}

	response := make([]servers.RouteRun, len(runs))
	for i, r := range runs {
		response[i] = toRouteRunViewResponse(r)
	}

	return ctx.JSON(http.StatusOK, response)
}

// RestoreRouteRun handles POST /api/v1/route-runs/{runId}/restore.
func (s *Server) RestoreRouteRun(ctx echo.Context, runId openapi_types.UUID) error {
	runID, err := toKernelUUID(runId)
	if err != nil {
		return badRequest(ctx, "Invalid run id: "+err.Error())
	}
	cmd, err := commands.NewRestoreRouteRunCommand(runID)
	if err != nil {
		return badRequest(ctx, "Invalid restore request: "+err.Error())
	}

	started := time.Now()
	result, err := s.h.RestoreRouteRun.Handle(ctx.Request().Context(), cmd)
	metrics.ObservePass(metrics.PassRestore, started, err == nil && len(result.Dropped) > 0, err)
	if err != nil {
		return s.fail(ctx, err, "Failed to restore route run")
	}

	return ctx.JSON(http.StatusOK, servers.RestoreResult{
		Run:       toRouteRunResponse(result.Run),
		Restored:  result.Restored,
		Dropped:   apiUUIDs(result.Dropped),
		Published: result.Published,
	})
}

// ReconcileRouteOrders handles POST /api/v1/route-orders/reconcile.
func (s *Server) ReconcileRouteOrders(ctx echo.Context) error {
	started := time.Now()
	result, err := s.h.ReconcileOrders.Handle(ctx.Request().Context(), commands.NewReconcileRouteOrdersCommand())
	metrics.ObservePass(metrics.PassReconcile, started, false, err)
	if err != nil {
		return s.fail(ctx, err, "Failed to reconcile route orders")
	}

	return ctx.JSON(http.StatusOK, servers.ReconcileResult{
		Checked:  result.Checked,
		Inserted: result.Inserted,
	})
}
