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
)

// GetDrivers handles GET /api/v1/drivers - retrieves all drivers.
func (s *Server) GetDrivers(ctx echo.Context) error {
	query := queries.NewGetAllDriversQuery()

	drivers, err := s.h.GetAllDrivers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve drivers")
	}

	response := make([]servers.Driver, len(drivers))
	for i, d := range drivers {
		response[i] = toDriverViewResponse(d)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDriver handles POST /api/v1/drivers - creates a driver. A missing
// color is taken from the palette.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body servers.CreateDriverJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	scopeDay := kernel.AllDays
	if body.ScopeDay != nil {
		d, err := kernel.ParseDay(string(*body.ScopeDay))
		if err != nil {
			return badRequest(ctx, "Invalid driver data: "+err.Error())
		}
		scopeDay = d
	}
	color := ""
	if body.Color != nil {
		color = *body.Color
	}

	cmd, err := commands.NewCreateDriverCommand(body.Name, color, scopeDay)
	if err != nil {
		return badRequest(ctx, "Invalid driver data: "+err.Error())
	}

	d, err := s.h.CreateDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create driver")
	}

	return ctx.JSON(http.StatusCreated, toDriverResponse(d))
}

// MaterializeDriverRoute handles POST /api/v1/drivers/{driverId}/materialize.
func (s *Server) MaterializeDriverRoute(ctx echo.Context, driverId servers.DriverId) error {
	var body servers.MaterializeDriverRouteJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := toKernelUUID(driverId)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}
	cmd, err := commands.NewMaterializeRouteCommand(driverID, body.Date.Time)
	if err != nil {
		return badRequest(ctx, "Invalid materialize request: "+err.Error())
	}

	started := time.Now()
	result, err := s.h.MaterializeRoute.Handle(ctx.Request().Context(), cmd)
	metrics.ObservePass(metrics.PassMaterialize, started, false, err)
	if err != nil {
		return s.fail(ctx, err, "Failed to materialize route")
	}

	return ctx.JSON(http.StatusOK, servers.MaterializeResult{
		DriverId:       result.DriverID.Bytes(),
		Date:           apiDate(result.Date),
		StopIds:        apiUUIDs(result.StopIDs),
		SkippedClients: apiUUIDs(result.SkippedClients),
	})
}

// GetDriverRouteOrder handles GET /api/v1/drivers/{driverId}/route-order.
func (s *Server) GetDriverRouteOrder(ctx echo.Context, driverId servers.DriverId) error {
	driverID, err := toKernelUUID(driverId)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}
	query, err := queries.NewGetDriverRouteOrderQuery(driverID)
	if err != nil {
		return badRequest(ctx, "Invalid route order query: "+err.Error())
	}

	entries, err := s.h.GetDriverRouteOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve route order")
	}

	response := make([]servers.RouteOrderEntry, len(entries))
	for i, e := range entries {
		response[i] = servers.RouteOrderEntry{
			ClientId:   e.ClientID.Bytes(),
			ClientName: e.ClientName,
			Address:    e.Address,
			Position:   e.Position,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
