package http

import (
	"net/http"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/application/usecases/queries"
	"routeengine/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// GetStops handles GET /api/v1/stops - retrieves the stops of one date.
func (s *Server) GetStops(ctx echo.Context, params servers.GetStopsParams) error {
	driverID, err := toKernelUUIDPtr(params.DriverId)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}
	query, err := queries.NewGetDayStopsQuery(params.Date.Time, driverID)
	if err != nil {
		return badRequest(ctx, "Invalid stop query: "+err.Error())
	}

	stops, err := s.h.GetDayStops.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve stops")
	}

	response := make([]servers.DayStop, len(stops))
	for i, st := range stops {
		response[i] = toDayStopResponse(st)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateStop handles POST /api/v1/stops - creates a pending stop.
func (s *Server) CreateStop(ctx echo.Context) error {
	var body servers.CreateStopJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := toKernelUUID(body.ClientId)
	if err != nil {
		return badRequest(ctx, "Invalid client id: "+err.Error())
	}
	driverID, err := toKernelUUIDPtr(body.DriverId)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}
	cmd, err := commands.NewCreateStopCommand(clientID, driverID, body.Date.Time)
	if err != nil {
		return badRequest(ctx, "Invalid stop data: "+err.Error())
	}

	st, err := s.h.CreateStop.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create stop")
	}

	return ctx.JSON(http.StatusCreated, toStopResponse(st))
}
