package http

import (
	"net/http"
	"time"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/application/usecases/queries"
	"routeengine/internal/generated/servers"
	"routeengine/internal/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// GetClients handles GET /api/v1/clients - retrieves clients, optionally of one driver.
func (s *Server) GetClients(ctx echo.Context, params servers.GetClientsParams) error {
	driverID, err := toKernelUUIDPtr(params.DriverId)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}
	query, err := queries.NewGetAllClientsQuery(driverID)
	if err != nil {
		return badRequest(ctx, "Invalid client query: "+err.Error())
	}

	clients, err := s.h.GetAllClients.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve clients")
	}

	response := make([]servers.Client, len(clients))
	for i, c := range clients {
		response[i] = toClientViewResponse(c)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateClient handles POST /api/v1/clients - creates a client.
func (s *Server) CreateClient(ctx echo.Context) error {
	var body servers.CreateClientJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	address := ""
	if body.Address != nil {
		address = *body.Address
	}
	cmd, err := commands.NewCreateClientCommand(body.Name, address, body.Lat, body.Lng)
	if err != nil {
		return badRequest(ctx, "Invalid client data: "+err.Error())
	}

	c, err := s.h.CreateClient.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create client")
	}

	return ctx.JSON(http.StatusCreated, toClientResponse(c))
}

// AssignClient handles PUT /api/v1/clients/{clientId}/assignment. A null
// driverId unassigns the client. Follow-up steps that fail are returned as
// warnings with status 200 since the assignment itself was applied.
func (s *Server) AssignClient(ctx echo.Context, clientId openapi_types.UUID) error {
	var body servers.AssignClientJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := toKernelUUID(clientId)
	if err != nil {
		return badRequest(ctx, "Invalid client id: "+err.Error())
	}
	driverID, err := toKernelUUIDPtr(body.DriverId)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}
	scope, err := parseScope(body.Scope)
	if err != nil {
		return badRequest(ctx, "Invalid scope: "+err.Error())
	}
	cmd, err := commands.NewAssignClientCommand(clientID, driverID, scope)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	started := time.Now()
	result, err := s.h.AssignClient.Handle(ctx.Request().Context(), cmd)
	metrics.ObservePass(metrics.PassAssign, started, result.Partial(), err)
	if err != nil {
		return s.fail(ctx, err, "Failed to assign client")
	}
	countStepFailures(result.Failures)

	return ctx.JSON(http.StatusOK, toAssignResponse(result))
}

// BulkAssignClients handles POST /api/v1/clients/assignments. Each client is
// assigned on its own; per-client failures are listed in the response.
func (s *Server) BulkAssignClients(ctx echo.Context) error {
	var body servers.BulkAssignClientsJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientIDs, err := toKernelUUIDs(body.ClientIds)
	if err != nil {
		return badRequest(ctx, "Invalid client id: "+err.Error())
	}
	driverID, err := toKernelUUIDPtr(body.DriverId)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}
	scope, err := parseScope(body.Scope)
	if err != nil {
		return badRequest(ctx, "Invalid scope: "+err.Error())
	}
	cmd, err := commands.NewBulkAssignClientsCommand(clientIDs, driverID, scope)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	started := time.Now()
	result, err := s.h.BulkAssignClients.Handle(ctx.Request().Context(), cmd)
	metrics.ObservePass(metrics.PassAssign, started, len(result.Partial) > 0 || result.Failed > 0, err)
	if err != nil {
		return s.fail(ctx, err, "Failed to assign clients")
	}
	for _, p := range result.Partial {
		countStepFailures(p.Failures)
	}

	return ctx.JSON(http.StatusOK, toBulkAssignResponse(result))
}

func parseScope(scope *servers.AssignmentScope) (commands.AssignmentScope, error) {
	if scope == nil {
		return commands.AllStops(), nil
	}
	var kind, day, date string
	if scope.Kind != nil {
		kind = string(*scope.Kind)
	}
	if scope.Day != nil {
		day = string(*scope.Day)
	}
	if scope.Date != nil {
		date = scope.Date.Format(time.DateOnly)
	}
	return commands.ParseAssignmentScope(kind, day, date)
}

func countStepFailures(failures []commands.StepFailure) {
	for _, f := range failures {
		metrics.AssignStepFailures.WithLabelValues(f.Step).Inc()
	}
}
