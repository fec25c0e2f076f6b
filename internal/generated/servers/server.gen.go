package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List clients
	// (GET /clients)
	GetClients(ctx echo.Context, params GetClientsParams) error
	// Create a client
	// (POST /clients)
	CreateClient(ctx echo.Context) error
	// Assign many clients to one driver
	// (POST /clients/assignments)
	BulkAssignClients(ctx echo.Context) error
	// Assign a client to a driver, or unassign it
	// (PUT /clients/{clientId}/assignment)
	AssignClient(ctx echo.Context, clientId openapi_types.UUID) error
	// List drivers
	// (GET /drivers)
	GetDrivers(ctx echo.Context) error
	// Create a driver
	// (POST /drivers)
	CreateDriver(ctx echo.Context) error
	// Number a driver's stops of one date by the stable route order
	// (POST /drivers/{driverId}/materialize)
	MaterializeDriverRoute(ctx echo.Context, driverId DriverId) error
	// Read a driver's stable client order
	// (GET /drivers/{driverId}/route-order)
	GetDriverRouteOrder(ctx echo.Context, driverId DriverId) error
	// Add missing route order entries for assigned clients
	// (POST /route-orders/reconcile)
	ReconcileRouteOrders(ctx echo.Context) error
	// Write a logged snapshot back into the stop lists
	// (POST /route-runs/{runId}/restore)
	RestoreRouteRun(ctx echo.Context, runId openapi_types.UUID) error
	// Read every driver's stop list for a weekday
	// (GET /routes/{day})
	GetDayRoutes(ctx echo.Context, day Day) error
	// Remove stops claimed by more than one driver on a weekday
	// (POST /routes/{day}/dedup)
	DeduplicateDayStops(ctx echo.Context, day Day) error
	// Read the run log of a weekday, newest first
	// (GET /routes/{day}/runs)
	GetRouteRuns(ctx echo.Context, day Day, params GetRouteRunsParams) error
	// Order the stop lists of a weekday by nearest neighbour
	// (POST /routes/{day}/sequence)
	SequenceDayRoutes(ctx echo.Context, day Day) error
	// List the stops of one date
	// (GET /stops)
	GetStops(ctx echo.Context, params GetStopsParams) error
	// Create a stop
	// (POST /stops)
	CreateStop(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetClients converts echo context to params.
func (w *ServerInterfaceWrapper) GetClients(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params GetClientsParams
	// ------------- Optional query parameter "driverId" -------------

	err = runtime.BindQueryParameter("form", true, false, "driverId", ctx.QueryParams(), &params.DriverId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter driverId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetClients(ctx, params)
	return err
}

// CreateClient converts echo context to params.
func (w *ServerInterfaceWrapper) CreateClient(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateClient(ctx)
	return err
}

// BulkAssignClients converts echo context to params.
func (w *ServerInterfaceWrapper) BulkAssignClients(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.BulkAssignClients(ctx)
	return err
}

// AssignClient converts echo context to params.
func (w *ServerInterfaceWrapper) AssignClient(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "clientId" -------------
	var clientId openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "clientId", ctx.Param("clientId"), &clientId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter clientId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.AssignClient(ctx, clientId)
	return err
}

// GetDrivers converts echo context to params.
func (w *ServerInterfaceWrapper) GetDrivers(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetDrivers(ctx)
	return err
}

// CreateDriver converts echo context to params.
func (w *ServerInterfaceWrapper) CreateDriver(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateDriver(ctx)
	return err
}

// MaterializeDriverRoute converts echo context to params.
func (w *ServerInterfaceWrapper) MaterializeDriverRoute(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "driverId" -------------
	var driverId DriverId

	err = runtime.BindStyledParameterWithOptions("simple", "driverId", ctx.Param("driverId"), &driverId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter driverId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.MaterializeDriverRoute(ctx, driverId)
	return err
}

// GetDriverRouteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetDriverRouteOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "driverId" -------------
	var driverId DriverId

	err = runtime.BindStyledParameterWithOptions("simple", "driverId", ctx.Param("driverId"), &driverId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter driverId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetDriverRouteOrder(ctx, driverId)
	return err
}

// ReconcileRouteOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ReconcileRouteOrders(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ReconcileRouteOrders(ctx)
	return err
}

// RestoreRouteRun converts echo context to params.
func (w *ServerInterfaceWrapper) RestoreRouteRun(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "runId" -------------
	var runId openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "runId", ctx.Param("runId"), &runId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter runId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.RestoreRouteRun(ctx, runId)
	return err
}

// GetDayRoutes converts echo context to params.
func (w *ServerInterfaceWrapper) GetDayRoutes(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "day" -------------
	var day Day

	err = runtime.BindStyledParameterWithOptions("simple", "day", ctx.Param("day"), &day, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter day: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetDayRoutes(ctx, day)
	return err
}

// DeduplicateDayStops converts echo context to params.
func (w *ServerInterfaceWrapper) DeduplicateDayStops(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "day" -------------
	var day Day

	err = runtime.BindStyledParameterWithOptions("simple", "day", ctx.Param("day"), &day, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter day: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.DeduplicateDayStops(ctx, day)
	return err
}

// GetRouteRuns converts echo context to params.
func (w *ServerInterfaceWrapper) GetRouteRuns(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "day" -------------
	var day Day

	err = runtime.BindStyledParameterWithOptions("simple", "day", ctx.Param("day"), &day, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter day: %s", err))
	}

	// Parameter object where we will unmarshal all parameters from the context
	var params GetRouteRunsParams
	// ------------- Optional query parameter "limit" -------------

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetRouteRuns(ctx, day, params)
	return err
}

// SequenceDayRoutes converts echo context to params.
func (w *ServerInterfaceWrapper) SequenceDayRoutes(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "day" -------------
	var day Day

	err = runtime.BindStyledParameterWithOptions("simple", "day", ctx.Param("day"), &day, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter day: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.SequenceDayRoutes(ctx, day)
	return err
}

// GetStops converts echo context to params.
func (w *ServerInterfaceWrapper) GetStops(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params GetStopsParams
	// ------------- Required query parameter "date" -------------

	err = runtime.BindQueryParameter("form", true, true, "date", ctx.QueryParams(), &params.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter date: %s", err))
	}

	// ------------- Optional query parameter "driverId" -------------

	err = runtime.BindQueryParameter("form", true, false, "driverId", ctx.QueryParams(), &params.DriverId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter driverId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetStops(ctx, params)
	return err
}

// CreateStop converts echo context to params.
func (w *ServerInterfaceWrapper) CreateStop(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateStop(ctx)
	return err
}

// This is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// Registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {

	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/clients", wrapper.GetClients)
	router.POST(baseURL+"/clients", wrapper.CreateClient)
	router.POST(baseURL+"/clients/assignments", wrapper.BulkAssignClients)
	router.PUT(baseURL+"/clients/:clientId/assignment", wrapper.AssignClient)
	router.GET(baseURL+"/drivers", wrapper.GetDrivers)
	router.POST(baseURL+"/drivers", wrapper.CreateDriver)
	router.POST(baseURL+"/drivers/:driverId/materialize", wrapper.MaterializeDriverRoute)
	router.GET(baseURL+"/drivers/:driverId/route-order", wrapper.GetDriverRouteOrder)
	router.POST(baseURL+"/route-orders/reconcile", wrapper.ReconcileRouteOrders)
	router.POST(baseURL+"/route-runs/:runId/restore", wrapper.RestoreRouteRun)
	router.GET(baseURL+"/routes/:day", wrapper.GetDayRoutes)
	router.POST(baseURL+"/routes/:day/dedup", wrapper.DeduplicateDayStops)
	router.GET(baseURL+"/routes/:day/runs", wrapper.GetRouteRuns)
	router.POST(baseURL+"/routes/:day/sequence", wrapper.SequenceDayRoutes)
	router.GET(baseURL+"/stops", wrapper.GetStops)
	router.POST(baseURL+"/stops", wrapper.CreateStop)

}
