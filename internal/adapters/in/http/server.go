package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/application/usecases/queries"
	"routeengine/internal/generated/servers"
	"routeengine/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// DefaultRunHistoryLimit is the run log page size when none is configured.
const DefaultRunHistoryLimit = 20

// Handlers groups the use cases the HTTP API exposes.
type Handlers struct {
	// Command handlers
	CreateDriver      commands.CreateDriverCommandHandler
	CreateClient      commands.CreateClientCommandHandler
	CreateStop        commands.CreateStopCommandHandler
	AssignClient      commands.AssignClientCommandHandler
	BulkAssignClients commands.BulkAssignClientsCommandHandler
	DeduplicateStops  commands.DeduplicateStopsCommandHandler
	SequenceDayRoutes commands.SequenceDayRoutesCommandHandler
	MaterializeRoute  commands.MaterializeRouteCommandHandler
	ReconcileOrders   commands.ReconcileRouteOrdersCommandHandler
	RestoreRouteRun   commands.RestoreRouteRunCommandHandler

	// Query handlers
	GetAllDrivers       queries.GetAllDriversQueryHandler
	GetAllClients       queries.GetAllClientsQueryHandler
	GetDayStops         queries.GetDayStopsQueryHandler
	GetDayRoutes        queries.GetDayRoutesQueryHandler
	GetRouteRuns        queries.GetRouteRunsQueryHandler
	GetDriverRouteOrder queries.GetDriverRouteOrderQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h               Handlers
	logger          *slog.Logger
	runHistoryLimit int
}

// Option configures a Server.
type Option func(*Server)

// WithRunHistoryLimit sets how many runs GET /routes/{day}/runs returns when
// the request has no limit.
func WithRunHistoryLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.runHistoryLimit = n
		}
	}
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		h:               h,
		logger:          logger.With("component", "http"),
		runHistoryLimit: DefaultRunHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// statusFor maps an application error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a servers.Error. Client errors carry the cause, server
// errors only the summary and are logged.
func (s *Server) fail(ctx echo.Context, err error, summary string) error {
	status := statusFor(err)
	message := summary
	if status < http.StatusInternalServerError {
		message = summary + ": " + err.Error()
	} else {
		s.logger.ErrorContext(ctx.Request().Context(), summary,
			"error", err, "method", ctx.Request().Method, "path", ctx.Path())
	}
	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
