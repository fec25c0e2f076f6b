package commands

import (
	"context"

	"routeengine/internal/core/domain/model/stop"
)

// CreateStopCommandHandler persists a stop and, when it has a driver, appends
// it to that driver's route list for the stop's weekday.
type CreateStopCommandHandler struct {
	uowFactory StopUoWFactory
}

// NewCreateStopCommandHandler creates a handler for stop creation.
func NewCreateStopCommandHandler(uowFactory StopUoWFactory) CreateStopCommandHandler {
	return CreateStopCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the stop and returns it.
func (h CreateStopCommandHandler) Handle(ctx context.Context, cmd CreateStopCommand) (*stop.Stop, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := stop.NewStop(cmd.StopID(), cmd.ClientID(), cmd.DriverID(), cmd.Date())
	if err != nil {
		return nil, err
	}

	if err = uow.StopRepository().Add(ctx, s); err != nil {
		return nil, err
	}

	if driverID := s.DriverID(); driverID != nil {
		if err = appendToRoute(ctx, uow.RouteRepository(), *driverID, s.Day(), s.ID()); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
