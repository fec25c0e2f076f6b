package commands

import (
	"context"

	"routeengine/internal/core/domain/model/client"
)

// CreateClientCommandHandler persists new, unassigned clients.
// Assignment goes through AssignClientCommandHandler.
type CreateClientCommandHandler struct {
	uowFactory ClientUoWFactory
}

// NewCreateClientCommandHandler creates a handler for client registration.
func NewCreateClientCommandHandler(uowFactory ClientUoWFactory) CreateClientCommandHandler {
	return CreateClientCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the client and returns it.
func (h CreateClientCommandHandler) Handle(ctx context.Context, cmd CreateClientCommand) (*client.Client, error) {
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

	c, err := client.NewClient(cmd.ClientID(), cmd.Name(), cmd.Address())
	if err != nil {
		return nil, err
	}
	if loc := cmd.Location(); loc != nil {
		if err = c.Geocode(*loc); err != nil {
			return nil, err
		}
	}

	if err = uow.ClientRepository().Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
