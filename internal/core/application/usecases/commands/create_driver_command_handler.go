package commands

import (
	"context"
	"slices"

	"routeengine/internal/core/domain/model/driver"
)

// CreateDriverCommandHandler persists new drivers. Drivers created without a
// color get palette[count mod len(palette)], where count is the number of
// drivers that already exist.
type CreateDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	palette    []string
}

// NewCreateDriverCommandHandler creates the handler with the color palette to draw from.
func NewCreateDriverCommandHandler(uowFactory DriverUoWFactory, palette []string) CreateDriverCommandHandler {
	return CreateDriverCommandHandler{
		uowFactory: uowFactory,
		palette:    slices.Clone(palette),
	}
}

// Handle creates the driver and returns it.
func (h CreateDriverCommandHandler) Handle(ctx context.Context, cmd CreateDriverCommand) (*driver.Driver, error) {
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

	repo := uow.DriverRepository()

	color := cmd.Color()
	if color == "" {
		count, err := repo.Count(ctx)
		if err != nil {
			return nil, err
		}
		if color, err = driver.PaletteColor(h.palette, int(count)); err != nil {
			return nil, err
		}
	}

	d, err := driver.NewDriver(cmd.DriverID(), cmd.Name(), color, cmd.ScopeDay())
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
