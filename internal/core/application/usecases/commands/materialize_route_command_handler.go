package commands

import (
	"context"
	"errors"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/services"
	"routeengine/internal/pkg/errs"
)

// MaterializeRouteResult lists the stops of the date in visiting order and
// the listed clients that had no stop.
type MaterializeRouteResult struct {
	DriverID       kernel.UUID
	Date           time.Time
	StopIDs        []kernel.UUID
	SkippedClients []kernel.UUID
}

// MaterializeRouteCommandHandler sets stop sequences for a driver's date
// from the stable route order and rewrites the driver's route list for that
// weekday to match. The stable order itself is only read.
type MaterializeRouteCommandHandler struct {
	uowFactory   UoWFactory
	materializer services.RouteOrderMaterializer
}

// NewMaterializeRouteCommandHandler creates the handler.
func NewMaterializeRouteCommandHandler(uowFactory UoWFactory, materializer services.RouteOrderMaterializer) MaterializeRouteCommandHandler {
	return MaterializeRouteCommandHandler{
		uowFactory:   uowFactory,
		materializer: materializer,
	}
}

// Handle runs materialization in one transaction.
func (h MaterializeRouteCommandHandler) Handle(ctx context.Context, cmd MaterializeRouteCommand) (MaterializeRouteResult, error) {
	if err := cmd.Validate(); err != nil {
		return MaterializeRouteResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MaterializeRouteResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.DriverRepository().Get(ctx, cmd.DriverID()); err != nil {
		return MaterializeRouteResult{}, err
	}

	entries, err := uow.RouteOrderRepository().ListByDriver(ctx, cmd.DriverID())
	if err != nil {
		return MaterializeRouteResult{}, err
	}
	stops, err := uow.StopRepository().ListByDriverAndDate(ctx, cmd.DriverID(), cmd.Date())
	if err != nil {
		return MaterializeRouteResult{}, err
	}

	day := kernel.DayOf(cmd.Date())
	current, err := uow.RouteRepository().Get(ctx, cmd.DriverID(), day)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return MaterializeRouteResult{}, err
	}

	m, err := h.materializer.Materialize(entries, stops, current)
	if err != nil {
		return MaterializeRouteResult{}, err
	}

	for _, s := range m.Sequenced {
		if err = uow.StopRepository().Update(ctx, s); err != nil {
			return MaterializeRouteResult{}, err
		}
	}

	if current == nil {
		if current, err = route.NewDriverRoute(cmd.DriverID(), day, nil); err != nil {
			return MaterializeRouteResult{}, err
		}
	}
	current.Replace(m.StopIDs)
	if err = uow.RouteRepository().Save(ctx, current); err != nil {
		return MaterializeRouteResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return MaterializeRouteResult{}, err
	}

	result := MaterializeRouteResult{
		DriverID:       cmd.DriverID(),
		Date:           cmd.Date(),
		SkippedClients: m.SkippedClients,
	}
	for _, s := range m.Sequenced {
		result.StopIDs = append(result.StopIDs, s.ID())
	}
	return result, nil
}
