package commands

import (
	"context"
	"errors"
	"log/slog"

	"routeengine/internal/pkg/errs"
)

// ReconcileRouteOrdersResult counts the clients checked and rows inserted.
type ReconcileRouteOrdersResult struct {
	Checked  int
	Inserted int
}

// ReconcileRouteOrdersCommandHandler makes the stable route order cover
// every live assignment: each client with an assigned driver but no
// (driver, client) row gets one at max(position)+1. Rows that no longer
// match an assignment are left in place.
type ReconcileRouteOrdersCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewReconcileRouteOrdersCommandHandler creates the handler.
func NewReconcileRouteOrdersCommandHandler(uowFactory UoWFactory, logger *slog.Logger) ReconcileRouteOrdersCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ReconcileRouteOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "reconcile_route_orders"),
	}
}

// Handle runs reconciliation in one transaction.
func (h ReconcileRouteOrdersCommandHandler) Handle(ctx context.Context, cmd ReconcileRouteOrdersCommand) (ReconcileRouteOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReconcileRouteOrdersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReconcileRouteOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	clients, err := uow.ClientRepository().ListAssigned(ctx)
	if err != nil {
		return ReconcileRouteOrdersResult{}, err
	}

	repo := uow.RouteOrderRepository()
	var result ReconcileRouteOrdersResult
	for _, c := range clients {
		driverID := c.AssignedDriverID()
		if driverID == nil {
			continue
		}
		result.Checked++

		_, err = repo.Find(ctx, *driverID, c.ID())
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return ReconcileRouteOrdersResult{}, err
		}

		if err = appendRouteOrder(ctx, repo, *driverID, c.ID()); err != nil {
			return ReconcileRouteOrdersResult{}, err
		}
		result.Inserted++
		h.logger.InfoContext(ctx, "route order row restored",
			"client_id", c.ID().String(),
			"driver_id", driverID.String(),
		)
	}

	if err = uow.Commit(ctx); err != nil {
		return ReconcileRouteOrdersResult{}, err
	}

	return result, nil
}
