package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/model/routeorder"
	"routeengine/internal/core/ports"
	"routeengine/internal/pkg/errs"
)

// Step names reported in StepFailure.
const (
	StepStopSync   = "stop_sync"
	StepRouteOrder = "route_order"
)

// StepFailure is an advisory step of an assignment that did not complete.
type StepFailure struct {
	Step string
	Err  error
}

// AssignClientResult reports what an assignment changed. The client
// assignment is always applied when a result is returned; Failures lists the
// propagation steps that did not complete.
type AssignClientResult struct {
	ClientID         kernel.UUID
	DriverID         *kernel.UUID
	PreviousDriverID *kernel.UUID
	StopsUpdated     int
	Failures         []StepFailure
}

// Partial reports whether any advisory step failed.
func (r AssignClientResult) Partial() bool {
	return len(r.Failures) > 0
}

// Err returns an errs.PartialFailureError when Partial, nil otherwise.
func (r AssignClientResult) Err() error {
	if !r.Partial() {
		return nil
	}
	failures := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		failures[i] = fmt.Errorf("%s: %w", f.Step, f.Err)
	}
	return errs.NewPartialFailureError("assign client", r.ClientID, failures...)
}

// AssignClientCommandHandler is the single entry point for assigning a client
// to a driver. It runs three separate transactions:
//
//  1. Client.assignedDriverID is set. This is the authoritative fact; if it
//     fails the whole call fails.
//  2. Pending stops of the client dated today or later and inside the scope
//     are moved to the new driver, including their route list membership.
//     Completed and past stops keep their driver.
//  3. The stable route order drops the client from every other driver and
//     appends it to the new driver at max(position)+1 unless already listed.
//
// Failures of steps 2 and 3 are logged and returned in the result; the next
// cleanup pass reconciles them.
type AssignClientCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

// NewAssignClientCommandHandler creates the handler. clock decides what "today" is.
func NewAssignClientCommandHandler(uowFactory UoWFactory, clock ports.Clock, logger *slog.Logger) AssignClientCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AssignClientCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "assign_client"),
	}
}

// Handle applies the assignment. A non-nil error means the client record was
// not changed.
func (h AssignClientCommandHandler) Handle(ctx context.Context, cmd AssignClientCommand) (AssignClientResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignClientResult{}, err
	}

	previous, err := h.assignClient(ctx, cmd)
	if err != nil {
		return AssignClientResult{}, err
	}

	result := AssignClientResult{
		ClientID:         cmd.ClientID(),
		DriverID:         cmd.DriverID(),
		PreviousDriverID: previous,
	}

	updated, err := h.syncStops(ctx, cmd)
	result.StopsUpdated = updated
	if err != nil {
		result.Failures = append(result.Failures, h.fail(ctx, cmd, StepStopSync, err))
	}

	if err = h.updateRouteOrder(ctx, cmd); err != nil {
		result.Failures = append(result.Failures, h.fail(ctx, cmd, StepRouteOrder, err))
	}

	return result, nil
}

func (h AssignClientCommandHandler) assignClient(ctx context.Context, cmd AssignClientCommand) (*kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.ClientRepository().Get(ctx, cmd.ClientID())
	if err != nil {
		return nil, err
	}
	previous := c.AssignedDriverID()

	if driverID := cmd.DriverID(); driverID != nil {
		if _, err = uow.DriverRepository().Get(ctx, *driverID); err != nil {
			return nil, err
		}
		if err = c.AssignDriver(*driverID); err != nil {
			return nil, err
		}
	} else {
		c.Unassign()
	}

	if err = uow.ClientRepository().Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return previous, nil
}

func (h AssignClientCommandHandler) syncStops(ctx context.Context, cmd AssignClientCommand) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stops, err := uow.StopRepository().ListByClient(ctx, cmd.ClientID())
	if err != nil {
		return 0, err
	}

	now := h.clock.Now()
	routes := uow.RouteRepository()
	target := cmd.DriverID()
	updated := 0

	for _, s := range stops {
		if s.IsCompleted() || !s.IsOnOrAfter(now) || !cmd.Scope().Matches(s) {
			continue
		}
		previous := s.DriverID()
		if kernel.EqualPtr(previous, target) {
			continue
		}

		if target != nil {
			err = s.AssignDriver(*target)
		} else {
			err = s.Unassign()
		}
		if err != nil {
			return 0, err
		}
		if err = uow.StopRepository().Update(ctx, s); err != nil {
			return 0, err
		}

		if previous != nil {
			if err = removeFromRoute(ctx, routes, *previous, s.Day(), s.ID()); err != nil {
				return 0, err
			}
		}
		if target != nil {
			if err = appendToRoute(ctx, routes, *target, s.Day(), s.ID()); err != nil {
				return 0, err
			}
		}
		updated++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return updated, nil
}

func (h AssignClientCommandHandler) updateRouteOrder(ctx context.Context, cmd AssignClientCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := assignRouteOrder(ctx, uow.RouteOrderRepository(), cmd.ClientID(), cmd.DriverID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h AssignClientCommandHandler) fail(ctx context.Context, cmd AssignClientCommand, step string, err error) StepFailure {
	h.logger.WarnContext(ctx, "assignment step failed",
		"client_id", cmd.ClientID().String(),
		"step", step,
		"scope", cmd.Scope().String(),
		"error", err,
	)
	return StepFailure{Step: step, Err: err}
}

// assignRouteOrder removes the client from every driver but driverID and
// appends it to driverID unless it is already listed there.
func assignRouteOrder(ctx context.Context, repo ports.RouteOrderRepository, clientID kernel.UUID, driverID *kernel.UUID) error {
	entries, err := repo.ListByClient(ctx, clientID)
	if err != nil {
		return err
	}

	listed := false
	for _, e := range entries {
		if driverID != nil && e.DriverID().IsEqual(*driverID) {
			listed = true
			continue
		}
		if err = repo.Delete(ctx, e.DriverID(), clientID); err != nil {
			return err
		}
	}

	if driverID == nil || listed {
		return nil
	}
	return appendRouteOrder(ctx, repo, *driverID, clientID)
}

func appendRouteOrder(ctx context.Context, repo ports.RouteOrderRepository, driverID, clientID kernel.UUID) error {
	highest, err := repo.MaxPosition(ctx, driverID)
	if err != nil {
		return err
	}
	entry, err := routeorder.NewEntry(driverID, clientID, highest+1)
	if err != nil {
		return err
	}
	return repo.Add(ctx, entry)
}

func removeFromRoute(ctx context.Context, routes ports.RouteRepository, driverID kernel.UUID, day kernel.Day, stopID kernel.UUID) error {
	r, err := routes.Get(ctx, driverID, day)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !r.Remove(stopID) {
		return nil
	}
	return routes.Save(ctx, r)
}

func appendToRoute(ctx context.Context, routes ports.RouteRepository, driverID kernel.UUID, day kernel.Day, stopID kernel.UUID) error {
	r, err := routes.Get(ctx, driverID, day)
	if errors.Is(err, errs.ErrObjectNotFound) {
		r, err = route.NewDriverRoute(driverID, day, nil)
	}
	if err != nil {
		return err
	}
	if !r.Append(stopID) {
		return nil
	}
	return routes.Save(ctx, r)
}
