package commands

import (
	"errors"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

var ErrRestoreRouteRunCommandIsNotConstructed = errors.New(
	"RestoreRouteRunCommand must be created via NewRestoreRouteRunCommand constructor",
)

// RestoreRouteRunCommand rolls a day's routes back to an earlier run.
type RestoreRouteRunCommand struct {
	runID kernel.UUID
	guard guard.ConstructorGuard
}

// NewRestoreRouteRunCommand requires the id of the run to restore.
func NewRestoreRouteRunCommand(runID kernel.UUID) (RestoreRouteRunCommand, error) {
	if err := runID.Validate(); err != nil {
		return RestoreRouteRunCommand{}, errs.NewValueIsRequiredErrorWithCause("runID", err)
	}
	return RestoreRouteRunCommand{
		runID: runID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RestoreRouteRunCommand) Validate() error {
	return c.guard.Validate(ErrRestoreRouteRunCommandIsNotConstructed)
}

// RunID returns the run to restore.
func (c RestoreRouteRunCommand) RunID() kernel.UUID {
	return c.runID
}
