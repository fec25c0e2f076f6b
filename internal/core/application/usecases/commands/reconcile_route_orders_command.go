package commands

import (
	"errors"

	"routeengine/internal/pkg/guard"
)

var ErrReconcileRouteOrdersCommandIsNotConstructed = errors.New(
	"ReconcileRouteOrdersCommand must be created via NewReconcileRouteOrdersCommand constructor",
)

// ReconcileRouteOrdersCommand inserts missing stable route order rows for
// assigned clients. It is parameterless.
type ReconcileRouteOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileRouteOrdersCommand creates the command.
func NewReconcileRouteOrdersCommand() ReconcileRouteOrdersCommand {
	return ReconcileRouteOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReconcileRouteOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileRouteOrdersCommandIsNotConstructed)
}
