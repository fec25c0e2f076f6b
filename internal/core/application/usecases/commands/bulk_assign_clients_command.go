package commands

import (
	"errors"
	"fmt"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

var ErrBulkAssignClientsCommandIsNotConstructed = errors.New(
	"BulkAssignClientsCommand must be created via NewBulkAssignClientsCommand constructor",
)

// BulkAssignClientsCommand assigns a set of clients to one driver (or
// unassigns them). Each client is processed independently.
type BulkAssignClientsCommand struct {
	clientIDs []kernel.UUID
	driverID  *kernel.UUID
	scope     AssignmentScope

	guard guard.ConstructorGuard
}

// NewBulkAssignClientsCommand validates every client id up front. Repeated
// ids are processed once.
func NewBulkAssignClientsCommand(
	clientIDs []kernel.UUID,
	driverID *kernel.UUID,
	scope AssignmentScope,
) (BulkAssignClientsCommand, error) {
	if len(clientIDs) == 0 {
		return BulkAssignClientsCommand{}, errs.NewValueIsRequiredError("clientIDs")
	}

	seen := make(map[kernel.UUID]struct{}, len(clientIDs))
	unique := make([]kernel.UUID, 0, len(clientIDs))
	for i, id := range clientIDs {
		if err := id.Validate(); err != nil {
			return BulkAssignClientsCommand{}, errs.NewValueIsRequiredErrorWithCause(
				fmt.Sprintf("clientIDs[%d]", i), err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	// Reuse single-client validation for driver and scope.
	if _, err := NewAssignClientCommand(unique[0], driverID, scope); err != nil {
		return BulkAssignClientsCommand{}, err
	}

	return BulkAssignClientsCommand{
		clientIDs: unique,
		driverID:  driverID,
		scope:     scope,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkAssignClientsCommand) Validate() error {
	return c.guard.Validate(ErrBulkAssignClientsCommandIsNotConstructed)
}

// ClientIDs returns the distinct client ids in request order.
func (c BulkAssignClientsCommand) ClientIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.clientIDs...)
}

// DriverID returns the target driver, or nil to unassign.
func (c BulkAssignClientsCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// Scope returns the stop sync scope.
func (c BulkAssignClientsCommand) Scope() AssignmentScope {
	return c.scope
}
