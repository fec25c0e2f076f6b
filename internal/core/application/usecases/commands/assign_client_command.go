package commands

import (
	"errors"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

var ErrAssignClientCommandIsNotConstructed = errors.New(
	"AssignClientCommand must be created via NewAssignClientCommand constructor",
)

// AssignClientCommand assigns a client to a driver, or unassigns it when
// driverID is nil. The scope limits which of the client's stops follow.
//
// Example:
//
//	scope, _ := DayScope(kernel.Monday)
//	cmd, err := NewAssignClientCommand(clientID, &driverID, scope)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // the client assignment itself failed
//	}
//	if result.Partial() {
//	    log.Println("stop sync or route order not fully propagated:", result.Err())
//	}
type AssignClientCommand struct {
	clientID kernel.UUID
	driverID *kernel.UUID
	scope    AssignmentScope

	guard guard.ConstructorGuard
}

// NewAssignClientCommand validates the input up front, before any mutation.
func NewAssignClientCommand(clientID kernel.UUID, driverID *kernel.UUID, scope AssignmentScope) (AssignClientCommand, error) {
	if err := clientID.Validate(); err != nil {
		return AssignClientCommand{}, errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return AssignClientCommand{}, errs.NewValueIsInvalidErrorWithCause("driverID", err)
		}
		id := *driverID
		driverID = &id
	}
	if scope.Kind() == ScopeDay && scope.Day() == kernel.DayUnknown {
		return AssignClientCommand{}, errs.NewValueIsRequiredError("day")
	}
	if scope.Kind() == ScopeDate && scope.Date().IsZero() {
		return AssignClientCommand{}, errs.NewValueIsRequiredError("date")
	}

	return AssignClientCommand{
		clientID: clientID,
		driverID: driverID,
		scope:    scope,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignClientCommand) Validate() error {
	return c.guard.Validate(ErrAssignClientCommandIsNotConstructed)
}

// ClientID returns the client being assigned.
func (c AssignClientCommand) ClientID() kernel.UUID {
	return c.clientID
}

// DriverID returns the target driver, or nil to unassign.
func (c AssignClientCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// Scope returns the stop sync scope.
func (c AssignClientCommand) Scope() AssignmentScope {
	return c.scope
}
