package commands

import (
	"errors"
	"strings"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand registers a driver. An empty color means "pick the next
// palette color".
//
// Example:
//
//	cmd, err := NewCreateDriverCommand("Alice", "", kernel.Monday)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	fmt.Printf("Created driver with ID: %s", cmd.DriverID())
type CreateDriverCommand struct {
	driverID kernel.UUID
	name     string
	color    string
	scopeDay kernel.Day

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand creates a command with a fresh driver id.
func NewCreateDriverCommand(name string, color string, scopeDay kernel.Day) (CreateDriverCommand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CreateDriverCommand{}, errs.NewValueIsRequiredError("name")
	}
	if err := scopeDay.Validate(); err != nil {
		return CreateDriverCommand{}, err
	}

	return CreateDriverCommand{
		driverID: kernel.NewUUID(),
		name:     name,
		color:    strings.TrimSpace(color),
		scopeDay: scopeDay,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

// DriverID returns the id the driver will be created with.
func (c CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Name returns the driver name.
func (c CreateDriverCommand) Name() string {
	return c.name
}

// Color returns the requested color, or "" for a palette color.
func (c CreateDriverCommand) Color() string {
	return c.color
}

// ScopeDay returns the day the driver works, or kernel.AllDays.
func (c CreateDriverCommand) ScopeDay() kernel.Day {
	return c.scopeDay
}
