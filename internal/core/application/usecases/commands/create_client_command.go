package commands

import (
	"errors"
	"strings"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

var ErrCreateClientCommandIsNotConstructed = errors.New(
	"CreateClientCommand must be created via NewCreateClientCommand constructor",
)

// CreateClientCommand registers a delivery client. Coordinates are optional
// but must be given together.
type CreateClientCommand struct {
	clientID kernel.UUID
	name     string
	address  string
	location *kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateClientCommand creates a command with a fresh client id.
func NewCreateClientCommand(name string, address string, lat, lng *float64) (CreateClientCommand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CreateClientCommand{}, errs.NewValueIsRequiredError("name")
	}

	command := CreateClientCommand{
		clientID: kernel.NewUUID(),
		name:     name,
		address:  strings.TrimSpace(address),
		guard:    guard.NewConstructorGuard(),
	}

	switch {
	case lat == nil && lng == nil:
	case lat == nil || lng == nil:
		return CreateClientCommand{}, errs.NewValueIsInvalidError("lat and lng must be set together")
	default:
		location, err := kernel.NewLocation(*lat, *lng)
		if err != nil {
			return CreateClientCommand{}, err
		}
		command.location = &location
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateClientCommand) Validate() error {
	return c.guard.Validate(ErrCreateClientCommandIsNotConstructed)
}

// ClientID returns the id the client will be created with.
func (c CreateClientCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Name returns the client name.
func (c CreateClientCommand) Name() string {
	return c.name
}

// Address returns the delivery address.
func (c CreateClientCommand) Address() string {
	return c.address
}

// Location returns the coordinates, or nil.
func (c CreateClientCommand) Location() *kernel.Location {
	return c.location
}
