package commands

import (
	"errors"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

var ErrCreateStopCommandIsNotConstructed = errors.New(
	"CreateStopCommand must be created via NewCreateStopCommand constructor",
)

// CreateStopCommand records a delivery for a client on a date, optionally
// already owned by a driver. Upstream generators and fixtures use it; the
// routing passes themselves never create stops.
type CreateStopCommand struct {
	stopID   kernel.UUID
	clientID kernel.UUID
	driverID *kernel.UUID
	date     time.Time

	guard guard.ConstructorGuard
}

// NewCreateStopCommand creates a command with a fresh stop id.
func NewCreateStopCommand(clientID kernel.UUID, driverID *kernel.UUID, date time.Time) (CreateStopCommand, error) {
	if err := clientID.Validate(); err != nil {
		return CreateStopCommand{}, errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return CreateStopCommand{}, errs.NewValueIsInvalidErrorWithCause("driverID", err)
		}
	}
	if date.IsZero() {
		return CreateStopCommand{}, errs.NewValueIsRequiredError("date")
	}

	return CreateStopCommand{
		stopID:   kernel.NewUUID(),
		clientID: clientID,
		driverID: driverID,
		date:     kernel.DateOf(date),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateStopCommand) Validate() error {
	return c.guard.Validate(ErrCreateStopCommandIsNotConstructed)
}

// StopID returns the id the stop will be created with.
func (c CreateStopCommand) StopID() kernel.UUID {
	return c.stopID
}

// ClientID returns the client the stop delivers to.
func (c CreateStopCommand) ClientID() kernel.UUID {
	return c.clientID
}

// DriverID returns the owning driver, or nil.
func (c CreateStopCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// Date returns the delivery date.
func (c CreateStopCommand) Date() time.Time {
	return c.date
}
