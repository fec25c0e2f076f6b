package commands

import (
	"errors"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

var ErrSequenceDayRoutesCommandIsNotConstructed = errors.New(
	"SequenceDayRoutesCommand must be created via NewSequenceDayRoutesCommand constructor",
)

// SequenceDayRoutesCommand orders the routes of a weekday by nearest
// neighbor. With a driver id only that driver's route is reordered; the
// recorded run still covers the whole day.
type SequenceDayRoutesCommand struct {
	day      kernel.Day
	driverID *kernel.UUID
	guard    guard.ConstructorGuard
}

// NewSequenceDayRoutesCommand requires a concrete weekday.
func NewSequenceDayRoutesCommand(day kernel.Day, driverID *kernel.UUID) (SequenceDayRoutesCommand, error) {
	if err := validateRouteDay(day); err != nil {
		return SequenceDayRoutesCommand{}, err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return SequenceDayRoutesCommand{}, errs.NewValueIsInvalidErrorWithCause("driverID", err)
		}
	}
	return SequenceDayRoutesCommand{
		day:      day,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SequenceDayRoutesCommand) Validate() error {
	return c.guard.Validate(ErrSequenceDayRoutesCommandIsNotConstructed)
}

// Day returns the weekday to sequence.
func (c SequenceDayRoutesCommand) Day() kernel.Day {
	return c.day
}

// DriverID returns the single driver to sequence, or nil for all.
func (c SequenceDayRoutesCommand) DriverID() *kernel.UUID {
	return c.driverID
}
