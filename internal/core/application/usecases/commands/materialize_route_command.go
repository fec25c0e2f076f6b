package commands

import (
	"errors"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

var ErrMaterializeRouteCommandIsNotConstructed = errors.New(
	"MaterializeRouteCommand must be created via NewMaterializeRouteCommand constructor",
)

// MaterializeRouteCommand derives a driver's visiting sequence for a date
// from the driver's stable route order.
type MaterializeRouteCommand struct {
	driverID kernel.UUID
	date     time.Time
	guard    guard.ConstructorGuard
}

// NewMaterializeRouteCommand requires a driver and a date.
func NewMaterializeRouteCommand(driverID kernel.UUID, date time.Time) (MaterializeRouteCommand, error) {
	if err := driverID.Validate(); err != nil {
		return MaterializeRouteCommand{}, errs.NewValueIsRequiredErrorWithCause("driverID", err)
	}
	if date.IsZero() {
		return MaterializeRouteCommand{}, errs.NewValueIsRequiredError("date")
	}
	return MaterializeRouteCommand{
		driverID: driverID,
		date:     kernel.DateOf(date),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MaterializeRouteCommand) Validate() error {
	return c.guard.Validate(ErrMaterializeRouteCommandIsNotConstructed)
}

// DriverID returns the driver to materialize.
func (c MaterializeRouteCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Date returns the delivery date.
func (c MaterializeRouteCommand) Date() time.Time {
	return c.date
}
