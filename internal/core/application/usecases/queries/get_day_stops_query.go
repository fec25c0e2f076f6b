package queries

import (
	"errors"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/stop"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

var (
	ErrGetDayStopsQueryIsNotConstructed = errors.New(
		"GetDayStopsQuery must be created via NewGetDayStopsQuery constructor",
	)
)

// GetDayStopsQuery reads the flat stop list of one calendar date, optionally
// for a single driver.
type GetDayStopsQuery struct {
	date     time.Time
	driverID *kernel.UUID
	guard    guard.ConstructorGuard
}

// NewGetDayStopsQuery creates the query. driverID may be nil.
func NewGetDayStopsQuery(date time.Time, driverID *kernel.UUID) (GetDayStopsQuery, error) {
	if date.IsZero() {
		return GetDayStopsQuery{}, errs.NewValueIsRequiredError("date")
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return GetDayStopsQuery{}, err
		}
		id := *driverID
		driverID = &id
	}
	return GetDayStopsQuery{
		date:     kernel.DateOf(date),
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Date returns the requested calendar date.
func (q GetDayStopsQuery) Date() time.Time {
	return q.date
}

// DriverID returns the driver filter, or nil.
func (q GetDayStopsQuery) DriverID() *kernel.UUID {
	return q.driverID
}

// Validate ensures the query was created through the constructor.
func (q GetDayStopsQuery) Validate() error {
	return q.guard.Validate(ErrGetDayStopsQueryIsNotConstructed)
}

// DayStopView is one stop with the client and driver details a driver sheet needs.
type DayStopView struct {
	StopID      kernel.UUID
	ClientID    kernel.UUID
	ClientName  string
	Address     string
	Location    *kernel.Location
	DriverID    *kernel.UUID
	DriverName  string
	DriverColor string
	Date        time.Time
	Sequence    int
	Status      stop.Status
}
