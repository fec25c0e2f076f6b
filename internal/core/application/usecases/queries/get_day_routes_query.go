package queries

import (
	"errors"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/guard"
)

var (
	ErrGetDayRoutesQueryIsNotConstructed = errors.New(
		"GetDayRoutesQuery must be created via NewGetDayRoutesQuery constructor",
	)
)

// GetDayRoutesQuery reads every driver's ordered stop list for one weekday.
// Drivers whose scope covers the day but who have no list yet are returned
// with an empty list.
type GetDayRoutesQuery struct {
	day   kernel.Day
	guard guard.ConstructorGuard
}

// NewGetDayRoutesQuery creates the query for a concrete weekday.
func NewGetDayRoutesQuery(day kernel.Day) (GetDayRoutesQuery, error) {
	if err := day.ValidateWeekday(); err != nil {
		return GetDayRoutesQuery{}, err
	}
	return GetDayRoutesQuery{day: day, guard: guard.NewConstructorGuard()}, nil
}

// Day returns the requested weekday.
func (q GetDayRoutesQuery) Day() kernel.Day {
	return q.day
}

// Validate ensures the query was created through the constructor.
func (q GetDayRoutesQuery) Validate() error {
	return q.guard.Validate(ErrGetDayRoutesQueryIsNotConstructed)
}

// DriverRouteView is one driver's list as drawn by the dispatch map.
type DriverRouteView struct {
	ID      kernel.UUID
	Name    string
	Color   string
	StopIDs []kernel.UUID
}
