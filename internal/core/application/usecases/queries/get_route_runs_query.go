package queries

import (
	"errors"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

// MaxRouteRunsLimit caps how many runs one query returns.
const MaxRouteRunsLimit = 200

var (
	ErrGetRouteRunsQueryIsNotConstructed = errors.New(
		"GetRouteRunsQuery must be created via NewGetRouteRunsQuery constructor",
	)
)

// GetRouteRunsQuery reads the newest run log entries of a weekday.
type GetRouteRunsQuery struct {
	day   kernel.Day
	limit int
	guard guard.ConstructorGuard
}

// NewGetRouteRunsQuery creates the query. limit must be within [1..MaxRouteRunsLimit].
func NewGetRouteRunsQuery(day kernel.Day, limit int) (GetRouteRunsQuery, error) {
	if err := day.ValidateWeekday(); err != nil {
		return GetRouteRunsQuery{}, err
	}
	if limit < 1 || limit > MaxRouteRunsLimit {
		return GetRouteRunsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxRouteRunsLimit)
	}
	return GetRouteRunsQuery{day: day, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

// Day returns the requested weekday.
func (q GetRouteRunsQuery) Day() kernel.Day {
	return q.day
}

// Limit returns the maximum number of runs.
func (q GetRouteRunsQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q GetRouteRunsQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteRunsQueryIsNotConstructed)
}

// RouteRunView is one run log entry with its snapshot.
type RouteRunView struct {
	ID        kernel.UUID
	Day       kernel.Day
	Reason    string
	CreatedAt time.Time
	Snapshot  []RouteRunEntryView
}

// RouteRunEntryView is one driver inside a snapshot.
type RouteRunEntryView struct {
	DriverID   kernel.UUID
	DriverName string
	Color      string
	StopIDs    []kernel.UUID
}
