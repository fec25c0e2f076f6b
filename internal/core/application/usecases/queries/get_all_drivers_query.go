// Package queries contains read operations for retrieving routing state.
// Queries bypass the aggregates and read optimized views with SQL, following
// the read side of the CQRS split.
package queries

import (
	"errors"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/guard"
)

var (
	ErrGetAllDriversQueryIsNotConstructed = errors.New(
		"GetAllDriversQuery must be created via NewGetAllDriversQuery constructor",
	)
)

// GetAllDriversQuery lists every driver with the color used to draw their route.
//
// Example:
//
//	handler := NewGetAllDriversQueryHandler(db)
//	drivers, err := handler.Handle(ctx, NewGetAllDriversQuery())
type GetAllDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllDriversQuery creates the parameterless driver list query.
func NewGetAllDriversQuery() GetAllDriversQuery {
	return GetAllDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDriversQueryIsNotConstructed)
}

// DriverView is the read model of one driver.
type DriverView struct {
	ID       kernel.UUID
	Name     string
	Color    string
	ScopeDay kernel.Day
}
