package queries

import (
	"errors"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/guard"
)

var (
	ErrGetDriverRouteOrderQueryIsNotConstructed = errors.New(
		"GetDriverRouteOrderQuery must be created via NewGetDriverRouteOrderQuery constructor",
	)
)

// GetDriverRouteOrderQuery reads a driver's stable client order.
type GetDriverRouteOrderQuery struct {
	driverID kernel.UUID
	guard    guard.ConstructorGuard
}

// NewGetDriverRouteOrderQuery creates the query for one driver.
func NewGetDriverRouteOrderQuery(driverID kernel.UUID) (GetDriverRouteOrderQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverRouteOrderQuery{}, err
	}
	return GetDriverRouteOrderQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

// DriverID returns the requested driver.
func (q GetDriverRouteOrderQuery) DriverID() kernel.UUID {
	return q.driverID
}

// Validate ensures the query was created through the constructor.
func (q GetDriverRouteOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverRouteOrderQueryIsNotConstructed)
}

// RouteOrderView is one ledger row with the client's name and address.
// Positions may have gaps.
type RouteOrderView struct {
	ClientID   kernel.UUID
	ClientName string
	Address    string
	Position   int
}
