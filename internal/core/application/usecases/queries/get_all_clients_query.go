package queries

import (
	"errors"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/guard"
)

var (
	ErrGetAllClientsQueryIsNotConstructed = errors.New(
		"GetAllClientsQuery must be created via NewGetAllClientsQuery constructor",
	)
)

// GetAllClientsQuery lists clients, optionally only those assigned to one driver.
type GetAllClientsQuery struct {
	driverID *kernel.UUID
	guard    guard.ConstructorGuard
}

// NewGetAllClientsQuery creates the query. A nil driverID lists every client.
func NewGetAllClientsQuery(driverID *kernel.UUID) (GetAllClientsQuery, error) {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return GetAllClientsQuery{}, err
		}
		id := *driverID
		driverID = &id
	}
	return GetAllClientsQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

// DriverID returns the driver filter, or nil.
func (q GetAllClientsQuery) DriverID() *kernel.UUID {
	return q.driverID
}

// Validate ensures the query was created through the constructor.
func (q GetAllClientsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllClientsQueryIsNotConstructed)
}

// ClientView is the read model of one client. Location is nil when the
// client is not geocoded.
type ClientView struct {
	ID              kernel.UUID
	Name            string
	Address         string
	Location        *kernel.Location
	DriverID        *kernel.UUID
	Paused          bool
	DeliveryEnabled bool
}
