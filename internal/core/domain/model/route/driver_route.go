package route

import (
	"errors"
	"fmt"
	"slices"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
)

// ErrDriverRouteIsNotConstructed is returned when using an improperly initialized DriverRoute.
var ErrDriverRouteIsNotConstructed = errors.New("DriverRoute must be created via NewDriverRoute constructor")

// DriverRoute is a driver's persisted, ordered stop-id list for one weekday.
//
// Business rules:
//   - The list never contains the same stop id twice.
//   - Reordering must be a permutation of the current list; the engine never
//     invents or deletes stop identities while sequencing.
//   - Filtering (Remove) is only done by deduplication and reassignment.
type DriverRoute struct {
	driverID kernel.UUID
	day      kernel.Day
	stopIDs  []kernel.UUID

	isConstructed bool
}

// NewDriverRoute creates a route. Duplicate stop ids keep their first position.
func NewDriverRoute(driverID kernel.UUID, day kernel.Day, stopIDs []kernel.UUID) (*DriverRoute, error) {
	if err := errors.Join(driverID.Validate(), day.ValidateWeekday()); err != nil {
		return nil, err
	}

	r := &DriverRoute{
		driverID:      driverID,
		day:           day,
		isConstructed: true,
	}
	for _, id := range stopIDs {
		if err := id.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("stopIDs", err)
		}
		r.Append(id)
	}

	return r, nil
}

// Validate checks that the route was built by NewDriverRoute.
func (r *DriverRoute) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrDriverRouteIsNotConstructed
	}
	return nil
}

// DriverID returns the owning driver.
func (r *DriverRoute) DriverID() kernel.UUID {
	return r.driverID
}

// Day returns the weekday the list applies to.
func (r *DriverRoute) Day() kernel.Day {
	return r.day
}

// StopIDs returns a copy of the ordered stop ids.
func (r *DriverRoute) StopIDs() []kernel.UUID {
	return slices.Clone(r.stopIDs)
}

// Len returns the number of stops on the route.
func (r *DriverRoute) Len() int {
	return len(r.stopIDs)
}

// Contains reports whether stopID is on the route.
func (r *DriverRoute) Contains(stopID kernel.UUID) bool {
	return r.indexOf(stopID) >= 0
}

// Append adds stopID at the end. It reports false if the stop was already present.
func (r *DriverRoute) Append(stopID kernel.UUID) bool {
	if r.Contains(stopID) {
		return false
	}
	r.stopIDs = append(r.stopIDs, stopID)
	return true
}

// Remove drops stopID. It reports false if the stop was not present.
func (r *DriverRoute) Remove(stopID kernel.UUID) bool {
	i := r.indexOf(stopID)
	if i < 0 {
		return false
	}
	r.stopIDs = slices.Delete(r.stopIDs, i, i+1)
	return true
}

// Reorder replaces the order of the list. ordered must contain exactly the
// current stop ids.
func (r *DriverRoute) Reorder(ordered []kernel.UUID) error {
	if len(ordered) != len(r.stopIDs) {
		return errs.NewValueIsInvalidErrorWithCause("ordered",
			fmt.Errorf("got %d stop ids, route has %d", len(ordered), len(r.stopIDs)))
	}
	seen := make(map[kernel.UUID]struct{}, len(ordered))
	for _, id := range ordered {
		if !r.Contains(id) {
			return errs.NewValueIsInvalidErrorWithCause("ordered", fmt.Errorf("stop %s is not on the route", id))
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("ordered", fmt.Errorf("stop %s is listed twice", id))
		}
		seen[id] = struct{}{}
	}
	r.stopIDs = slices.Clone(ordered)
	return nil
}

// Replace overwrites the list, dropping duplicate ids. Used when restoring a
// snapshot or materializing a stable order.
func (r *DriverRoute) Replace(stopIDs []kernel.UUID) {
	r.stopIDs = nil
	for _, id := range stopIDs {
		r.Append(id)
	}
}

// IsEqual reports whether other holds the same stop ids in the same order.
func (r *DriverRoute) IsEqual(other *DriverRoute) bool {
	if other == nil {
		return false
	}
	return r.driverID.IsEqual(other.driverID) && r.day == other.day &&
		slices.EqualFunc(r.stopIDs, other.stopIDs, kernel.UUID.IsEqual)
}

func (r *DriverRoute) indexOf(stopID kernel.UUID) int {
	return slices.IndexFunc(r.stopIDs, stopID.IsEqual)
}
