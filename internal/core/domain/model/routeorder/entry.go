package routeorder

import (
	"cmp"
	"errors"
	"slices"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when using an improperly initialized Entry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one row of a driver's stable route order: the client visited at
// position. Rows are unique on (driver, client).
//
// Positions start at 1 and are never renumbered. Gaps appear after
// unassignment and equal positions can appear under concurrent inserts, so
// readers must order with Sort rather than assume contiguity.
type Entry struct {
	driverID kernel.UUID
	clientID kernel.UUID
	position int
	guard    guard.ConstructorGuard
}

// NewEntry creates an entry. position must be at least 1.
func NewEntry(driverID kernel.UUID, clientID kernel.UUID, position int) (Entry, error) {
	if err := errors.Join(driverID.Validate(), clientID.Validate()); err != nil {
		return Entry{}, err
	}
	if position < 1 {
		return Entry{}, errs.NewValueIsOutOfRangeError("position", position, 1, "∞")
	}
	return Entry{
		driverID: driverID,
		clientID: clientID,
		position: position,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the entry was built by NewEntry.
func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// DriverID returns the driver that owns the list.
func (e Entry) DriverID() kernel.UUID {
	return e.driverID
}

// ClientID returns the listed client.
func (e Entry) ClientID() kernel.UUID {
	return e.clientID
}

// Position returns the 1-based list position.
func (e Entry) Position() int {
	return e.position
}

// NextPosition returns max(position)+1 over entries, or 1 for an empty list.
func NextPosition(entries []Entry) int {
	highest := 0
	for _, e := range entries {
		highest = max(highest, e.position)
	}
	return highest + 1
}

// Sort orders entries by (position, clientID) ascending in place.
func Sort(entries []Entry) {
	slices.SortStableFunc(entries, Compare)
}

// Compare orders two entries by (position, clientID).
func Compare(a, b Entry) int {
	if c := cmp.Compare(a.position, b.position); c != 0 {
		return c
	}
	return a.clientID.Compare(b.clientID)
}
