package stop

import (
	"errors"
	"fmt"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
)

var (
	// ErrDateIsRequired is returned when a stop has no delivery date.
	ErrDateIsRequired = errs.NewValueIsRequiredError("date")
	// ErrStopIsNotConstructed is returned when using an improperly initialized Stop.
	ErrStopIsNotConstructed = errors.New("Stop must be created via NewStop or RestoreStop constructor")
)

// Stop is one delivery event for one client on one concrete date.
//
// The stop's driverID is settable independently of the client's assigned
// driver. The assignment sync propagates client → stop for pending stops
// dated today or later; completed or past stops keep the driver they had.
type Stop struct {
	id       kernel.UUID
	clientID kernel.UUID
	driverID *kernel.UUID
	date     time.Time
	sequence int
	status   Status

	isConstructed bool
}

// NewStop creates a pending, unsequenced stop. The date is truncated to its
// calendar day in UTC.
func NewStop(id kernel.UUID, clientID kernel.UUID, driverID *kernel.UUID, date time.Time) (*Stop, error) {
	s := &Stop{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setClientID(clientID),
		s.setDate(date),
	); err != nil {
		return nil, err
	}
	if driverID != nil {
		if err := s.AssignDriver(*driverID); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// RestoreStop rebuilds a stop from persisted state.
func RestoreStop(
	id kernel.UUID,
	clientID kernel.UUID,
	driverID *kernel.UUID,
	date time.Time,
	sequence int,
	status Status,
) (*Stop, error) {
	s, err := NewStop(id, clientID, driverID, date)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(status.Validate(), s.SetSequence(sequence)); err != nil {
		return nil, err
	}
	s.status = status
	return s, nil
}

// Validate checks that the stop was built through a constructor.
func (s *Stop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStopIsNotConstructed
	}
	return nil
}

// ID returns the stop identifier.
func (s *Stop) ID() kernel.UUID {
	return s.id
}

// ClientID returns the client the stop delivers to.
func (s *Stop) ClientID() kernel.UUID {
	return s.clientID
}

// DriverID returns the driver owning the stop, or nil.
func (s *Stop) DriverID() *kernel.UUID {
	if s.driverID == nil {
		return nil
	}
	id := *s.driverID
	return &id
}

// Date returns the delivery date (midnight UTC).
func (s *Stop) Date() time.Time {
	return s.date
}

// Day returns the weekday of the delivery date.
func (s *Stop) Day() kernel.Day {
	return kernel.DayOf(s.date)
}

// Sequence returns the 1-based visiting position, or 0 when not sequenced.
func (s *Stop) Sequence() int {
	return s.sequence
}

// Status returns the delivery status.
func (s *Stop) Status() Status {
	return s.status
}

// IsCompleted reports whether the stop has been delivered.
func (s *Stop) IsCompleted() bool {
	return s.status == Completed
}

// IsOnOrAfter reports whether the stop is dated on or after the calendar day of t.
func (s *Stop) IsOnOrAfter(t time.Time) bool {
	return !s.date.Before(kernel.DateOf(t))
}

// AssignDriver moves a pending stop to driverID.
func (s *Stop) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := s.status.ValidateAssign(); err != nil {
		return err
	}
	s.driverID = &driverID
	return nil
}

// Unassign clears the driver of a pending stop.
func (s *Stop) Unassign() error {
	if err := s.status.ValidateAssign(); err != nil {
		return err
	}
	s.driverID = nil
	return nil
}

// SetSequence records the visiting position. 0 clears it.
func (s *Stop) SetSequence(sequence int) error {
	if sequence < 0 {
		return errs.NewValueIsOutOfRangeError("sequence", sequence, 0, "∞")
	}
	s.sequence = sequence
	return nil
}

// Complete marks the stop delivered.
func (s *Stop) Complete() error {
	status, err := s.status.Complete()
	if err != nil {
		return err
	}
	s.status = status
	return nil
}

// String implements fmt.Stringer for log output.
func (s *Stop) String() string {
	return fmt.Sprintf("Stop(%s, client=%s, %s)", s.id, s.clientID, s.date.Format(time.DateOnly))
}

func (s *Stop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Stop) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}
	s.clientID = id
	return nil
}

func (s *Stop) setDate(date time.Time) error {
	if date.IsZero() {
		return ErrDateIsRequired
	}
	s.date = kernel.DateOf(date)
	return nil
}
