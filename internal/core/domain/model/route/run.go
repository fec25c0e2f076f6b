package route

import (
	"errors"
	"slices"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
)

// Reason records what produced a RouteRun.
type Reason string

const (
	// ReasonSequence is a run appended after a sequencing pass.
	ReasonSequence Reason = "sequence"
	// ReasonRestore is a run appended after restoring an earlier snapshot.
	ReasonRestore Reason = "restore"
)

// Validate accepts the known reasons.
func (r Reason) Validate() error {
	if r != ReasonSequence && r != ReasonRestore {
		return errs.NewValueIsInvalidError("reason")
	}
	return nil
}

// SnapshotEntry is one driver's ordered stops at the moment of a run.
type SnapshotEntry struct {
	DriverID   kernel.UUID
	DriverName string
	Color      string
	StopIDs    []kernel.UUID
}

// ErrRunIsNotConstructed is returned when using an improperly initialized Run.
var ErrRunIsNotConstructed = errors.New("Run must be created via NewRun or RestoreRun constructor")

// Run is an immutable, append-only record of every driver's route for a day.
// Runs are superseded by newer runs, never edited.
type Run struct {
	id        kernel.UUID
	day       kernel.Day
	reason    Reason
	createdAt time.Time
	snapshot  []SnapshotEntry

	isConstructed bool
}

// NewRun creates a run with a fresh id.
func NewRun(day kernel.Day, reason Reason, createdAt time.Time, snapshot []SnapshotEntry) (*Run, error) {
	return RestoreRun(kernel.NewUUID(), day, reason, createdAt, snapshot)
}

// RestoreRun rebuilds a persisted run.
func RestoreRun(
	id kernel.UUID,
	day kernel.Day,
	reason Reason,
	createdAt time.Time,
	snapshot []SnapshotEntry,
) (*Run, error) {
	if err := errors.Join(id.Validate(), day.ValidateWeekday(), reason.Validate()); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	entries := make([]SnapshotEntry, 0, len(snapshot))
	for _, e := range snapshot {
		if err := e.DriverID.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("snapshot", err)
		}
		e.StopIDs = slices.Clone(e.StopIDs)
		entries = append(entries, e)
	}

	return &Run{
		id:            id,
		day:           day,
		reason:        reason,
		createdAt:     createdAt.UTC(),
		snapshot:      entries,
		isConstructed: true,
	}, nil
}

// Validate checks that the run was built through a constructor.
func (r *Run) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRunIsNotConstructed
	}
	return nil
}

// ID returns the run identifier.
func (r *Run) ID() kernel.UUID {
	return r.id
}

// Day returns the weekday the run covers.
func (r *Run) Day() kernel.Day {
	return r.day
}

// Reason returns what produced the run.
func (r *Run) Reason() Reason {
	return r.reason
}

// CreatedAt returns when the run was recorded.
func (r *Run) CreatedAt() time.Time {
	return r.createdAt
}

// Snapshot returns a deep copy of the run entries.
func (r *Run) Snapshot() []SnapshotEntry {
	out := make([]SnapshotEntry, len(r.snapshot))
	for i, e := range r.snapshot {
		e.StopIDs = slices.Clone(e.StopIDs)
		out[i] = e
	}
	return out
}
