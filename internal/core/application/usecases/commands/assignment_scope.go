package commands

import (
	"fmt"
	"strings"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/stop"
	"routeengine/internal/pkg/errs"
)

// ScopeKind selects which stops of a client follow an assignment.
type ScopeKind int

const (
	// ScopeAllStops syncs every eligible stop of the client.
	ScopeAllStops ScopeKind = iota + 1
	// ScopeDay syncs eligible stops falling on one weekday.
	ScopeDay
	// ScopeDate syncs eligible stops on one calendar date.
	ScopeDate
)

// AssignmentScope limits the stop sync of an assignment. The zero value
// behaves like AllStops.
type AssignmentScope struct {
	kind ScopeKind
	day  kernel.Day
	date time.Time
}

// AllStops returns the scope covering every stop.
func AllStops() AssignmentScope {
	return AssignmentScope{kind: ScopeAllStops}
}

// DayScope returns a scope covering stops on a weekday.
func DayScope(day kernel.Day) (AssignmentScope, error) {
	if day == kernel.DayUnknown {
		return AssignmentScope{}, errs.NewValueIsRequiredError("day")
	}
	if err := day.ValidateWeekday(); err != nil {
		return AssignmentScope{}, err
	}
	return AssignmentScope{kind: ScopeDay, day: day}, nil
}

// DateScope returns a scope covering stops on one date.
func DateScope(date time.Time) (AssignmentScope, error) {
	if date.IsZero() {
		return AssignmentScope{}, errs.NewValueIsRequiredError("date")
	}
	return AssignmentScope{kind: ScopeDate, date: kernel.DateOf(date)}, nil
}

// ParseAssignmentScope builds a scope from its textual form: "" or "all",
// "day" with a weekday name, or "date" with a YYYY-MM-DD date.
func ParseAssignmentScope(kind string, day string, date string) (AssignmentScope, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "all":
		return AllStops(), nil
	case "day":
		if strings.TrimSpace(day) == "" {
			return AssignmentScope{}, errs.NewValueIsRequiredError("day")
		}
		d, err := kernel.ParseDay(day)
		if err != nil {
			return AssignmentScope{}, err
		}
		return DayScope(d)
	case "date":
		if strings.TrimSpace(date) == "" {
			return AssignmentScope{}, errs.NewValueIsRequiredError("date")
		}
		t, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
		if err != nil {
			return AssignmentScope{}, errs.NewValueIsInvalidErrorWithCause("date", err)
		}
		return DateScope(t)
	default:
		return AssignmentScope{}, errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("unknown scope %q", kind))
	}
}

// Kind returns the scope kind.
func (s AssignmentScope) Kind() ScopeKind {
	if s.kind == 0 {
		return ScopeAllStops
	}
	return s.kind
}

// Day returns the weekday of a ScopeDay scope.
func (s AssignmentScope) Day() kernel.Day {
	return s.day
}

// Date returns the date of a ScopeDate scope.
func (s AssignmentScope) Date() time.Time {
	return s.date
}

// Matches reports whether the stop falls inside the scope.
func (s AssignmentScope) Matches(st *stop.Stop) bool {
	switch s.Kind() {
	case ScopeDay:
		return st.Day() == s.day
	case ScopeDate:
		return st.Date().Equal(s.date)
	default:
		return true
	}
}

// String implements fmt.Stringer for log output.
func (s AssignmentScope) String() string {
	switch s.Kind() {
	case ScopeDay:
		return "day:" + s.day.String()
	case ScopeDate:
		return "date:" + s.date.Format(time.DateOnly)
	default:
		return "all"
	}
}
