package kernel

import (
	"fmt"
	"strings"
	"time"

	"routeengine/internal/pkg/errs"
)

// Day is a delivery weekday, or AllDays for drivers whose scope is not limited to one weekday.
type Day int

const (
	// DayUnknown is the zero value and is never valid.
	DayUnknown Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
	// AllDays is only valid as a driver scope or as an "every day" filter.
	AllDays
)

func getDayStrings() map[Day]string {
	return map[Day]string{
		Monday:    "monday",
		Tuesday:   "tuesday",
		Wednesday: "wednesday",
		Thursday:  "thursday",
		Friday:    "friday",
		Saturday:  "saturday",
		Sunday:    "sunday",
		AllDays:   "all",
	}
}

// ParseDay parses "monday" … "sunday" or "all", case-insensitively.
func ParseDay(s string) (Day, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return DayUnknown, errs.NewValueIsRequiredError("day")
	}
	for d, str := range getDayStrings() {
		if str == normalized {
			return d, nil
		}
	}
	return DayUnknown, errs.NewValueIsInvalidErrorWithCause("day", fmt.Errorf("%q is not a weekday or \"all\"", s))
}

// DayOf returns the weekday of t.
func DayOf(t time.Time) Day {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// DateOf truncates t to a calendar date at midnight UTC, keeping t's own calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Weekdays returns Monday through Sunday in order.
func Weekdays() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// String returns the lowercase day name, or "unknown".
func (d Day) String() string {
	if str, ok := getDayStrings()[d]; ok {
		return str
	}
	return "unknown"
}

// Validate accepts any weekday or AllDays.
func (d Day) Validate() error {
	if _, ok := getDayStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("day", fmt.Errorf("%d is not a valid day", d))
	}
	return nil
}

// ValidateWeekday accepts Monday through Sunday only.
func (d Day) ValidateWeekday() error {
	if !d.IsWeekday() {
		return errs.NewValueIsInvalidErrorWithCause("day", fmt.Errorf("%s is not a concrete weekday", d))
	}
	return nil
}

// IsWeekday reports whether d is Monday through Sunday.
func (d Day) IsWeekday() bool {
	return d >= Monday && d <= Sunday
}

// Covers reports whether a scope of d includes other. AllDays covers every weekday.
func (d Day) Covers(other Day) bool {
	if d == AllDays {
		return other.IsWeekday() || other == AllDays
	}
	return d.IsWeekday() && d == other
}
