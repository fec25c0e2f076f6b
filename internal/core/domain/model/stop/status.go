package stop

import (
	"fmt"
	"strings"

	"routeengine/internal/pkg/errs"
)

// Status is the delivery state of a stop.
//
//	Pending ──> Completed
//
// Completed is final: completed stops are never reassigned or resequenced.
type Status int

const (
	// Unknown is the zero value and is never valid.
	Unknown Status = iota
	// Pending stops are waiting for delivery and may be reassigned.
	Pending
	// Completed stops have been delivered.
	Completed
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Completed: "completed",
	}
}

// ParseStatus parses "pending" or "completed", case-insensitively.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is Pending or Completed.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns "pending", "completed" or "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateAssign rejects assignment of completed stops.
func (s Status) ValidateAssign() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign", s),
		)
	}
	return nil
}

// Complete transitions Pending to Completed.
func (s Status) Complete() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}
	return Completed, nil
}
