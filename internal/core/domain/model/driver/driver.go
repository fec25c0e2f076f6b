package driver

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
	"routeengine/internal/pkg/guard"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrColorIsRequired is returned when attempting to create a driver without a color.
	ErrColorIsRequired = errs.NewValueIsRequiredError("color")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver is reference data for routing: a named driver with a display color
// and the weekday (or AllDays) the driver works.
//
// Drivers are immutable during a sequencing or deduplication pass. A driver
// whose name matches one of the configured sentinel names is the default
// pool that keeps a contested stop during deduplication.
//
// Example usage:
//
//	d, err := driver.NewDriver(kernel.NewUUID(), "Unassigned", "#9E9E9E", kernel.AllDays)
//	if err != nil {
//	    // handle error
//	}
//	d.IsSentinel([]string{"unassigned"}) // true
type Driver struct {
	id       kernel.UUID
	name     string
	color    string
	scopeDay kernel.Day
	guard    guard.ConstructorGuard
}

// NewDriver creates a Driver. Color must be a "#RRGGBB" hex string; scopeDay
// must be a weekday or kernel.AllDays.
func NewDriver(id kernel.UUID, name string, color string, scopeDay kernel.Day) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setColor(color),
		d.setScopeDay(scopeDay),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks that the driver was built by NewDriver.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the driver identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver display name.
func (d *Driver) Name() string {
	return d.name
}

// Color returns the "#RRGGBB" display color.
func (d *Driver) Color() string {
	return d.color
}

// ScopeDay returns the weekday the driver works, or kernel.AllDays.
func (d *Driver) ScopeDay() kernel.Day {
	return d.scopeDay
}

// WorksOn reports whether the driver's scope includes day.
func (d *Driver) WorksOn(day kernel.Day) bool {
	return d.scopeDay.Covers(day)
}

// IsSentinel reports whether the driver name equals any of names,
// ignoring case and surrounding whitespace.
func (d *Driver) IsSentinel(names []string) bool {
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), d.name) {
			return true
		}
	}
	return false
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setColor(color string) error {
	color = strings.TrimSpace(color)
	if color == "" {
		return ErrColorIsRequired
	}
	if !colorPattern.MatchString(color) {
		return errs.NewValueIsInvalidErrorWithCause("color", fmt.Errorf("%q is not a #RRGGBB color", color))
	}
	d.color = strings.ToUpper(color)
	return nil
}

func (d *Driver) setScopeDay(day kernel.Day) error {
	if err := day.Validate(); err != nil {
		return err
	}
	d.scopeDay = day
	return nil
}
