package commands

import (
	"errors"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/guard"
)

var ErrDeduplicateStopsCommandIsNotConstructed = errors.New(
	"DeduplicateStopsCommand must be created via NewDeduplicateStopsCommand constructor",
)

// DeduplicateStopsCommand resolves clients claimed by more than one route on a weekday.
type DeduplicateStopsCommand struct {
	day   kernel.Day
	guard guard.ConstructorGuard
}

// NewDeduplicateStopsCommand requires a concrete weekday.
func NewDeduplicateStopsCommand(day kernel.Day) (DeduplicateStopsCommand, error) {
	if err := validateRouteDay(day); err != nil {
		return DeduplicateStopsCommand{}, err
	}
	return DeduplicateStopsCommand{
		day:   day,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeduplicateStopsCommand) Validate() error {
	return c.guard.Validate(ErrDeduplicateStopsCommandIsNotConstructed)
}

// Day returns the weekday to deduplicate.
func (c DeduplicateStopsCommand) Day() kernel.Day {
	return c.day
}
