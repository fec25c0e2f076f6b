package commands

import (
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"
)

func validateRouteDay(day kernel.Day) error {
	if day == kernel.DayUnknown {
		return errs.NewValueIsRequiredError("day")
	}
	return day.ValidateWeekday()
}
