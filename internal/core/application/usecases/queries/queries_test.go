package queries_test

import (
	"testing"
	"time"

	"routeengine/internal/core/application/usecases/queries"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"drivers", queries.GetAllDriversQuery{}.Validate(), queries.ErrGetAllDriversQueryIsNotConstructed},
		{"clients", queries.GetAllClientsQuery{}.Validate(), queries.ErrGetAllClientsQueryIsNotConstructed},
		{"day routes", queries.GetDayRoutesQuery{}.Validate(), queries.ErrGetDayRoutesQueryIsNotConstructed},
		{"day stops", queries.GetDayStopsQuery{}.Validate(), queries.ErrGetDayStopsQueryIsNotConstructed},
		{"route runs", queries.GetRouteRunsQuery{}.Validate(), queries.ErrGetRouteRunsQueryIsNotConstructed},
		{"route order", queries.GetDriverRouteOrderQuery{}.Validate(), queries.ErrGetDriverRouteOrderQueryIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.ErrorIs(t, tt.err, tt.want)
		})
	}
}

func TestNewGetDayRoutesQuery_RejectsNonWeekday(t *testing.T) {
	_, err := queries.NewGetDayRoutesQuery(kernel.AllDays)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	q, err := queries.NewGetDayRoutesQuery(kernel.Friday)
	require.NoError(t, err)
	assert.Equal(t, kernel.Friday, q.Day())
}

func TestNewGetDayStopsQuery_TruncatesDateAndCopiesDriver(t *testing.T) {
	_, err := queries.NewGetDayStopsQuery(time.Time{}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	driverID := kernel.NewUUID()
	q, err := queries.NewGetDayStopsQuery(monday.Add(17*time.Hour), &driverID)
	require.NoError(t, err)
	assert.True(t, monday.Equal(q.Date()))

	driverID = kernel.NewUUID()
	assert.False(t, q.DriverID().IsEqual(driverID))
}

func TestNewGetRouteRunsQuery_LimitBounds(t *testing.T) {
	for _, limit := range []int{0, -1, queries.MaxRouteRunsLimit + 1} {
		_, err := queries.NewGetRouteRunsQuery(kernel.Monday, limit)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange, "limit %d", limit)
	}

	q, err := queries.NewGetRouteRunsQuery(kernel.Monday, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, q.Limit())
}

func TestNewGetDriverRouteOrderQuery_RequiresDriver(t *testing.T) {
	_, err := queries.NewGetDriverRouteOrderQuery(kernel.UUID{})
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
