package commands_test

import (
	"testing"
	"time"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/stop"
	"routeengine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignClientCommand(t *testing.T) {
	t.Run("should reject missing client id", func(t *testing.T) {
		_, err := commands.NewAssignClientCommand(kernel.UUID{}, nil, commands.AllStops())
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero driver id", func(t *testing.T) {
		_, err := commands.NewAssignClientCommand(kernel.NewUUID(), &kernel.UUID{}, commands.AllStops())
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should copy driver id", func(t *testing.T) {
		driverID := kernel.NewUUID()
		cmd, err := commands.NewAssignClientCommand(kernel.NewUUID(), &driverID, commands.AllStops())
		require.NoError(t, err)

		driverID = kernel.NewUUID()

		assert.False(t, cmd.DriverID().IsEqual(driverID))
		assert.NoError(t, cmd.Validate())
	})

	t.Run("zero command is not constructed", func(t *testing.T) {
		assert.ErrorIs(t, commands.AssignClientCommand{}.Validate(), commands.ErrAssignClientCommandIsNotConstructed)
	})
}

func TestParseAssignmentScope(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		day     string
		date    string
		want    string
		wantErr error
	}{
		{name: "empty is all", want: "all"},
		{name: "all", kind: "ALL", want: "all"},
		{name: "day", kind: "day", day: "Monday", want: "day:monday"},
		{name: "day without day", kind: "day", wantErr: errs.ErrValueIsRequired},
		{name: "day with all", kind: "day", day: "all", wantErr: errs.ErrValueIsInvalid},
		{name: "date", kind: "date", date: "2024-03-04", want: "date:2024-03-04"},
		{name: "date without date", kind: "date", wantErr: errs.ErrValueIsRequired},
		{name: "bad date", kind: "date", date: "04/03/2024", wantErr: errs.ErrValueIsInvalid},
		{name: "unknown kind", kind: "week", wantErr: errs.ErrValueIsInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := commands.ParseAssignmentScope(tt.kind, tt.day, tt.date)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAssignmentScope_Matches(t *testing.T) {
	s, err := stop.NewStop(kernel.NewUUID(), kernel.NewUUID(), nil, today)
	require.NoError(t, err)

	monday, err := commands.DayScope(kernel.Monday)
	require.NoError(t, err)
	tuesday, err := commands.DayScope(kernel.Tuesday)
	require.NoError(t, err)
	sameDate, err := commands.DateScope(today.Add(3 * time.Hour))
	require.NoError(t, err)
	otherDate, err := commands.DateScope(nextWeek)
	require.NoError(t, err)

	assert.True(t, commands.AllStops().Matches(s))
	assert.True(t, commands.AssignmentScope{}.Matches(s))
	assert.True(t, monday.Matches(s))
	assert.False(t, tuesday.Matches(s))
	assert.True(t, sameDate.Matches(s))
	assert.False(t, otherDate.Matches(s))

	_, err = commands.DayScope(kernel.DayUnknown)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = commands.DateScope(time.Time{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
