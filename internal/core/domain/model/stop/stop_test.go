package stop_test

import (
	"testing"
	"time"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/stop"
	"routeengine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2024, time.March, 4, 15, 30, 0, 0, time.UTC)

func TestNewStop(t *testing.T) {
	t.Run("should create pending stop on truncated date", func(t *testing.T) {
		id := kernel.NewUUID()
		clientID := kernel.NewUUID()
		driverID := kernel.NewUUID()

		s, err := stop.NewStop(id, clientID, &driverID, monday)

		require.NoError(t, err)
		assert.True(t, s.ID().IsEqual(id))
		assert.True(t, s.ClientID().IsEqual(clientID))
		assert.True(t, s.DriverID().IsEqual(driverID))
		assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), s.Date())
		assert.Equal(t, kernel.Monday, s.Day())
		assert.Equal(t, stop.Pending, s.Status())
		assert.Zero(t, s.Sequence())
		assert.NoError(t, s.Validate())
	})

	t.Run("should allow unassigned stop", func(t *testing.T) {
		s, err := stop.NewStop(kernel.NewUUID(), kernel.NewUUID(), nil, monday)
		require.NoError(t, err)
		assert.Nil(t, s.DriverID())
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		_, err := stop.NewStop(kernel.UUID{}, kernel.UUID{}, nil, time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, stop.ErrDateIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreStop(t *testing.T) {
	driverID := kernel.NewUUID()

	s, err := stop.RestoreStop(kernel.NewUUID(), kernel.NewUUID(), &driverID, monday, 4, stop.Completed)

	require.NoError(t, err)
	assert.Equal(t, 4, s.Sequence())
	assert.True(t, s.IsCompleted())

	_, err = stop.RestoreStop(kernel.NewUUID(), kernel.NewUUID(), nil, monday, 0, stop.Unknown)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = stop.RestoreStop(kernel.NewUUID(), kernel.NewUUID(), nil, monday, -1, stop.Pending)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestStop_AssignDriver(t *testing.T) {
	t.Run("should reassign pending stop", func(t *testing.T) {
		s, err := stop.NewStop(kernel.NewUUID(), kernel.NewUUID(), nil, monday)
		require.NoError(t, err)
		driverID := kernel.NewUUID()

		require.NoError(t, s.AssignDriver(driverID))
		assert.True(t, s.DriverID().IsEqual(driverID))

		require.NoError(t, s.Unassign())
		assert.Nil(t, s.DriverID())
	})

	t.Run("should refuse to reassign completed stop", func(t *testing.T) {
		original := kernel.NewUUID()
		s, err := stop.NewStop(kernel.NewUUID(), kernel.NewUUID(), &original, monday)
		require.NoError(t, err)
		require.NoError(t, s.Complete())

		err = s.AssignDriver(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, s.DriverID().IsEqual(original))
		assert.Error(t, s.Unassign())
	})
}

func TestStop_IsOnOrAfter(t *testing.T) {
	s, err := stop.NewStop(kernel.NewUUID(), kernel.NewUUID(), nil, monday)
	require.NoError(t, err)

	assert.True(t, s.IsOnOrAfter(monday.Add(5*time.Hour)))
	assert.True(t, s.IsOnOrAfter(monday.AddDate(0, 0, -1)))
	assert.False(t, s.IsOnOrAfter(monday.AddDate(0, 0, 1)))
}

func TestStop_Complete(t *testing.T) {
	s, err := stop.NewStop(kernel.NewUUID(), kernel.NewUUID(), nil, monday)
	require.NoError(t, err)

	require.NoError(t, s.Complete())
	assert.Equal(t, stop.Completed, s.Status())
	assert.Error(t, s.Complete())
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "pending", stop.Pending.String())
	assert.Equal(t, "completed", stop.Completed.String())
	assert.Equal(t, "unknown", stop.Unknown.String())

	got, err := stop.ParseStatus(" Completed ")
	require.NoError(t, err)
	assert.Equal(t, stop.Completed, got)

	_, err = stop.ParseStatus("lost")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.NoError(t, stop.Pending.Validate())
	assert.Error(t, stop.Status(42).Validate())
}
