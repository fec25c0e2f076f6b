package commands_test

import (
	"testing"
	"time"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateDriverCommand(t *testing.T) {
	cmd, err := commands.NewCreateDriverCommand(" Alice ", "", kernel.Monday)
	require.NoError(t, err)
	assert.Equal(t, "Alice", cmd.Name())
	assert.Empty(t, cmd.Color())
	assert.NoError(t, cmd.DriverID().Validate())

	_, err = commands.NewCreateDriverCommand("", "", kernel.Monday)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateDriverCommand("Bob", "", kernel.DayUnknown)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreateDriverCommandHandler_Handle_PaletteColor(t *testing.T) {
	ctx := t.Context()
	m := newMemStore()
	palette := []string{"#111111", "#222222"}
	h := commands.NewCreateDriverCommandHandler(m.driverFactory(), palette)

	var colors []string
	for _, name := range []string{"A", "B", "C"} {
		cmd, err := commands.NewCreateDriverCommand(name, "", kernel.AllDays)
		require.NoError(t, err)
		d, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		colors = append(colors, d.Color())
	}

	assert.Equal(t, []string{"#111111", "#222222", "#111111"}, colors)

	cmd, err := commands.NewCreateDriverCommand("D", "#abcdef", kernel.AllDays)
	require.NoError(t, err)
	d, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "#ABCDEF", d.Color())
	assert.Len(t, m.state.drivers, 4)
}

func TestNewCreateClientCommand(t *testing.T) {
	lat, lng := 40.7, -74.0

	cmd, err := commands.NewCreateClientCommand("Ada", "1 Main St", &lat, &lng)
	require.NoError(t, err)
	require.NotNil(t, cmd.Location())
	assert.InDelta(t, lat, cmd.Location().Lat(), 1e-12)

	cmd, err = commands.NewCreateClientCommand("Ada", "", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, cmd.Location())

	_, err = commands.NewCreateClientCommand("Ada", "", &lat, nil)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	bad := 91.0
	_, err = commands.NewCreateClientCommand("Ada", "", &bad, &lng)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestCreateClientCommandHandler_Handle(t *testing.T) {
	m := newMemStore()
	lat, lng := 40.7, -74.0
	cmd, err := commands.NewCreateClientCommand("Ada", "1 Main St", &lat, &lng)
	require.NoError(t, err)

	c, err := commands.NewCreateClientCommandHandler(m.clientFactory()).Handle(t.Context(), cmd)

	require.NoError(t, err)
	stored := m.state.clients[c.ID()]
	require.NotNil(t, stored)
	assert.Equal(t, "1 Main St", stored.Address())
	assert.NotNil(t, stored.Location())
	assert.Nil(t, stored.AssignedDriverID())
}

func TestCreateStopCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	m := newMemStore()
	d := seedDriver(t, m, "A")
	c := seedClient(t, m, "C", nil, ptr(d.ID()))
	h := commands.NewCreateStopCommandHandler(m.stopFactory())

	cmd, err := commands.NewCreateStopCommand(c.ID(), ptr(d.ID()), today.Add(5*time.Hour))
	require.NoError(t, err)
	s, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, kernel.DateOf(today), s.Date())
	assert.Equal(t, []kernel.UUID{s.ID()}, routeOf(m, d.ID(), kernel.Monday))

	cmd, err = commands.NewCreateStopCommand(c.ID(), nil, today)
	require.NoError(t, err)
	unassigned, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Nil(t, unassigned.DriverID())
	assert.Len(t, routeOf(m, d.ID(), kernel.Monday), 1)

	_, err = commands.NewCreateStopCommand(kernel.UUID{}, nil, today)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = commands.NewCreateStopCommand(c.ID(), nil, time.Time{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
