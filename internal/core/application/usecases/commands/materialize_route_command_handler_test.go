package commands_test

import (
	"testing"
	"time"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/services"
	"routeengine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeRouteCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	m := newMemStore()
	d := seedDriver(t, m, "A")
	c1 := seedClient(t, m, "one", nil, ptr(d.ID()))
	c2 := seedClient(t, m, "two", nil, ptr(d.ID()))
	c3 := seedClient(t, m, "three", nil, ptr(d.ID()))

	s3 := seedStop(t, m, c3.ID(), ptr(d.ID()), today)
	s1 := seedStop(t, m, c1.ID(), ptr(d.ID()), today)
	later := seedStop(t, m, c2.ID(), ptr(d.ID()), nextWeek)
	ordersBefore := len(m.state.orders)

	cmd, err := commands.NewMaterializeRouteCommand(d.ID(), today)
	require.NoError(t, err)
	h := commands.NewMaterializeRouteCommandHandler(m.factory(), services.NewRouteOrderMaterializer())

	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{s1.ID(), s3.ID()}, result.StopIDs)
	assert.Equal(t, []kernel.UUID{c2.ID()}, result.SkippedClients)
	assert.Equal(t, 1, m.state.stops[s1.ID()].Sequence())
	assert.Equal(t, 2, m.state.stops[s3.ID()].Sequence())
	assert.Equal(t, []kernel.UUID{s1.ID(), s3.ID(), later.ID()}, routeOf(m, d.ID(), kernel.Monday))
	assert.Len(t, m.state.orders, ordersBefore, "stable order is never modified")

	// A week later client one skips; the order of the rest is unchanged.
	s2 := seedStop(t, m, c2.ID(), ptr(d.ID()), nextWeek.AddDate(0, 0, 7))
	s3b := seedStop(t, m, c3.ID(), ptr(d.ID()), nextWeek.AddDate(0, 0, 7))
	cmd, err = commands.NewMaterializeRouteCommand(d.ID(), nextWeek.AddDate(0, 0, 7))
	require.NoError(t, err)

	result, err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{s2.ID(), s3b.ID()}, result.StopIDs)
	assert.Equal(t, []kernel.UUID{c1.ID()}, result.SkippedClients)
	assert.Len(t, m.state.orders, ordersBefore)
}

func TestMaterializeRouteCommandHandler_Handle_Errors(t *testing.T) {
	m := newMemStore()
	h := commands.NewMaterializeRouteCommandHandler(m.factory(), services.NewRouteOrderMaterializer())

	cmd, err := commands.NewMaterializeRouteCommand(kernel.NewUUID(), today)
	require.NoError(t, err)
	_, err = h.Handle(t.Context(), cmd)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = commands.NewMaterializeRouteCommand(kernel.NewUUID(), time.Time{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewMaterializeRouteCommand(kernel.UUID{}, today)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestMaterializeRouteCommandHandler_Handle_CreatesMissingRoute(t *testing.T) {
	m := newMemStore()
	d := seedDriver(t, m, "A")
	c := seedClient(t, m, "one", nil, ptr(d.ID()))
	s := seedStop(t, m, c.ID(), nil, today)
	require.NoError(t, s.AssignDriver(d.ID()))

	cmd, err := commands.NewMaterializeRouteCommand(d.ID(), today)
	require.NoError(t, err)
	_, err = commands.NewMaterializeRouteCommandHandler(m.factory(), services.NewRouteOrderMaterializer()).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{s.ID()}, routeOf(m, d.ID(), kernel.Monday))
}
