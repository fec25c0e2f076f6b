package commands_test

import (
	"context"
	"errors"
	"testing"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/services"
	"routeengine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRouteRunPublisher struct{ mock.Mock }

func (m *MockRouteRunPublisher) Publish(ctx context.Context, run *route.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func newSequenceHandler(m *memStore, publisher *MockRouteRunPublisher) commands.SequenceDayRoutesCommandHandler {
	if publisher == nil {
		return commands.NewSequenceDayRoutesCommandHandler(m.factory(), services.NewRouteSequencer(), nil, fixedClock(today), nil)
	}
	return commands.NewSequenceDayRoutesCommandHandler(m.factory(), services.NewRouteSequencer(), publisher, fixedClock(today), nil)
}

func TestSequenceDayRoutesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	m := newMemStore()
	d := seedDriver(t, m, "Alice")
	first := seedClient(t, m, "First", location(t, 40.70, -74.00), ptr(d.ID()))
	far := seedClient(t, m, "Far", location(t, 40.75, -74.05), ptr(d.ID()))
	near := seedClient(t, m, "Near", location(t, 40.71, -74.01), ptr(d.ID()))
	unlocated := seedClient(t, m, "Nowhere", nil, ptr(d.ID()))
	paused := seedClient(t, m, "Paused", location(t, 40.7001, -74.0001), ptr(d.ID()))
	paused.Pause()

	sUnlocated := seedStop(t, m, unlocated.ID(), ptr(d.ID()), today)
	sFirst := seedStop(t, m, first.ID(), ptr(d.ID()), today)
	sPaused := seedStop(t, m, paused.ID(), ptr(d.ID()), today)
	sFar := seedStop(t, m, far.ID(), ptr(d.ID()), today)
	sNear := seedStop(t, m, near.ID(), ptr(d.ID()), today)

	publisher := &MockRouteRunPublisher{}
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("*route.Run")).Return(nil).Once()

	cmd, err := commands.NewSequenceDayRoutesCommand(kernel.Monday, nil)
	require.NoError(t, err)
	result, err := newSequenceHandler(m, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	want := []kernel.UUID{sFirst.ID(), sNear.ID(), sFar.ID(), sUnlocated.ID(), sPaused.ID()}
	assert.Equal(t, want, routeOf(m, d.ID(), kernel.Monday))
	for i, id := range want {
		assert.Equal(t, i+1, m.state.stops[id].Sequence())
	}

	assert.Equal(t, 1, result.Sequenced)
	assert.True(t, result.Published)
	require.NotNil(t, result.Run)
	assert.Equal(t, route.ReasonSequence, result.Run.Reason())
	assert.Equal(t, today, result.Run.CreatedAt())
	require.Len(t, m.state.runs, 1)
	snapshot := m.state.runs[0].Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Alice", snapshot[0].DriverName)
	assert.Equal(t, want, snapshot[0].StopIDs)
	publisher.AssertExpectations(t)
}

func TestSequenceDayRoutesCommandHandler_Handle_IsStableAcrossRuns(t *testing.T) {
	ctx := t.Context()
	m := newMemStore()
	d := seedDriver(t, m, "Alice")
	for i := range 6 {
		c := seedClient(t, m, "C", location(t, 40+float64(i%3)*0.01, -74+float64(i)*0.01), ptr(d.ID()))
		seedStop(t, m, c.ID(), ptr(d.ID()), today)
	}
	cmd, err := commands.NewSequenceDayRoutesCommand(kernel.Monday, nil)
	require.NoError(t, err)
	h := newSequenceHandler(m, nil)

	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	once := routeOf(m, d.ID(), kernel.Monday)
	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, once, routeOf(m, d.ID(), kernel.Monday))
	assert.Len(t, m.state.runs, 2)
}

func TestSequenceDayRoutesCommandHandler_Handle_SingleDriver(t *testing.T) {
	ctx := t.Context()
	m := newMemStore()
	a := seedDriver(t, m, "A")
	b := seedDriver(t, m, "B")
	ca1 := seedClient(t, m, "a1", location(t, 0, 0), ptr(a.ID()))
	ca2 := seedClient(t, m, "a2", location(t, 0, 5), ptr(a.ID()))
	ca3 := seedClient(t, m, "a3", location(t, 0, 1), ptr(a.ID()))
	cb1 := seedClient(t, m, "b1", location(t, 0, 0), ptr(b.ID()))
	cb2 := seedClient(t, m, "b2", location(t, 0, 5), ptr(b.ID()))
	cb3 := seedClient(t, m, "b3", location(t, 0, 1), ptr(b.ID()))
	for _, c := range []kernel.UUID{ca1.ID(), ca2.ID(), ca3.ID()} {
		seedStop(t, m, c, ptr(a.ID()), today)
	}
	for _, c := range []kernel.UUID{cb1.ID(), cb2.ID(), cb3.ID()} {
		seedStop(t, m, c, ptr(b.ID()), today)
	}
	before := routeOf(m, b.ID(), kernel.Monday)

	cmd, err := commands.NewSequenceDayRoutesCommand(kernel.Monday, ptr(a.ID()))
	require.NoError(t, err)
	result, err := newSequenceHandler(m, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Sequenced)
	assert.False(t, result.Published)
	assert.Equal(t, before, routeOf(m, b.ID(), kernel.Monday))
	assert.Len(t, result.Run.Snapshot(), 2)

	unknown, err := commands.NewSequenceDayRoutesCommand(kernel.Monday, ptr(kernel.NewUUID()))
	require.NoError(t, err)
	_, err = newSequenceHandler(m, nil).Handle(ctx, unknown)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSequenceDayRoutesCommandHandler_Handle_PublishFailureIsNotFatal(t *testing.T) {
	ctx := t.Context()
	m := newMemStore()
	d := seedDriver(t, m, "A")
	c := seedClient(t, m, "C", location(t, 1, 1), ptr(d.ID()))
	seedStop(t, m, c.ID(), ptr(d.ID()), today)
	publisher := &MockRouteRunPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	cmd, err := commands.NewSequenceDayRoutesCommand(kernel.Monday, nil)
	require.NoError(t, err)
	result, err := newSequenceHandler(m, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Published)
	assert.Len(t, m.state.runs, 1)
}

func TestSequenceDayRoutesCommandHandler_Handle_RunFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	m := newMemStore()
	d := seedDriver(t, m, "A")
	far := seedClient(t, m, "far", location(t, 0, 5), ptr(d.ID()))
	seed := seedClient(t, m, "seed", location(t, 0, 0), ptr(d.ID()))
	near := seedClient(t, m, "near", location(t, 0, 1), ptr(d.ID()))
	seedStop(t, m, seed.ID(), ptr(d.ID()), today)
	seedStop(t, m, far.ID(), ptr(d.ID()), today)
	seedStop(t, m, near.ID(), ptr(d.ID()), today)
	before := routeOf(m, d.ID(), kernel.Monday)
	boom := errors.New("append failed")
	m.failOn("RouteRunRepository.Add", boom)

	cmd, err := commands.NewSequenceDayRoutesCommand(kernel.Monday, nil)
	require.NoError(t, err)
	_, err = newSequenceHandler(m, nil).Handle(ctx, cmd)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, before, routeOf(m, d.ID(), kernel.Monday))
	assert.Empty(t, m.state.runs)
}

func TestSequenceDayRoutesCommandHandler_Handle_SequencesEachDateSeparately(t *testing.T) {
	ctx := t.Context()
	m := newMemStore()
	d := seedDriver(t, m, "Alice")
	a := seedClient(t, m, "A", location(t, 0, 0), ptr(d.ID()))
	b := seedClient(t, m, "B", location(t, 0, 0.01), ptr(d.ID()))
	c := seedClient(t, m, "C", location(t, 0, 0.03), ptr(d.ID()))
	e := seedClient(t, m, "D", location(t, 0, -0.015), ptr(d.ID()))

	sA := seedStop(t, m, a.ID(), ptr(d.ID()), today)
	sB := seedStop(t, m, b.ID(), ptr(d.ID()), nextWeek)
	sC := seedStop(t, m, c.ID(), ptr(d.ID()), today)
	sD := seedStop(t, m, e.ID(), ptr(d.ID()), today)
	sB2 := seedStop(t, m, a.ID(), ptr(d.ID()), nextWeek)

	cmd, err := commands.NewSequenceDayRoutesCommand(kernel.Monday, nil)
	require.NoError(t, err)
	_, err = newSequenceHandler(m, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{sA.ID(), sD.ID(), sC.ID(), sB.ID(), sB2.ID()}, routeOf(m, d.ID(), kernel.Monday))
	assert.Equal(t, 1, m.state.stops[sA.ID()].Sequence())
	assert.Equal(t, 2, m.state.stops[sD.ID()].Sequence())
	assert.Equal(t, 3, m.state.stops[sC.ID()].Sequence())
	assert.Equal(t, 1, m.state.stops[sB.ID()].Sequence())
	assert.Equal(t, 2, m.state.stops[sB2.ID()].Sequence())

	_, err = newSequenceHandler(m, nil).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{sA.ID(), sD.ID(), sC.ID(), sB.ID(), sB2.ID()}, routeOf(m, d.ID(), kernel.Monday))
}
