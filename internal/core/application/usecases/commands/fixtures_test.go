package commands_test

import (
	"testing"
	"time"

	"routeengine/internal/core/domain/model/client"
	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/model/routeorder"
	"routeengine/internal/core/domain/model/stop"

	"github.com/stretchr/testify/require"
)

// 2024-03-04 is a Monday.
var (
	today     = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	yesterday = today.AddDate(0, 0, -1)
	nextWeek  = today.AddDate(0, 0, 7)
	tomorrow  = today.AddDate(0, 0, 1)
)

func seedDriver(t *testing.T, m *memStore, name string) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), name, "#336699", kernel.AllDays)
	require.NoError(t, err)
	m.state.drivers[d.ID()] = d
	return d
}

func seedClient(t *testing.T, m *memStore, name string, loc *kernel.Location, driverID *kernel.UUID) *client.Client {
	t.Helper()
	c, err := client.RestoreClient(kernel.NewUUID(), name, "", loc, driverID, false, true)
	require.NoError(t, err)
	m.state.clients[c.ID()] = c
	if driverID != nil {
		e, err := routeorder.NewEntry(*driverID, c.ID(), nextPosition(m, *driverID))
		require.NoError(t, err)
		m.state.orders[orderKey{*driverID, c.ID()}] = e
	}
	return c
}

func nextPosition(m *memStore, driverID kernel.UUID) int {
	var entries []routeorder.Entry
	for k, e := range m.state.orders {
		if k.driverID == driverID {
			entries = append(entries, e)
		}
	}
	return routeorder.NextPosition(entries)
}

// seedStop stores a stop and appends it to its driver's route for the weekday.
func seedStop(t *testing.T, m *memStore, clientID kernel.UUID, driverID *kernel.UUID, date time.Time) *stop.Stop {
	t.Helper()
	s, err := stop.NewStop(kernel.NewUUID(), clientID, driverID, date)
	require.NoError(t, err)
	m.state.stops[s.ID()] = s
	if driverID != nil {
		key := routeKey{*driverID, s.Day()}
		r, ok := m.state.routes[key]
		if !ok {
			r, err = route.NewDriverRoute(*driverID, s.Day(), nil)
			require.NoError(t, err)
		}
		r.Append(s.ID())
		m.state.routes[key] = r
	}
	return s
}

func routeOf(m *memStore, driverID kernel.UUID, day kernel.Day) []kernel.UUID {
	r, ok := m.state.routes[routeKey{driverID, day}]
	if !ok {
		return nil
	}
	return r.StopIDs()
}

func location(t *testing.T, lat, lng float64) *kernel.Location {
	t.Helper()
	l, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return &l
}

func ptr(id kernel.UUID) *kernel.UUID {
	return &id
}
