package services_test

import (
	"testing"
	"time"

	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uuidOf(t *testing.T, s string) kernel.UUID {
	t.Helper()
	id, err := kernel.UUIDFromString(s)
	require.NoError(t, err)
	return id
}

func newDriver(t *testing.T, id kernel.UUID, name string) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(id, name, "#123456", kernel.AllDays)
	require.NoError(t, err)
	return d
}

func newRoute(t *testing.T, d *driver.Driver, stopIDs ...kernel.UUID) services.DedupRoute {
	t.Helper()
	r, err := route.NewDriverRoute(d.ID(), kernel.Monday, stopIDs)
	require.NoError(t, err)
	return services.DedupRoute{Driver: d, Route: r}
}

// 2024-03-04 and 2024-03-11 are Mondays.
var (
	thisMonday = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	nextMonday = thisMonday.AddDate(0, 0, 7)
)

func onMonday(clientID kernel.UUID) services.ClaimKey {
	return services.NewClaimKey(clientID, thisMonday)
}

func TestStopDeduplicator_Deduplicate(t *testing.T) {
	lowID := uuidOf(t, "10000000-0000-4000-8000-000000000000")
	highID := uuidOf(t, "f0000000-0000-4000-8000-000000000000")
	client := kernel.NewUUID()

	t.Run("should keep first driver by id when no sentinel", func(t *testing.T) {
		stopA, stopB := kernel.NewUUID(), kernel.NewUUID()
		a := newRoute(t, newDriver(t, highID, "A"), stopA)
		b := newRoute(t, newDriver(t, lowID, "B"), stopB)
		dedup := services.NewStopDeduplicator([]string{"Unassigned"})

		result := dedup.Deduplicate([]services.DedupRoute{a, b}, map[kernel.UUID]services.ClaimKey{
			stopA: onMonday(client),
			stopB: onMonday(client),
		})

		assert.Equal(t, []kernel.UUID{stopB}, b.Route.StopIDs())
		assert.Empty(t, a.Route.StopIDs())
		require.Len(t, result.Removed, 1)
		assert.Equal(t, services.RemovedStop{
			ClientID:     client,
			DriverID:     highID,
			StopID:       stopA,
			KeptDriverID: lowID,
			KeptStopID:   stopB,
		}, result.Removed[0])
		assert.Equal(t, []*route.DriverRoute{a.Route}, result.Changed)
	})

	t.Run("should prefer sentinel driver regardless of id order", func(t *testing.T) {
		stopA, stopB := kernel.NewUUID(), kernel.NewUUID()
		pool := newRoute(t, newDriver(t, highID, "unassigned"), stopA)
		regular := newRoute(t, newDriver(t, lowID, "Bob"), stopB)
		dedup := services.NewStopDeduplicator([]string{"Unassigned"})

		dedup.Deduplicate([]services.DedupRoute{regular, pool}, map[kernel.UUID]services.ClaimKey{
			stopA: onMonday(client),
			stopB: onMonday(client),
		})

		assert.Equal(t, []kernel.UUID{stopA}, pool.Route.StopIDs())
		assert.Empty(t, regular.Route.StopIDs())
	})

	t.Run("should collapse duplicates within one route", func(t *testing.T) {
		first, second, other := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		r := newRoute(t, newDriver(t, lowID, "Bob"), first, other, second)
		dedup := services.NewStopDeduplicator(nil)

		result := dedup.Deduplicate([]services.DedupRoute{r}, map[kernel.UUID]services.ClaimKey{
			first:  onMonday(client),
			second: onMonday(client),
			other:  onMonday(kernel.NewUUID()),
		})

		assert.Equal(t, []kernel.UUID{first, other}, r.Route.StopIDs())
		assert.Len(t, result.Removed, 1)
	})

	t.Run("should keep stops of the same client on different dates", func(t *testing.T) {
		now, later := kernel.NewUUID(), kernel.NewUUID()
		r := newRoute(t, newDriver(t, lowID, "Bob"), now, later)

		result := services.NewStopDeduplicator(nil).Deduplicate([]services.DedupRoute{r}, map[kernel.UUID]services.ClaimKey{
			now:   services.NewClaimKey(client, thisMonday),
			later: services.NewClaimKey(client, nextMonday),
		})

		assert.Empty(t, result.Removed)
		assert.Empty(t, result.Changed)
		assert.Equal(t, []kernel.UUID{now, later}, r.Route.StopIDs())
	})

	t.Run("should resolve each date on its own", func(t *testing.T) {
		aNow, aLater := kernel.NewUUID(), kernel.NewUUID()
		bNow, bLater := kernel.NewUUID(), kernel.NewUUID()
		a := newRoute(t, newDriver(t, lowID, "A"), aNow, aLater)
		b := newRoute(t, newDriver(t, highID, "B"), bLater, bNow)

		result := services.NewStopDeduplicator(nil).Deduplicate([]services.DedupRoute{a, b}, map[kernel.UUID]services.ClaimKey{
			aNow:   services.NewClaimKey(client, thisMonday),
			aLater: services.NewClaimKey(client, nextMonday),
			bNow:   services.NewClaimKey(client, thisMonday),
			bLater: services.NewClaimKey(client, nextMonday),
		})

		assert.Len(t, result.Removed, 2)
		assert.Equal(t, []kernel.UUID{aNow, aLater}, a.Route.StopIDs())
		assert.Empty(t, b.Route.StopIDs())
	})

	t.Run("should ignore stops with unknown client", func(t *testing.T) {
		orphan := kernel.NewUUID()
		a := newRoute(t, newDriver(t, lowID, "A"), orphan)
		b := newRoute(t, newDriver(t, highID, "B"), orphan)

		result := services.NewStopDeduplicator(nil).Deduplicate([]services.DedupRoute{a, b}, nil)

		assert.Empty(t, result.Removed)
		assert.Empty(t, result.Changed)
		assert.Equal(t, []kernel.UUID{orphan}, b.Route.StopIDs())
	})

	t.Run("should be idempotent", func(t *testing.T) {
		drivers := []*driver.Driver{
			newDriver(t, uuidOf(t, "20000000-0000-4000-8000-000000000000"), "A"),
			newDriver(t, uuidOf(t, "30000000-0000-4000-8000-000000000000"), "B"),
			newDriver(t, uuidOf(t, "40000000-0000-4000-8000-000000000000"), "Unassigned"),
		}
		clients := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
		claimOf := make(map[kernel.UUID]services.ClaimKey)
		routes := make([]services.DedupRoute, len(drivers))
		for i, d := range drivers {
			var stops []kernel.UUID
			for j, c := range clients {
				if (i+j)%2 == 0 || i == 2 && j == 0 {
					s := kernel.NewUUID()
					claimOf[s] = onMonday(c)
					stops = append(stops, s)
				}
			}
			routes[i] = newRoute(t, d, stops...)
		}
		dedup := services.NewStopDeduplicator([]string{"Unassigned"})

		first := dedup.Deduplicate(routes, claimOf)
		snapshot := make([][]kernel.UUID, len(routes))
		for i, r := range routes {
			snapshot[i] = r.Route.StopIDs()
		}
		second := dedup.Deduplicate(routes, claimOf)

		assert.NotEmpty(t, first.Removed)
		assert.Empty(t, second.Removed)
		assert.Empty(t, second.Changed)
		for i, r := range routes {
			assert.Equal(t, snapshot[i], r.Route.StopIDs())
		}

		owners := make(map[kernel.UUID]int)
		for _, r := range routes {
			for _, s := range r.Route.StopIDs() {
				owners[claimOf[s].ClientID]++
			}
		}
		for _, c := range clients {
			assert.Equal(t, 1, owners[c])
		}
	})
}
