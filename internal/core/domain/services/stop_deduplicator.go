package services

import (
	"slices"
	"time"

	"routeengine/internal/core/domain/model/driver"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
)

// DedupRoute pairs a driver with its route for the day being deduplicated.
type DedupRoute struct {
	Driver *driver.Driver
	Route  *route.DriverRoute
}

// RemovedStop describes one stop id dropped from a losing driver's route.
type RemovedStop struct {
	ClientID     kernel.UUID
	DriverID     kernel.UUID
	StopID       kernel.UUID
	KeptDriverID kernel.UUID
	KeptStopID   kernel.UUID
}

// DedupResult lists the removals and the routes that were modified.
type DedupResult struct {
	Removed []RemovedStop
	Changed []*route.DriverRoute
}

// ClaimKey is what a stop claims: one client on one delivery date. Stops of
// the same client on different dates of a weekday route never compete.
type ClaimKey struct {
	ClientID kernel.UUID
	Date     string
}

// NewClaimKey builds the key of a stop for clientID delivered on date.
func NewClaimKey(clientID kernel.UUID, date time.Time) ClaimKey {
	return ClaimKey{ClientID: clientID, Date: date.Format(time.DateOnly)}
}

type claim struct {
	driver   *driver.Driver
	route    *route.DriverRoute
	stopID   kernel.UUID
	sentinel bool
}

// StopDeduplicator guarantees that a client is claimed by at most one stop
// per delivery date across all driver routes of a weekday.
//
// Keep-rule for a contested (client, date), applied over drivers in ascending id
// order and each route in list order:
//   - the first claim held by a sentinel driver (the default pool), if any;
//   - otherwise the first claim.
//
// Every other claim is removed from its route. Stop and client records are
// never touched, only route membership. Running it again on its own output
// changes nothing.
type StopDeduplicator struct {
	sentinelNames []string
}

// NewStopDeduplicator creates a deduplicator that treats drivers named like
// any of sentinelNames as the default pool.
func NewStopDeduplicator(sentinelNames []string) StopDeduplicator {
	return StopDeduplicator{sentinelNames: slices.Clone(sentinelNames)}
}

// Deduplicate removes losing claims from routes in place. claimOf maps stop
// ids to their claim; stops missing from it are left alone.
func (d StopDeduplicator) Deduplicate(routes []DedupRoute, claimOf map[kernel.UUID]ClaimKey) DedupResult {
	ordered := slices.Clone(routes)
	slices.SortStableFunc(ordered, func(a, b DedupRoute) int {
		return a.Driver.ID().Compare(b.Driver.ID())
	})

	claims := make(map[ClaimKey][]claim)
	var keyOrder []ClaimKey
	for _, r := range ordered {
		sentinel := r.Driver.IsSentinel(d.sentinelNames)
		for _, stopID := range r.Route.StopIDs() {
			key, ok := claimOf[stopID]
			if !ok {
				continue
			}
			if _, seen := claims[key]; !seen {
				keyOrder = append(keyOrder, key)
			}
			claims[key] = append(claims[key], claim{
				driver:   r.Driver,
				route:    r.Route,
				stopID:   stopID,
				sentinel: sentinel,
			})
		}
	}

	var result DedupResult
	changed := make(map[*route.DriverRoute]bool)
	for _, key := range keyOrder {
		cs := claims[key]
		if len(cs) < 2 {
			continue
		}

		keep := 0
		if i := slices.IndexFunc(cs, func(c claim) bool { return c.sentinel }); i >= 0 {
			keep = i
		}
		kept := cs[keep]

		for i, c := range cs {
			if i == keep || !c.route.Remove(c.stopID) {
				continue
			}
			changed[c.route] = true
			result.Removed = append(result.Removed, RemovedStop{
				ClientID:     key.ClientID,
				DriverID:     c.driver.ID(),
				StopID:       c.stopID,
				KeptDriverID: kept.driver.ID(),
				KeptStopID:   kept.stopID,
			})
		}
	}

	for _, r := range ordered {
		if changed[r.Route] {
			result.Changed = append(result.Changed, r.Route)
		}
	}
	return result
}
