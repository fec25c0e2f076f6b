package services

import (
	"slices"

	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"
	"routeengine/internal/core/domain/model/routeorder"
	"routeengine/internal/core/domain/model/stop"
)

// Materialization is a driver's day route derived from the stable order.
type Materialization struct {
	// Sequenced holds the stops in visiting order with Sequence set to 1..n.
	Sequenced []*stop.Stop
	// SkippedClients are listed clients without a stop on the date.
	SkippedClients []kernel.UUID
	// StopIDs is the new order for the driver's route list.
	StopIDs []kernel.UUID
}

// RouteOrderMaterializer turns a driver's stable route order into the visiting
// sequence for one date.
//
// Business rules:
//   - Entries are visited in (position, clientID) order.
//   - A listed client with a stop on the date gets the next sequence number.
//   - A listed client without a stop is skipped; the order itself is never
//     modified by materialization.
//   - Stops of the date whose client is not listed follow, in their current
//     route order (stops missing from the route come last, by id).
//   - Route entries for other dates keep their relative order after that.
type RouteOrderMaterializer struct{}

// NewRouteOrderMaterializer creates a RouteOrderMaterializer.
func NewRouteOrderMaterializer() RouteOrderMaterializer {
	return RouteOrderMaterializer{}
}

// Materialize sequences stops (the driver's stops on the date) by entries and
// returns the reordered route list. current may be nil when the driver has no
// route yet for the weekday.
func (RouteOrderMaterializer) Materialize(
	entries []routeorder.Entry,
	stops []*stop.Stop,
	current *route.DriverRoute,
) (Materialization, error) {
	var currentIDs []kernel.UUID
	if current != nil {
		currentIDs = current.StopIDs()
	}
	rank := func(s *stop.Stop) int {
		if i := slices.IndexFunc(currentIDs, s.ID().IsEqual); i >= 0 {
			return i
		}
		return len(currentIDs)
	}

	pending := slices.Clone(stops)
	slices.SortStableFunc(pending, func(a, b *stop.Stop) int {
		ra, rb := rank(a), rank(b)
		if ra != rb {
			return ra - rb
		}
		return a.ID().Compare(b.ID())
	})

	sorted := slices.Clone(entries)
	routeorder.Sort(sorted)

	var m Materialization
	used := make(map[kernel.UUID]bool, len(pending))
	next := func(s *stop.Stop) error {
		if err := s.SetSequence(len(m.Sequenced) + 1); err != nil {
			return err
		}
		used[s.ID()] = true
		m.Sequenced = append(m.Sequenced, s)
		m.StopIDs = append(m.StopIDs, s.ID())
		return nil
	}

	for _, e := range sorted {
		i := slices.IndexFunc(pending, func(s *stop.Stop) bool {
			return !used[s.ID()] && s.ClientID().IsEqual(e.ClientID())
		})
		if i < 0 {
			m.SkippedClients = append(m.SkippedClients, e.ClientID())
			continue
		}
		if err := next(pending[i]); err != nil {
			return Materialization{}, err
		}
	}

	for _, s := range pending {
		if used[s.ID()] {
			continue
		}
		if err := next(s); err != nil {
			return Materialization{}, err
		}
	}

	for _, id := range currentIDs {
		if !used[id] {
			m.StopIDs = append(m.StopIDs, id)
		}
	}

	return m, nil
}
