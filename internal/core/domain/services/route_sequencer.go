package services

import (
	"routeengine/internal/core/domain/model/kernel"
)

// SequenceInput is one stop to be ordered. Location is nil when the client
// was never geocoded.
type SequenceInput struct {
	StopID   kernel.UUID
	Location *kernel.Location
}

// RouteSequencer orders a single driver's stops with a greedy nearest-neighbor
// heuristic over great-circle distance.
//
// Business rules:
//   - Output is a permutation of the input: no stop is dropped or duplicated.
//   - The first geolocated stop in input order seeds the route.
//   - Ties on distance keep the candidate encountered first.
//   - Stops without usable coordinates keep their relative order and go last.
//
// The result depends only on the input and its order. Callers that want
// stable routes across runs must pass a stable input order, such as the
// driver's persisted stop-id list.
//
// Example usage:
//
//	seq := services.NewRouteSequencer()
//	ordered := seq.Sequence([]services.SequenceInput{
//	    {StopID: a, Location: &locA},
//	    {StopID: b, Location: nil},
//	    {StopID: c, Location: &locC},
//	})
//	// ordered == [a, c, b]
type RouteSequencer struct{}

// NewRouteSequencer creates a RouteSequencer.
func NewRouteSequencer() RouteSequencer {
	return RouteSequencer{}
}

// Sequence returns the stop ids in visiting order. Runs in O(n²).
func (RouteSequencer) Sequence(stops []SequenceInput) []kernel.UUID {
	located := make([]SequenceInput, 0, len(stops))
	var unlocated []kernel.UUID
	for _, s := range stops {
		if s.Location == nil || s.Location.Validate() != nil {
			unlocated = append(unlocated, s.StopID)
			continue
		}
		located = append(located, s)
	}

	ordered := make([]kernel.UUID, 0, len(stops))
	if len(located) <= 1 {
		for _, s := range located {
			ordered = append(ordered, s.StopID)
		}
		return append(ordered, unlocated...)
	}

	visited := make([]bool, len(located))
	current := 0
	visited[current] = true
	ordered = append(ordered, located[current].StopID)

	for range len(located) - 1 {
		from := located[current].Location
		next := -1
		best := 0.0
		for i, candidate := range located {
			if visited[i] {
				continue
			}
			d := kernel.Distance(from.Lat(), from.Lng(), candidate.Location.Lat(), candidate.Location.Lng())
			if next < 0 || d < best {
				next, best = i, d
			}
		}
		visited[next] = true
		ordered = append(ordered, located[next].StopID)
		current = next
	}

	return append(ordered, unlocated...)
}
