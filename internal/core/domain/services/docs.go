// Package services provides the routing domain services: pure computations
// over drivers, stops and routes that do not belong to a single aggregate.
//
// The package includes:
//   - RouteSequencer: nearest-neighbor visiting order for one driver's stops of one date
//   - StopDeduplicator: at most one claim per client and date across a weekday's routes
//   - RouteOrderMaterializer: a date's sequence derived from a driver's stable order
//
// Services hold no state between calls and never touch persistence.
package services
