// Package kernel provides the shared value objects of the routing engine.
//
// The package includes:
//   - UUID: identifier value object with a total order
//   - Location: a validated latitude/longitude pair
//   - Distance: great-circle (Haversine) distance in kilometres
//   - Day: delivery weekday, plus the AllDays driver scope
//
// All types are immutable and safe for concurrent use.
package kernel
