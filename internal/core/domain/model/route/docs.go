// Package route provides DriverRoute, a driver's ordered stop-id list for a
// weekday, and Run, the append-only snapshot of all routes for a day taken
// after each sequencing pass.
package route
