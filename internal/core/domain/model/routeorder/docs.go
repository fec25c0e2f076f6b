// Package routeorder provides Entry, a row of a driver's stable route order.
//
// The stable order is a per-driver list of clients that is not rebuilt per
// day. It grows when a client is assigned to the driver and shrinks only
// when the client is unassigned or moved to another driver. A day's route is
// the list filtered to the clients that have a stop on that date.
package routeorder
