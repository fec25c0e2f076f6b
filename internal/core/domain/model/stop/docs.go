// Package stop provides the Stop entity: one client delivery on one date,
// owned by at most one driver, with a pending/completed status.
package stop
