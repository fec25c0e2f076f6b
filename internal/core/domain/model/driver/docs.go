// Package driver provides the Driver reference entity and palette color
// selection for newly created drivers.
package driver
