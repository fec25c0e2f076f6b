// Package client provides the Client aggregate: a delivery recipient with an
// optional geocoded location and the authoritative driver assignment.
package client
