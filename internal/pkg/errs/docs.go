// Package errs holds the error types shared by the routing engine.
//
// Every type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound, ErrPartialFailure) with a struct
// carrying the offending name, value or id. The struct's Unwrap returns the
// sentinel and the optional cause, so callers classify with errors.Is and
// inspect details with errors.As.
//
// The HTTP adapter maps the sentinels to status codes: not found to 404 and
// the three validation sentinels to 400. A PartialFailureError never reaches
// the wire as an error; it is reported as warnings on a successful response.
package errs
