// Package errs provides the error types shared by the stockway domain,
// application and adapter layers.
//
// Each error type pairs a sentinel (ErrObjectNotFound, ErrConflict, ...)
// with a struct carrying the details. The struct's Unwrap returns the
// sentinel, so callers classify with errors.Is and read details with
// errors.As. The HTTP adapter maps the sentinels to status codes.
package errs
