package registration

import "errors"

// Category sentinels for the whole lifecycle subsystem. Usecases wrap them
// with context via fmt.Errorf("...: %w", Err...), handlers map them to HTTP
// status codes. Preconditions are always checked inside the same transaction
// as the mutation, so any of these means the row was left untouched.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrBadRequest = errors.New("precondition not met")

	// ErrRetryableExternal: the payment gateway reported the intent as not
	// paid yet (or failed transiently) and the deadline has not passed.
	ErrRetryableExternal = errors.New("retryable external failure")

	// ErrTerminalRejection: the deposit deadline expired and the
	// registration was auto-rejected. The bidder must re-register.
	ErrTerminalRejection = errors.New("terminal rejection")
)
