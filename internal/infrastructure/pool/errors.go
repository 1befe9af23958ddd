package pool

import "errors"

var (
	// ErrPoolTimeout is returned when Acquire could not obtain a resource before its deadline.
	ErrPoolTimeout = errors.New("pool: timed out waiting for a resource")
	// ErrPoolClosed is returned by Acquire once Close has been called.
	ErrPoolClosed = errors.New("pool: closed")
	// ErrPoolBusy is returned by Close when resources are still checked out at its deadline.
	ErrPoolBusy = errors.New("pool: resources still checked out")
	// ErrPoolInvariantViolation reports inconsistent bookkeeping. The pool becomes unusable.
	ErrPoolInvariantViolation = errors.New("pool: invariant violation")
)
