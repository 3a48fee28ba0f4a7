package lock

import "context"

// CallbackGuard keeps concurrent deliveries of the same callback from verifying in parallel.
// It only reduces duplicate provider calls; crediting exactly once is enforced by row locks.
type CallbackGuard interface {
	// Acquire returns false when another delivery holds the guard. The returned release
	// func is never nil. Implementations fail open: when the backing store errors, acquired
	// is true and the error is returned for logging only.
	Acquire(ctx context.Context, authority string) (acquired bool, release func(), err error)
}
