// Package workers provides a bounded pool for CPU-heavy jobs such as
// password hashing.
//
// A [Pool] limits how many jobs run at the same time; callers block (up to
// their context deadline) until a slot is free, so a burst of concurrent
// logins queues instead of saturating every core.
package workers

import "context"

// Runner executes jobs under a concurrency limit.
//
// Implementations must be safe for concurrent use.
type Runner interface {
	// Do runs job once a slot is available and returns after job has
	// finished. It returns the context error without running job if ctx is
	// done before a slot frees up.
	Do(ctx context.Context, job func()) error
}
