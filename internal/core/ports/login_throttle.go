package ports

import "context"

// LoginThrottle bounds failed login attempts per login key. A store outage
// must fail open: callers treat an error from Allow as "allowed" and log it.
type LoginThrottle interface {
	// Allow reports whether the key is currently below the failure limit.
	Allow(ctx context.Context, key string) (bool, error)
	// RecordFailure counts one failed attempt against the key.
	RecordFailure(ctx context.Context, key string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, key string) error
}
