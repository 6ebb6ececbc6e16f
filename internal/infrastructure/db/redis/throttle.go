package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultAttemptLimit = 5
	defaultLockWindow   = 15 * time.Minute
)

// LoginThrottle counts failed login attempts per login key in Redis.
// Key format: login_attempts:<normalized email>
//
// Callers treat an error from Allow as "allowed": a Redis outage degrades
// to no throttling instead of blocking logins.
type LoginThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewLoginThrottle creates a LoginThrottle locking a key after limit
// failures within window. Non-positive arguments fall back to defaults.
func NewLoginThrottle(client *redis.Client, limit int, window time.Duration) *LoginThrottle {
	if limit <= 0 {
		limit = defaultAttemptLimit
	}
	if window <= 0 {
		window = defaultLockWindow
	}
	return &LoginThrottle{client: client, limit: limit, window: window}
}

// Allow reports whether the key is below the failure limit.
func (t *LoginThrottle) Allow(ctx context.Context, key string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(key)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle read: %w", err)
	}
	return n < int64(t.limit), nil
}

// RecordFailure counts one failed attempt and refreshes the lock window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, t.key(key))
	pipe.Expire(ctx, t.key(key), t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the failure count after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, t.key(key)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(loginKey string) string {
	return "login_attempts:" + loginKey
}
