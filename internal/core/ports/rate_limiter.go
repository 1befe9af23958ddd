package ports

import (
	"context"
	"time"
)

// RateLimitRepository provides low-level atomic operations for rate limiting counters.
// It abstracts storage (e.g., Redis). Implementation should be concurrency-safe.
type RateLimitRepository interface {
	// IncrementWindow atomically increments the request counter for the client key in the current
	// window and ensures the key expires after ttl. Returns the updated count and the window start time.
	IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (count int, windowStart time.Time, err error)
}

// RateLimiterService defines a per-client rate limiting capability.
// Implementations MUST be safe for concurrent use.
type RateLimiterService interface {
	// Allow consumes one request unit for the client and reports whether it is permitted.
	// remaining: number of additional requests allowed in current window after this one (>=0)
	// limit: configured max requests per window
	// reset: time when the current window resets (Unix semantics for headers)
	Allow(ctx context.Context, clientKey string) (allowed bool, remaining int, limit int, reset time.Time, err error)
}
