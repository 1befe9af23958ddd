package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/avatarctic/study-assistant-api/internal/core/ports"
)

var (
	ErrPoolClosed = errors.New("resource pool is closed")
	ErrPoolBroken = errors.New("resource pool is unusable after an invariant violation")
)

// redisHealthChecker wraps the redis client for health checks.
type redisHealthChecker struct{ client redis.UniversalClient }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client redis.UniversalClient) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// poolHealthChecker reports the backing-store pool unhealthy once it stops serving.
type poolHealthChecker struct{ pool ports.ResourcePool }

func (p *poolHealthChecker) Name() string { return "resource_pool" }

func (p *poolHealthChecker) Check(ctx context.Context) error {
	st := p.pool.Stats()
	switch {
	case st.Broken:
		return ErrPoolBroken
	case st.Closed:
		return ErrPoolClosed
	case st.Active > st.MaxConnections:
		return fmt.Errorf("%w: %d active of %d", ErrPoolBroken, st.Active, st.MaxConnections)
	}
	return nil
}

func NewPoolHealthChecker(pool ports.ResourcePool) ports.HealthChecker {
	return &poolHealthChecker{pool: pool}
}
