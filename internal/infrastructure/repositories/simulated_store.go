package repositories

import (
	"context"
	"time"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/pool"
)

// simulatedStore stands in for a database. Every access holds one pool resource for the
// configured latency, so pool sizing and back-pressure behave as with a real backend.
type simulatedStore struct {
	pool    ports.ResourcePool
	latency time.Duration
	now     func() time.Time
}

func newSimulatedStore(p ports.ResourcePool, latency time.Duration) simulatedStore {
	return simulatedStore{pool: p, latency: latency, now: time.Now}
}

// access runs fn while holding a resource.
func (s simulatedStore) access(ctx context.Context, fn func() error) error {
	return pool.WithResource(ctx, s.pool, func(*memory.Resource) error {
		if s.latency > 0 {
			t := time.NewTimer(s.latency)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
		return fn()
	})
}

func timePtr(t time.Time) *time.Time { return &t }
