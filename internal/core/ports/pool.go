package ports

import (
	"context"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
)

// ResourcePool hands out a bounded number of reusable backing-store handles.
// Implementations MUST be safe for concurrent use.
type ResourcePool interface {
	// Acquire blocks until a resource is available or ctx is done.
	Acquire(ctx context.Context) (*memory.Resource, error)
	// Release returns a resource obtained from Acquire.
	Release(r *memory.Resource) error
	// Close stops handing out resources and waits for outstanding ones until ctx is done.
	Close(ctx context.Context) error
	Stats() memory.PoolStats
}
