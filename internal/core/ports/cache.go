package ports

import (
	"time"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
)

// Cache defines the in-process key-value cache contract.
// All operations are synchronous and complete in bounded time; a miss is (nil, false).
type Cache interface {
	// Get returns the bytes stored for key. Expired entries are removed and reported as a miss.
	Get(key string) ([]byte, bool)
	// Set stores value for key; ttl <= 0 means the entry never expires.
	Set(key string, value []byte, ttl time.Duration)
	// Delete removes the key and reports whether it was present.
	Delete(key string) bool
	// DeletePrefix removes every key starting with prefix and returns how many were removed.
	DeletePrefix(prefix string) int
	// Clear removes all entries and resets hit/miss counters.
	Clear()
	Stats() memory.CacheStats
}
