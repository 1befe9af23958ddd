package memory

import (
	"errors"
	"time"
)

// DefaultPressureThreshold is the host memory utilization (percent) above which
// the cache is cleared.
const DefaultPressureThreshold = 85.0

// DefaultOperationWarnBytes is the per-operation heap growth that triggers a warning signal.
const DefaultOperationWarnBytes int64 = 10 * 1024 * 1024

// ErrTelemetryUnavailable is returned by host telemetry readers that cannot obtain memory stats.
var ErrTelemetryUnavailable = errors.New("memory telemetry unavailable")

// HostMemory is a point-in-time reading of host-wide memory.
type HostMemory struct {
	Total uint64 `json:"total"`
	Free  uint64 `json:"free"`
}

// UsedPercent returns (total-free)/total*100, or 0 when total is unknown.
func UsedPercent(total, free uint64) float64 {
	if total == 0 {
		return 0
	}
	if free > total {
		return 0
	}
	return float64(total-free) / float64(total) * 100
}

// IsUnderPressure reports whether used memory is strictly above thresholdPercent.
// It performs no mutation; callers decide what to evict.
func IsUnderPressure(total, free uint64, thresholdPercent float64) bool {
	if total == 0 {
		return false
	}
	return UsedPercent(total, free) > thresholdPercent
}

// Reading is the outcome of one host memory sample.
type Reading struct {
	HostMemory
	UsedPercent   float64   `json:"used_percent"`
	UnderPressure bool      `json:"under_pressure"`
	Available     bool      `json:"available"`
	SampledAt     time.Time `json:"sampled_at"`
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Size      int     `json:"size"`
	MaxSize   int     `json:"max_size"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// HitRate returns hits/(hits+misses), defined as 0 when there were no lookups.
func HitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Resource is a reusable backing-store handle owned by a resource pool.
type Resource struct {
	ID        uint64    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// PoolStats is a snapshot of resource pool state.
type PoolStats struct {
	Active         int  `json:"active"`
	Idle           int  `json:"idle"`
	InUse          int  `json:"in_use"`
	Waiting        int  `json:"waiting"`
	MaxConnections int  `json:"max_connections"`
	Closed         bool `json:"closed"`
	Broken         bool `json:"broken"`
}

// SignalKind classifies observability signals raised by the memory layer.
type SignalKind string

const (
	SignalOperationMemory SignalKind = "operation_memory"
	SignalPoolInvariant   SignalKind = "pool_invariant_violation"
	SignalMemoryPressure  SignalKind = "memory_pressure"
)

// Signal is a best-effort warning delivered to the observability collaborator.
type Signal struct {
	Kind        SignalKind     `json:"kind"`
	OperationID string         `json:"operation_id,omitempty"`
	Duration    time.Duration  `json:"duration,omitempty"`
	MemoryDelta int64          `json:"memory_delta,omitempty"`
	Message     string         `json:"message,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
	At          time.Time      `json:"at"`
}
