package ports

import (
	"context"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
)

// HostMemoryReader supplies host-wide memory telemetry on demand.
// Errors should wrap memory.ErrTelemetryUnavailable.
type HostMemoryReader interface {
	Read(ctx context.Context) (memory.HostMemory, error)
}

// SignalSink receives observability signals. Emit must never block the caller.
type SignalSink interface {
	Emit(s memory.Signal)
}

// PressureGuard clears the cache when the last host sample showed memory pressure.
type PressureGuard interface {
	Check() bool
	Last() memory.Reading
}
