// Package hostmem reads host-wide memory telemetry.
package hostmem

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
)

// VirtualMemoryFunc matches mem.VirtualMemoryWithContext.
type VirtualMemoryFunc func(ctx context.Context) (*mem.VirtualMemoryStat, error)

// Reader implements ports.HostMemoryReader on top of gopsutil.
// Free is reported as the memory available to new allocations without swapping,
// which on Linux includes reclaimable page cache.
type Reader struct {
	virtualMemory VirtualMemoryFunc
}

func NewReader() *Reader {
	return &Reader{virtualMemory: mem.VirtualMemoryWithContext}
}

// NewReaderWithSource is used by tests to feed canned readings.
func NewReaderWithSource(fn VirtualMemoryFunc) *Reader {
	return &Reader{virtualMemory: fn}
}

func (r *Reader) Read(ctx context.Context) (memory.HostMemory, error) {
	vm, err := r.virtualMemory(ctx)
	if err != nil {
		return memory.HostMemory{}, fmt.Errorf("%w: %w", memory.ErrTelemetryUnavailable, err)
	}
	if vm == nil || vm.Total == 0 {
		return memory.HostMemory{}, fmt.Errorf("%w: host reported zero total memory", memory.ErrTelemetryUnavailable)
	}
	return memory.HostMemory{Total: vm.Total, Free: vm.Available}, nil
}
