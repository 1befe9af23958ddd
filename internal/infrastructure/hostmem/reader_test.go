package hostmem

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
)

func TestRead_UsesAvailableAsFree(t *testing.T) {
	r := NewReaderWithSource(func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 1000, Free: 50, Available: 400}, nil
	})

	got, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, memory.HostMemory{Total: 1000, Free: 400}, got)
}

func TestRead_WrapsSourceErrors(t *testing.T) {
	cause := errors.New("no /proc")
	r := NewReaderWithSource(func(context.Context) (*mem.VirtualMemoryStat, error) {
		return nil, cause
	})

	_, err := r.Read(context.Background())
	assert.ErrorIs(t, err, memory.ErrTelemetryUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestRead_ZeroTotalIsUnavailable(t *testing.T) {
	r := NewReaderWithSource(func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{}, nil
	})

	_, err := r.Read(context.Background())
	assert.ErrorIs(t, err, memory.ErrTelemetryUnavailable)
}

func TestNewReader_ReadsRealHost(t *testing.T) {
	got, err := NewReader().Read(context.Background())
	if err != nil {
		t.Skipf("host telemetry unavailable: %v", err)
	}
	assert.Greater(t, got.Total, uint64(0))
	assert.LessOrEqual(t, got.Free, got.Total)
}
