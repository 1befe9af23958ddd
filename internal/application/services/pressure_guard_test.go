package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/avatarctic/study-assistant-api/internal/application/services"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/memcache"
	tmocks "github.com/avatarctic/study-assistant-api/test/mocks"
)

type recorderStub struct {
	clears   atomic.Int64
	readings atomic.Int64
	last     atomic.Pointer[memory.Reading]
}

func (r *recorderStub) RecordHostMemory(m memory.Reading) {
	r.readings.Add(1)
	r.last.Store(&m)
}
func (r *recorderStub) RecordPressureClear() { r.clears.Add(1) }

func hostReader(total, free uint64) *tmocks.HostMemoryReaderMock {
	return &tmocks.HostMemoryReaderMock{ReadFn: func(context.Context) (memory.HostMemory, error) {
		return memory.HostMemory{Total: total, Free: free}, nil
	}}
}

func filledCache(n int) *memcache.Store {
	c := memcache.New(100)
	for i := 0; i < n; i++ {
		c.Set(string(rune('a'+i)), []byte("v"), 0)
	}
	return c
}

func TestPressureGuard_ClearsCacheUnderPressure(t *testing.T) {
	cache := filledCache(5)
	rec := &recorderStub{}
	sink := &tmocks.SignalSinkMock{}
	g := impl.NewPressureGuard(hostReader(100, 10), cache, sink, rec, impl.PressureGuardConfig{Threshold: 85}, nil)

	r := g.Sample(context.Background())
	assert.True(t, r.Available)
	assert.True(t, r.UnderPressure)
	assert.InDelta(t, 90.0, r.UsedPercent, 1e-9)

	assert.True(t, g.Check())
	assert.Equal(t, 0, cache.Stats().Size)
	assert.Equal(t, int64(1), rec.clears.Load())

	sigs := sink.Snapshot()
	require.Len(t, sigs, 1)
	assert.Equal(t, memory.SignalMemoryPressure, sigs[0].Kind)

	// still under pressure: clears again but does not re-signal
	g.Sample(context.Background())
	assert.True(t, g.Check())
	assert.Len(t, sink.Snapshot(), 1)
}

func TestPressureGuard_NoClearBelowOrAtThreshold(t *testing.T) {
	for _, tc := range []struct {
		name        string
		total, free uint64
		threshold   float64
	}{
		{"half used", 100, 50, 85},
		{"exactly at threshold", 4, 1, 75},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cache := filledCache(3)
			g := impl.NewPressureGuard(hostReader(tc.total, tc.free), cache, nil, nil, impl.PressureGuardConfig{Threshold: tc.threshold}, nil)
			g.Sample(context.Background())

			assert.False(t, g.Check())
			assert.Equal(t, 3, cache.Stats().Size)
		})
	}
}

func TestPressureGuard_FailsOpenOnTelemetryError(t *testing.T) {
	cache := filledCache(3)
	reader := &tmocks.HostMemoryReaderMock{ReadFn: func(context.Context) (memory.HostMemory, error) {
		return memory.HostMemory{}, errors.Join(memory.ErrTelemetryUnavailable, errors.New("boom"))
	}}
	rec := &recorderStub{}
	g := impl.NewPressureGuard(reader, cache, nil, rec, impl.PressureGuardConfig{}, nil)

	r := g.Sample(context.Background())
	assert.False(t, r.Available)
	// the failed sample still reaches the recorder so the gauges show it
	assert.Equal(t, int64(1), rec.readings.Load())
	require.NotNil(t, rec.last.Load())
	assert.False(t, rec.last.Load().Available)
	assert.False(t, r.UnderPressure)
	assert.False(t, g.Check())
	assert.Equal(t, 3, cache.Stats().Size)
	assert.Equal(t, memory.DefaultPressureThreshold, g.Threshold())
}

func TestPressureGuard_TelemetryFailureAfterPressureStopsClearing(t *testing.T) {
	cache := filledCache(2)
	var fail atomic.Bool
	reader := &tmocks.HostMemoryReaderMock{ReadFn: func(context.Context) (memory.HostMemory, error) {
		if fail.Load() {
			return memory.HostMemory{}, memory.ErrTelemetryUnavailable
		}
		return memory.HostMemory{Total: 100, Free: 1}, nil
	}}
	g := impl.NewPressureGuard(reader, cache, nil, nil, impl.PressureGuardConfig{}, nil)
	g.Sample(context.Background())
	fail.Store(true)
	g.Sample(context.Background())

	cache.Set("k", []byte("v"), 0)
	assert.False(t, g.Check())
	_, ok := cache.Get("k")
	assert.True(t, ok)
}

func TestPressureGuard_CheckBeforeFirstSampleIsNoop(t *testing.T) {
	cache := filledCache(1)
	g := impl.NewPressureGuard(hostReader(100, 1), cache, nil, nil, impl.PressureGuardConfig{}, nil)
	assert.False(t, g.Check())
	assert.Equal(t, memory.Reading{}, g.Last())
}

func TestPressureGuard_RunSamplesUntilCancelled(t *testing.T) {
	var reads atomic.Int64
	reader := &tmocks.HostMemoryReaderMock{ReadFn: func(context.Context) (memory.HostMemory, error) {
		reads.Add(1)
		return memory.HostMemory{Total: 100, Free: 60}, nil
	}}
	g := impl.NewPressureGuard(reader, memcache.New(10), nil, nil, impl.PressureGuardConfig{SampleInterval: 5 * time.Millisecond}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return reads.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	assert.True(t, g.Last().Available)
	assert.InDelta(t, 40.0, g.Last().UsedPercent, 1e-9)
}
