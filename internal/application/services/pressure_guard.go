package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
)

// PressureRecorder receives pressure-guard measurements.
type PressureRecorder interface {
	RecordHostMemory(r memory.Reading)
	RecordPressureClear()
}

type PressureGuardConfig struct {
	Threshold      float64
	SampleInterval time.Duration
}

// PressureGuard samples host memory on a timer and, on the request path, clears the
// cache while the latest sample shows utilization above the threshold.
type PressureGuard struct {
	reader    ports.HostMemoryReader
	cache     ports.Cache
	sink      ports.SignalSink
	recorder  PressureRecorder
	logger    *logrus.Logger
	threshold float64
	interval  time.Duration
	now       func() time.Time

	last atomic.Pointer[memory.Reading]
}

func NewPressureGuard(reader ports.HostMemoryReader, cache ports.Cache, sink ports.SignalSink, recorder PressureRecorder, cfg PressureGuardConfig, logger *logrus.Logger) *PressureGuard {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = memory.DefaultPressureThreshold
	}
	interval := cfg.SampleInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	g := &PressureGuard{
		reader:    reader,
		cache:     cache,
		sink:      sink,
		recorder:  recorder,
		logger:    logger,
		threshold: threshold,
		interval:  interval,
		now:       time.Now,
	}
	g.last.Store(&memory.Reading{})
	return g
}

// Sample reads host telemetry once and stores the result. Telemetry failures are
// recorded as an unavailable reading that never reports pressure.
func (g *PressureGuard) Sample(ctx context.Context) memory.Reading {
	r := memory.Reading{SampledAt: g.now()}

	hm, err := g.reader.Read(ctx)
	if err != nil {
		if g.logger != nil {
			g.logger.WithError(err).Debug("host memory sample failed; pressure check disabled until next sample")
		}
		g.last.Store(&r)
		if g.recorder != nil {
			g.recorder.RecordHostMemory(r)
		}
		return r
	}

	r.HostMemory = hm
	r.Available = true
	r.UsedPercent = memory.UsedPercent(hm.Total, hm.Free)
	r.UnderPressure = memory.IsUnderPressure(hm.Total, hm.Free, g.threshold)

	prev := g.last.Swap(&r)
	if g.recorder != nil {
		g.recorder.RecordHostMemory(r)
	}
	if r.UnderPressure && (prev == nil || !prev.UnderPressure) && g.sink != nil {
		g.sink.Emit(memory.Signal{
			Kind:    memory.SignalMemoryPressure,
			Message: "host memory above pressure threshold",
			Fields: map[string]any{
				"used_percent": r.UsedPercent,
				"threshold":    g.threshold,
			},
			At: r.SampledAt,
		})
	}
	return r
}

// Run samples immediately and then every interval until ctx is done.
func (g *PressureGuard) Run(ctx context.Context) {
	g.Sample(ctx)

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Sample(ctx)
		}
	}
}

// Check clears the cache synchronously when the latest reading is under pressure and
// reports whether it did.
func (g *PressureGuard) Check() bool {
	r := g.last.Load()
	if r == nil || !r.UnderPressure {
		return false
	}

	g.cache.Clear()
	if g.recorder != nil {
		g.recorder.RecordPressureClear()
	}
	if g.logger != nil {
		g.logger.WithFields(logrus.Fields{
			"used_percent": r.UsedPercent,
			"threshold":    g.threshold,
		}).Warn("high memory usage, cache cleared")
	}
	return true
}

// Last returns the most recent reading.
func (g *PressureGuard) Last() memory.Reading {
	if r := g.last.Load(); r != nil {
		return *r
	}
	return memory.Reading{}
}

func (g *PressureGuard) Threshold() float64 { return g.threshold }
