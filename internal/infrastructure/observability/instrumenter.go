package observability

import (
	rtmetrics "runtime/metrics"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
)

const heapObjectsMetric = "/memory/classes/heap/objects:bytes"

// HeapReader returns live heap bytes, or false when the reading is unavailable.
type HeapReader func() (uint64, bool)

// ReadHeapObjects reads live heap object bytes from the runtime without stopping the world.
func ReadHeapObjects() (uint64, bool) {
	s := []rtmetrics.Sample{{Name: heapObjectsMetric}}
	rtmetrics.Read(s)
	if s[0].Value.Kind() != rtmetrics.KindUint64 {
		return 0, false
	}
	return s[0].Value.Uint64(), true
}

// OperationReport summarizes one instrumented operation.
type OperationReport struct {
	OperationID string
	Duration    time.Duration
	MemoryDelta int64
	// MemoryKnown is false when heap telemetry failed at either end.
	MemoryKnown bool
	Warned      bool
}

// Instrumenter measures elapsed time and heap growth across operations and emits a
// SignalOperationMemory when growth exceeds the threshold. The readings are process-wide,
// so concurrent operations contribute to each other's deltas.
type Instrumenter struct {
	sink      ports.SignalSink
	metrics   *Metrics
	logger    *logrus.Logger
	warnBytes int64
	readHeap  HeapReader
	now       func() time.Time
}

type InstrumenterOption func(*Instrumenter)

// WithHeapReader replaces the runtime heap reading, mainly for tests.
func WithHeapReader(fn HeapReader) InstrumenterOption {
	return func(i *Instrumenter) {
		if fn != nil {
			i.readHeap = fn
		}
	}
}

func WithInstrumenterClock(now func() time.Time) InstrumenterOption {
	return func(i *Instrumenter) {
		if now != nil {
			i.now = now
		}
	}
}

// NewInstrumenter creates an instrumenter. warnBytes <= 0 uses memory.DefaultOperationWarnBytes.
func NewInstrumenter(sink ports.SignalSink, metrics *Metrics, logger *logrus.Logger, warnBytes int64, opts ...InstrumenterOption) *Instrumenter {
	if warnBytes <= 0 {
		warnBytes = memory.DefaultOperationWarnBytes
	}
	i := &Instrumenter{
		sink:      sink,
		metrics:   metrics,
		logger:    logger,
		warnBytes: warnBytes,
		readHeap:  ReadHeapObjects,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// WarnBytes returns the configured heap growth threshold.
func (i *Instrumenter) WarnBytes() int64 { return i.warnBytes }

// Operation is an operation in flight.
type Operation struct {
	in          *Instrumenter
	operationID string
	start       time.Time
	startHeap   uint64
	heapOK      bool
}

// Begin records the starting time and heap size for operationID.
func (i *Instrumenter) Begin(operationID string) *Operation {
	heap, ok := i.readHeap()
	return &Operation{
		in:          i,
		operationID: operationID,
		start:       i.now(),
		startHeap:   heap,
		heapOK:      ok,
	}
}

// End finishes the measurement and reports. It never fails; telemetry problems only suppress the signal.
func (o *Operation) End() OperationReport {
	i := o.in
	rep := OperationReport{
		OperationID: o.operationID,
		Duration:    i.now().Sub(o.start),
	}

	if endHeap, ok := i.readHeap(); ok && o.heapOK {
		rep.MemoryKnown = true
		rep.MemoryDelta = int64(endHeap) - int64(o.startHeap)
	}

	if rep.MemoryKnown && rep.MemoryDelta > i.warnBytes {
		rep.Warned = true
		if i.sink != nil {
			i.sink.Emit(memory.Signal{
				Kind:        memory.SignalOperationMemory,
				OperationID: rep.OperationID,
				Duration:    rep.Duration,
				MemoryDelta: rep.MemoryDelta,
				Message:     "high memory usage detected",
				At:          i.now(),
			})
		}
	}

	i.metrics.RecordOperation(rep.Duration, rep.MemoryDelta, rep.Warned)
	if i.logger != nil {
		i.logger.WithFields(logrus.Fields{
			"operation_id":    rep.OperationID,
			"duration_ms":     rep.Duration.Milliseconds(),
			"memory_delta_kb": rep.MemoryDelta / 1024,
		}).Debug("operation finished")
	}
	return rep
}

// Track runs fn between Begin and End and returns fn's error unchanged.
func (i *Instrumenter) Track(operationID string, fn func() error) error {
	p := i.Begin(operationID)
	defer p.End()
	return fn()
}
