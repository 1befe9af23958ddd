package observability

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
)

const DefaultNotifierBuffer = 256

// Notifier implements ports.SignalSink. Signals are queued on a buffered channel and
// written to the log by a single background goroutine, so Emit never blocks the caller.
// When the buffer is full the signal is dropped and counted.
type Notifier struct {
	logger  *logrus.Logger
	metrics *Metrics

	mu     sync.RWMutex
	ch     chan memory.Signal
	closed bool

	dropped atomic.Uint64
	wg      sync.WaitGroup
}

// NewNotifier starts the delivery goroutine. Call Close to flush and stop it.
func NewNotifier(logger *logrus.Logger, buffer int, metrics *Metrics) *Notifier {
	if logger == nil {
		logger = logrus.New()
	}
	if buffer <= 0 {
		buffer = DefaultNotifierBuffer
	}
	n := &Notifier{
		logger:  logger,
		metrics: metrics,
		ch:      make(chan memory.Signal, buffer),
	}
	n.wg.Add(1)
	go n.run()
	return n
}

// Emit implements ports.SignalSink.
func (n *Notifier) Emit(s memory.Signal) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.drop()
		return
	}
	select {
	case n.ch <- s:
		n.metrics.recordSignal(s.Kind)
	default:
		n.drop()
	}
}

// Dropped reports how many signals were discarded.
func (n *Notifier) Dropped() uint64 { return n.dropped.Load() }

// Close stops accepting signals and waits until queued ones are written. Idempotent.
func (n *Notifier) Close() {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.ch)
	}
	n.mu.Unlock()
	n.wg.Wait()
}

func (n *Notifier) drop() {
	n.dropped.Add(1)
	n.metrics.recordDropped()
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for s := range n.ch {
		n.write(s)
	}
}

func (n *Notifier) write(s memory.Signal) {
	fields := logrus.Fields{"signal": string(s.Kind)}
	if s.OperationID != "" {
		fields["operation_id"] = s.OperationID
	}
	if s.Duration > 0 {
		fields["duration_ms"] = s.Duration.Milliseconds()
	}
	if s.MemoryDelta != 0 {
		fields["memory_delta_mb"] = float64(s.MemoryDelta) / (1024 * 1024)
	}
	for k, v := range s.Fields {
		fields[k] = v
	}

	entry := n.logger.WithFields(fields)
	if !s.At.IsZero() {
		entry = entry.WithTime(s.At)
	}

	msg := s.Message
	switch s.Kind {
	case memory.SignalPoolInvariant:
		if msg == "" {
			msg = "resource pool invariant violated"
		}
		entry.Error(msg)
	case memory.SignalOperationMemory:
		if msg == "" {
			msg = "high memory usage detected"
		}
		entry.Warn(msg)
	default:
		if msg == "" {
			msg = "memory signal"
		}
		entry.Warn(msg)
	}
}
