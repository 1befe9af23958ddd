package pool

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
)

const (
	DefaultMaxConnections = 10
	DefaultAcquireTimeout = 5 * time.Second
)

// Config groups pool sizing and wait settings.
type Config struct {
	MaxConnections int
	// AcquireTimeout bounds Acquire calls whose context carries no deadline. Zero disables it.
	AcquireTimeout time.Duration
}

// waiter is a suspended Acquire call. ch is buffered so a hand-off never blocks the releaser.
type waiter struct {
	ch     chan *memory.Resource
	served bool
}

// Pool is a bounded set of reusable resources.
//
// Invariants (guarded by mu):
//
//	len(idle) + len(inUse) == active <= maxConns
//	every resource is either idle or held by exactly one caller
//
// Acquire callers that find the pool exhausted queue in arrival order; Release hands the
// resource straight to the oldest waiter so later arrivals cannot overtake it.
type Pool struct {
	mu sync.Mutex

	maxConns       int
	acquireTimeout time.Duration

	idle    []*memory.Resource
	inUse   map[uint64]*memory.Resource
	active  int
	nextID  uint64
	waiters *list.List // of *waiter, front = oldest

	closed bool
	broken bool

	// done is closed when the pool stops serving waiters; doneErr says why.
	done    chan struct{}
	doneErr error

	drained       chan struct{}
	drainedClosed bool

	logger *logrus.Logger
	sink   ports.SignalSink
	now    func() time.Time
}

// Option configures a Pool.
type Option func(*Pool)

func WithLogger(l *logrus.Logger) Option { return func(p *Pool) { p.logger = l } }

// WithSignalSink routes invariant violations to the observability collaborator.
func WithSignalSink(s ports.SignalSink) Option { return func(p *Pool) { p.sink = s } }

func WithClock(now func() time.Time) Option {
	return func(p *Pool) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates an empty pool; resources are created lazily on demand.
func New(cfg Config, opts ...Option) *Pool {
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = DefaultMaxConnections
	}
	if cfg.AcquireTimeout < 0 {
		cfg.AcquireTimeout = 0
	}
	p := &Pool{
		maxConns:       cfg.MaxConnections,
		acquireTimeout: cfg.AcquireTimeout,
		inUse:          make(map[uint64]*memory.Resource, cfg.MaxConnections),
		waiters:        list.New(),
		done:           make(chan struct{}),
		drained:        make(chan struct{}),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Acquire implements ResourcePool.Acquire.
//
// An idle resource is reused first; otherwise a new one is created while below capacity;
// otherwise the caller waits in FIFO order until a resource is released or ctx is done.
// A timed-out or cancelled caller leaves the pool exactly as it found it.
func (p *Pool) Acquire(ctx context.Context) (*memory.Resource, error) {
	if _, ok := ctx.Deadline(); !ok && p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	p.mu.Lock()
	if err := p.usableLocked(); err != nil {
		p.mu.Unlock()
		return nil, err
	}

	if len(p.idle) > 0 {
		r := p.idle[0]
		p.idle[0] = nil
		p.idle = p.idle[1:]
		p.inUse[r.ID] = r
		p.mu.Unlock()
		return r, nil
	}

	if p.active < p.maxConns {
		p.nextID++
		r := &memory.Resource{ID: p.nextID, CreatedAt: p.now()}
		p.active++
		p.inUse[r.ID] = r
		p.mu.Unlock()
		return r, nil
	}

	w := &waiter{ch: make(chan *memory.Resource, 1)}
	el := p.waiters.PushBack(w)
	p.mu.Unlock()

	select {
	case r := <-w.ch:
		return r, nil
	case <-ctx.Done():
		return nil, p.abandon(el, w, fmt.Errorf("%w: %w", ErrPoolTimeout, ctx.Err()))
	case <-p.done:
		p.mu.Lock()
		err := p.doneErr
		p.mu.Unlock()
		return nil, p.abandon(el, w, err)
	}
}

// abandon withdraws a waiter. If a resource was handed over in the meantime it goes back
// to the pool so the failed call has no effect on pool state.
func (p *Pool) abandon(el *list.Element, w *waiter, err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w.served {
		r := <-w.ch
		if perr := p.putLocked(r); perr != nil {
			return perr
		}
		return err
	}
	p.waiters.Remove(el)
	return err
}

// Release implements ResourcePool.Release.
func (p *Pool) Release(r *memory.Resource) error {
	if r == nil {
		return fmt.Errorf("%w: nil resource released", ErrPoolInvariantViolation)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	held, ok := p.inUse[r.ID]
	if !ok || held != r {
		return p.violationLocked("released resource is not checked out", logrus.Fields{"resource_id": r.ID})
	}
	return p.putLocked(r)
}

// putLocked returns a checked-out resource to the pool.
func (p *Pool) putLocked(r *memory.Resource) error {
	if p.closed || p.broken {
		delete(p.inUse, r.ID)
		p.active--
		p.signalDrainedLocked()
		return nil
	}

	if front := p.waiters.Front(); front != nil {
		w := p.waiters.Remove(front).(*waiter)
		w.served = true
		w.ch <- r
		return nil
	}

	if len(p.idle) < p.maxConns {
		delete(p.inUse, r.ID)
		p.idle = append(p.idle, r)
		return nil
	}

	// unreachable while len(idle)+len(inUse) == active <= maxConns
	delete(p.inUse, r.ID)
	p.active--
	return p.violationLocked("idle list full on release", logrus.Fields{"resource_id": r.ID, "idle": len(p.idle)})
}

// Close implements ResourcePool.Close.
//
// Pending and future Acquire calls fail with ErrPoolClosed and idle resources are dropped.
// Resources still checked out are not reclaimed: Close waits for their Release until ctx
// is done, then reports ErrPoolBusy. Releases after Close discard the resource.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		p.finishLocked(ErrPoolClosed)
		for el := p.waiters.Front(); el != nil; {
			next := el.Next()
			p.waiters.Remove(el)
			el = next
		}
		p.active -= len(p.idle)
		p.idle = nil
		if p.active != len(p.inUse) {
			_ = p.violationLocked("active count drifted from checked-out resources", logrus.Fields{"active": p.active, "in_use": len(p.inUse)})
			p.active = len(p.inUse)
		}
		p.signalDrainedLocked()
	}
	if p.drainedClosed {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	select {
	case <-p.drained:
		return nil
	case <-ctx.Done():
		p.mu.Lock()
		outstanding := p.active
		p.mu.Unlock()
		if p.logger != nil {
			p.logger.WithField("outstanding", outstanding).Warn("pool closed with resources still checked out")
		}
		return fmt.Errorf("%w: %d outstanding: %w", ErrPoolBusy, outstanding, ctx.Err())
	}
}

// Stats implements ResourcePool.Stats.
func (p *Pool) Stats() memory.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return memory.PoolStats{
		Active:         p.active,
		Idle:           len(p.idle),
		InUse:          len(p.inUse),
		Waiting:        p.waiters.Len(),
		MaxConnections: p.maxConns,
		Closed:         p.closed,
		Broken:         p.broken,
	}
}

func (p *Pool) usableLocked() error {
	if p.closed {
		return ErrPoolClosed
	}
	if p.broken {
		return fmt.Errorf("%w: pool is unusable", ErrPoolInvariantViolation)
	}
	return nil
}

// violationLocked marks the pool unusable, fails waiters and reports the problem.
func (p *Pool) violationLocked(msg string, fields logrus.Fields) error {
	p.broken = true
	err := fmt.Errorf("%w: %s", ErrPoolInvariantViolation, msg)
	p.finishLocked(err)

	if p.logger != nil {
		p.logger.WithFields(fields).Error("resource pool invariant violated: " + msg)
	}
	if p.sink != nil {
		p.sink.Emit(memory.Signal{
			Kind:    memory.SignalPoolInvariant,
			Message: msg,
			Fields:  fields,
			At:      p.now(),
		})
	}
	return err
}

func (p *Pool) finishLocked(err error) {
	if p.doneErr != nil {
		return
	}
	p.doneErr = err
	close(p.done)
}

func (p *Pool) signalDrainedLocked() {
	if p.closed && p.active == 0 && !p.drainedClosed {
		p.drainedClosed = true
		close(p.drained)
	}
}

// WithResource acquires a resource, runs fn with it and always releases it.
func WithResource(ctx context.Context, p ports.ResourcePool, fn func(r *memory.Resource) error) (err error) {
	r, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := p.Release(r); relErr != nil && err == nil {
			err = relErr
		}
	}()
	return fn(r)
}
