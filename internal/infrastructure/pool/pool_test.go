package pool

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
)

type recordingSink struct {
	mu      sync.Mutex
	signals []memory.Signal
}

func (s *recordingSink) Emit(sig memory.Signal) {
	s.mu.Lock()
	s.signals = append(s.signals, sig)
	s.mu.Unlock()
}

func (s *recordingSink) all() []memory.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]memory.Signal(nil), s.signals...)
}

// waitForWaiters polls until n callers are suspended in Acquire.
func waitForWaiters(t *testing.T, p *Pool, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return p.Stats().Waiting == n }, time.Second, time.Millisecond)
}

func TestAcquire_CreatesLazilyUpToMax(t *testing.T) {
	p := New(Config{MaxConnections: 3})
	assert.Equal(t, 0, p.Stats().Active)

	r1, err := p.Acquire(context.Background())
	require.NoError(t, err)
	r2, err := p.Acquire(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, r1.ID, r2.ID)
	st := p.Stats()
	assert.Equal(t, 2, st.Active)
	assert.Equal(t, 2, st.InUse)
	assert.Equal(t, 0, st.Idle)
	assert.Equal(t, 3, st.MaxConnections)
}

func TestAcquire_ReusesIdleBeforeCreating(t *testing.T) {
	p := New(Config{MaxConnections: 3})
	r1, err := p.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Release(r1))

	r2, err := p.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, r1, r2)
	assert.Equal(t, 1, p.Stats().Active)
}

func TestAcquire_IdleServedInReleaseOrder(t *testing.T) {
	p := New(Config{MaxConnections: 2})
	r1, _ := p.Acquire(context.Background())
	r2, _ := p.Acquire(context.Background())
	require.NoError(t, p.Release(r2))
	require.NoError(t, p.Release(r1))

	first, err := p.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, r2, first)
}

func TestAcquire_BlocksUntilReleaseAndReceivesSameResource(t *testing.T) {
	p := New(Config{MaxConnections: 1})
	r1, err := p.Acquire(context.Background())
	require.NoError(t, err)

	got := make(chan *memory.Resource, 1)
	go func() {
		r, err := p.Acquire(context.Background())
		if err == nil {
			got <- r
		}
	}()

	waitForWaiters(t, p, 1)
	assert.Equal(t, 1, p.Stats().Active)

	require.NoError(t, p.Release(r1))

	select {
	case r := <-got:
		assert.Same(t, r1, r)
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by release")
	}
	st := p.Stats()
	assert.Equal(t, 1, st.Active)
	assert.Equal(t, 1, st.InUse)
	assert.Equal(t, 0, st.Waiting)
}

func TestAcquire_TimeoutLeavesStateUnchanged(t *testing.T) {
	p := New(Config{MaxConnections: 1})
	r1, err := p.Acquire(context.Background())
	require.NoError(t, err)
	before := p.Stats()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = p.Acquire(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPoolTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, before, p.Stats())

	// the pool still works afterwards
	require.NoError(t, p.Release(r1))
	r, err := p.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, r1, r)
}

func TestAcquire_DefaultTimeoutAppliesWithoutDeadline(t *testing.T) {
	p := New(Config{MaxConnections: 1, AcquireTimeout: 15 * time.Millisecond})
	_, err := p.Acquire(context.Background())
	require.NoError(t, err)

	start := time.Now()
	_, err = p.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPoolTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAcquire_CancelledContext(t *testing.T) {
	p := New(Config{MaxConnections: 1})
	_, err := p.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for p.Stats().Waiting < 1 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()
	_, err = p.Acquire(ctx)
	assert.ErrorIs(t, err, ErrPoolTimeout)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, p.Stats().Waiting)
}

func TestAcquire_WaitersServedFIFO(t *testing.T) {
	p := New(Config{MaxConnections: 1})
	r, err := p.Acquire(context.Background())
	require.NoError(t, err)

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := p.Acquire(context.Background())
			if err != nil {
				return
			}
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			_ = p.Release(got)
		}(i)
		// enqueue strictly one after another
		waitForWaiters(t, p, i+1)
	}

	require.NoError(t, p.Release(r))
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2}, order)
	st := p.Stats()
	assert.Equal(t, 1, st.Active)
	assert.Equal(t, 1, st.Idle)
}

func TestRelease_DoubleReleaseIsInvariantViolation(t *testing.T) {
	sink := &recordingSink{}
	p := New(Config{MaxConnections: 2}, WithSignalSink(sink))
	r, err := p.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Release(r))

	err = p.Release(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPoolInvariantViolation)
	assert.True(t, p.Stats().Broken)

	_, err = p.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPoolInvariantViolation)

	sigs := sink.all()
	require.Len(t, sigs, 1)
	assert.Equal(t, memory.SignalPoolInvariant, sigs[0].Kind)
	assert.Equal(t, r.ID, sigs[0].Fields["resource_id"])
}

func TestRelease_ForeignResourceIsInvariantViolation(t *testing.T) {
	p := New(Config{MaxConnections: 2})
	err := p.Release(&memory.Resource{ID: 42})
	assert.ErrorIs(t, err, ErrPoolInvariantViolation)
}

func TestRelease_NilDoesNotBreakPool(t *testing.T) {
	p := New(Config{MaxConnections: 2})
	assert.ErrorIs(t, p.Release(nil), ErrPoolInvariantViolation)
	assert.False(t, p.Stats().Broken)
}

func TestViolation_FailsPendingWaiters(t *testing.T) {
	p := New(Config{MaxConnections: 1})
	r, err := p.Acquire(context.Background())
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := p.Acquire(context.Background())
		errCh <- err
	}()
	waitForWaiters(t, p, 1)

	_ = p.Release(&memory.Resource{ID: r.ID + 100})

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrPoolInvariantViolation)
	case <-time.After(time.Second):
		t.Fatal("waiter not failed after violation")
	}
}

func TestClose_FailsWaitersAndNewAcquires(t *testing.T) {
	p := New(Config{MaxConnections: 1})
	r, err := p.Acquire(context.Background())
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := p.Acquire(context.Background())
		errCh <- err
	}()
	waitForWaiters(t, p, 1)

	closeDone := make(chan error, 1)
	go func() { closeDone <- p.Close(context.Background()) }()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrPoolClosed)
	case <-time.After(time.Second):
		t.Fatal("waiter not failed on close")
	}

	_, err = p.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPoolClosed)

	// Close waits for the outstanding resource
	require.NoError(t, p.Release(r))
	select {
	case err := <-closeDone:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("close did not return after last release")
	}
	st := p.Stats()
	assert.True(t, st.Closed)
	assert.Equal(t, 0, st.Active)
}

func TestClose_DropsIdleAndIsIdempotent(t *testing.T) {
	p := New(Config{MaxConnections: 3})
	r1, _ := p.Acquire(context.Background())
	r2, _ := p.Acquire(context.Background())
	require.NoError(t, p.Release(r1))
	require.NoError(t, p.Release(r2))

	require.NoError(t, p.Close(context.Background()))
	require.NoError(t, p.Close(context.Background()))
	st := p.Stats()
	assert.Equal(t, 0, st.Active)
	assert.Equal(t, 0, st.Idle)
}

func TestClose_BusyWhenResourcesOutstanding(t *testing.T) {
	p := New(Config{MaxConnections: 2})
	_, err := p.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = p.Close(ctx)
	assert.ErrorIs(t, err, ErrPoolBusy)
	assert.Equal(t, 1, p.Stats().Active)
}

func TestWithResource_ReleasesOnError(t *testing.T) {
	p := New(Config{MaxConnections: 1})
	boom := errors.New("boom")

	err := WithResource(context.Background(), p, func(r *memory.Resource) error {
		assert.Equal(t, 1, p.Stats().InUse)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	st := p.Stats()
	assert.Equal(t, 0, st.InUse)
	assert.Equal(t, 1, st.Idle)
}

func TestConcurrentUseNeverExceedsMax(t *testing.T) {
	const maxConns = 4
	p := New(Config{MaxConnections: maxConns})

	var (
		mu      sync.Mutex
		current int
		peak    int
		wg      sync.WaitGroup
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				err := WithResource(context.Background(), p, func(*memory.Resource) error {
					mu.Lock()
					current++
					if current > peak {
						peak = current
					}
					mu.Unlock()
					time.Sleep(100 * time.Microsecond)
					mu.Lock()
					current--
					mu.Unlock()
					return nil
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak, maxConns)
	st := p.Stats()
	assert.LessOrEqual(t, st.Active, maxConns)
	assert.Equal(t, st.Active, st.Idle)
	assert.False(t, st.Broken)
}
