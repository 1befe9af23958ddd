package memcache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestSetThenGetReturnsValue(t *testing.T) {
	s := New(10)
	s.Set("k", []byte("v"), time.Minute)

	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestGet_MissingKeyCountsMiss(t *testing.T) {
	s := New(10)
	_, ok := s.Get("nope")
	require.False(t, ok)

	st := s.Stats()
	assert.Equal(t, uint64(0), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
}

func TestTTL_LazyExpirationOnGet(t *testing.T) {
	clock := newFakeClock()
	s := New(10, WithClock(clock.Now))
	s.Set("k", []byte("v"), 30*time.Millisecond)
	s.Set("other", []byte("x"), 0)

	_, ok := s.Get("k")
	require.True(t, ok)

	clock.Advance(31 * time.Millisecond)

	_, ok = s.Get("k")
	require.False(t, ok, "expected k to be expired")
	assert.Equal(t, 1, s.Len(), "expired entry should be removed on read")

	// idempotent on repeated reads
	_, ok = s.Get("k")
	require.False(t, ok)
	assert.Equal(t, 1, s.Len())

	st := s.Stats()
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, uint64(2), st.Misses)
}

func TestTTL_ZeroNeverExpires(t *testing.T) {
	clock := newFakeClock()
	s := New(10, WithClock(clock.Now))
	s.Set("k", []byte("v"), 0)
	clock.Advance(365 * 24 * time.Hour)

	_, ok := s.Get("k")
	assert.True(t, ok)
}

func TestFIFOEviction(t *testing.T) {
	s := New(2)
	s.Set("a", []byte("1"), 0)
	s.Set("b", []byte("2"), 0)
	s.Set("c", []byte("3"), 0)

	_, ok := s.Get("a")
	assert.False(t, ok, "oldest-inserted entry should be evicted")
	v, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, []byte("2"), v)
	v, ok = s.Get("c")
	require.True(t, ok)
	assert.Equal(t, []byte("3"), v)
	assert.Equal(t, uint64(1), s.Stats().Evictions)
}

func TestFIFOEviction_ReadsDoNotReorder(t *testing.T) {
	s := New(2)
	s.Set("a", []byte("1"), 0)
	s.Set("b", []byte("2"), 0)

	// Reading a would save it under LRU; FIFO ignores reads.
	_, ok := s.Get("a")
	require.True(t, ok)

	s.Set("c", []byte("3"), 0)
	_, ok = s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"b", "c"}, s.Keys())
}

func TestOverwrite_DoesNotEvictAndMovesToBack(t *testing.T) {
	clock := newFakeClock()
	s := New(2, WithClock(clock.Now))
	s.Set("a", []byte("1"), time.Second)
	s.Set("b", []byte("2"), 0)

	clock.Advance(900 * time.Millisecond)
	s.Set("a", []byte("1b"), time.Second)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"b", "a"}, s.Keys())

	// re-set restarted the TTL
	clock.Advance(900 * time.Millisecond)
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("1b"), v)

	s.Set("c", []byte("3"), 0)
	_, ok = s.Get("b")
	assert.False(t, ok, "b is now the oldest insertion")
	assert.Equal(t, uint64(1), s.Stats().Evictions)
}

func TestSizeNeverExceedsCapacity(t *testing.T) {
	s := New(5)
	for i := 0; i < 50; i++ {
		s.Set(fmt.Sprintf("k%d", i), []byte("v"), 0)
		require.LessOrEqual(t, s.Len(), 5)
	}
	assert.Equal(t, []string{"k45", "k46", "k47", "k48", "k49"}, s.Keys())
}

func TestDelete(t *testing.T) {
	s := New(10)
	s.Set("k", []byte("v"), 0)

	assert.True(t, s.Delete("k"))
	assert.False(t, s.Delete("k"))

	st := s.Stats()
	assert.Equal(t, 0, st.Size)
	assert.Equal(t, uint64(0), st.Hits)
	assert.Equal(t, uint64(0), st.Misses)
}

func TestDeletePrefix(t *testing.T) {
	s := New(10)
	s.Set("reminders:u1:1:20", []byte("a"), 0)
	s.Set("reminders:u1:2:20", []byte("b"), 0)
	s.Set("reminders:u2:1:20", []byte("c"), 0)
	s.Set("reminder:u1:7", []byte("d"), 0)

	assert.Equal(t, 2, s.DeletePrefix("reminders:u1:"))
	assert.Equal(t, []string{"reminders:u2:1:20", "reminder:u1:7"}, s.Keys())
}

func TestClearResetsEverything(t *testing.T) {
	s := New(2)
	s.Set("a", []byte("1"), 0)
	s.Set("b", []byte("2"), 0)
	s.Set("c", []byte("3"), 0)
	s.Get("b")
	s.Get("zzz")

	s.Clear()

	st := s.Stats()
	assert.Equal(t, 0, st.Size)
	assert.Equal(t, uint64(0), st.Hits)
	assert.Equal(t, uint64(0), st.Misses)
	assert.Equal(t, uint64(0), st.Evictions)
	assert.Equal(t, 0.0, st.HitRate)
	assert.Empty(t, s.Keys())
}

func TestStats_HitRate(t *testing.T) {
	s := New(10)
	assert.Equal(t, 0.0, s.Stats().HitRate, "no lookups yields exactly zero")

	s.Set("k", []byte("v"), 0)
	for i := 0; i < 3; i++ {
		s.Get("k")
	}
	s.Get("missing")

	st := s.Stats()
	assert.Equal(t, uint64(3), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
	assert.Equal(t, 0.75, st.HitRate)
	assert.Equal(t, 10, st.MaxSize)
}

func TestValuesAreCopied(t *testing.T) {
	s := New(10)
	in := []byte("abc")
	s.Set("k", in, 0)
	in[0] = 'z'

	out, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), out)

	out[1] = 'z'
	again, _ := s.Get("k")
	assert.Equal(t, []byte("abc"), again)
}

func TestNew_NonPositiveCapacityUsesDefault(t *testing.T) {
	assert.Equal(t, DefaultMaxEntries, New(0).Stats().MaxSize)
}

func TestConcurrentAccess(t *testing.T) {
	s := New(64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("k%d", (g*31+i)%128)
				s.Set(key, []byte("v"), time.Minute)
				s.Get(key)
				if i%50 == 0 {
					s.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()

	st := s.Stats()
	assert.LessOrEqual(t, st.Size, 64)
	assert.Equal(t, uint64(8*500), st.Hits+st.Misses)
}
