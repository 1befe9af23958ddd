package memcache

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
)

// DefaultMaxEntries is used when the configured capacity is not positive.
const DefaultMaxEntries = 100

// entry is the value stored in the insertion-order list.
// The key is kept here because eviction starts from list nodes.
type entry struct {
	key        string
	value      []byte
	insertedAt time.Time
	expiresAt  time.Time // zero => never expires
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Store is a capacity-bounded, concurrency-safe cache with per-entry TTL.
//
// Eviction is FIFO: when full, the entry inserted earliest is dropped, regardless of
// how recently it was read. Reads never reorder entries. Expired entries are removed
// lazily when looked up.
type Store struct {
	mu sync.Mutex

	maxEntries int
	items      map[string]*list.Element
	order      *list.List // Front = oldest insertion

	hits      uint64
	misses    uint64
	evictions uint64

	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a store holding at most maxEntries entries.
func New(maxEntries int, opts ...Option) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	s := &Store{
		maxEntries: maxEntries,
		items:      make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implements Cache.Get.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		s.misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if e.expired(s.now()) {
		s.removeLocked(el)
		s.misses++
		return nil, false
	}
	s.hits++
	return cloneBytes(e.value), true
}

// Set implements Cache.Set. Overwriting a key counts as a fresh insertion: its TTL
// restarts and it moves to the back of the eviction order. Overwrites never evict.
func (s *Store) Set(key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}

	if el, ok := s.items[key]; ok {
		e := el.Value.(*entry)
		e.value = cloneBytes(value)
		e.insertedAt = now
		e.expiresAt = expiresAt
		s.order.MoveToBack(el)
		return
	}

	if len(s.items) >= s.maxEntries {
		if oldest := s.order.Front(); oldest != nil {
			s.removeLocked(oldest)
			s.evictions++
		}
	}

	s.items[key] = s.order.PushBack(&entry{
		key:        key,
		value:      cloneBytes(value),
		insertedAt: now,
		expiresAt:  expiresAt,
	})
}

// Delete implements Cache.Delete. Counters are not affected.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		return false
	}
	s.removeLocked(el)
	return true
}

// DeletePrefix implements Cache.DeletePrefix.
func (s *Store) DeletePrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		if strings.HasPrefix(el.Value.(*entry).key, prefix) {
			s.removeLocked(el)
			removed++
		}
		el = next
	}
	return removed
}

// Clear implements Cache.Clear.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*list.Element, s.maxEntries)
	s.order.Init()
	s.hits = 0
	s.misses = 0
	s.evictions = 0
}

// Stats implements Cache.Stats.
func (s *Store) Stats() memory.CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return memory.CacheStats{
		Size:      len(s.items),
		MaxSize:   s.maxEntries,
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		HitRate:   memory.HitRate(s.hits, s.misses),
	}
}

// Len returns the number of stored entries, including expired ones not yet looked up.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Keys returns keys in eviction order, oldest first.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, s.order.Len())
	for el := s.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry).key)
	}
	return out
}

func (s *Store) removeLocked(el *list.Element) {
	delete(s.items, el.Value.(*entry).key)
	s.order.Remove(el)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
