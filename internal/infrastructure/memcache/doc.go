// Package memcache implements the process-local response cache.
//
// A map gives O(1) key lookup and a doubly-linked list keeps insertion order,
// which is also the eviction order. A single mutex makes every operation atomic.
// Entries expire lazily: nothing sweeps in the background, an expired entry is
// dropped the next time it is read.
package memcache
