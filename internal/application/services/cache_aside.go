package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/study-assistant-api/internal/core/ports"
)

func cacheSetSilently(c ports.Cache, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(key, b, ttl)
}

func cacheGet[T any](c ports.Cache, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		// unreadable entries are dropped so the next read reloads
		c.Delete(key)
		return nil, false
	}
	return &v, true
}

type cachedResult[T any] struct {
	value  T
	cached bool
}

// storeGate runs write only while a loaded value is still current. A nil gate always writes.
type storeGate func(write func())

// fetchCached is cache-aside with miss coalescing: concurrent misses for the same key
// share one load. cached reports whether the value came from the cache.
func fetchCached[T any](ctx context.Context, c ports.Cache, sf *singleflight.Group, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, bool, error) {
	return fetchCachedGated(ctx, c, sf, key, key, ttl, nil, load)
}

// fetchCachedGated is fetchCached with a separate coalescing key and a gate on the
// cache write. The load runs detached from ctx so one caller going away does not fail
// the others; each caller still stops waiting when its own ctx is done.
func fetchCachedGated[T any](ctx context.Context, c ports.Cache, sf *singleflight.Group, key, flightKey string, ttl time.Duration, gate storeGate, load func(ctx context.Context) (T, error)) (T, bool, error) {
	var zero T
	if v, ok := cacheGet[T](c, key); ok {
		return *v, true, nil
	}

	ch := sf.DoChan(flightKey, func() (any, error) {
		if v, ok := cacheGet[T](c, key); ok {
			return cachedResult[T]{value: *v, cached: true}, nil
		}
		// no deadline here: the pool's own acquire timeout still bounds the load
		v, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if gate == nil {
			cacheSetSilently(c, key, v, ttl)
		} else {
			gate(func() { cacheSetSilently(c, key, v, ttl) })
		}
		return cachedResult[T]{value: v}, nil
	})

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, false, res.Err
		}
		r, ok := res.Val.(cachedResult[T])
		if !ok {
			return zero, false, fmt.Errorf("unexpected type from singleflight result")
		}
		return r.value, r.cached, nil
	}
}
