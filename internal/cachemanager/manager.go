// Package cachemanager provides generic TTL caching. The format resolver
// uses it to memoize parsed inline style declarations, which repeat
// heavily across a document's spans.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the storage contract a read-through wrapper composes
// over. Lookups report presence, never errors; a cache miss is not a
// failure.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetMultiple(ctx context.Context, keys []K) (map[K]V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
