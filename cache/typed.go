package cache

import (
	"context"

	"github.com/jonwraymond/memocache/loader"
)

// Typed is a view of a Cache fixed to one key and value type, for callers
// that prefer methods over the package-level generic functions.
type Typed[K, V any] struct {
	c *Cache
}

// For returns a typed view of c.
func For[K, V any](c *Cache) Typed[K, V] {
	return Typed[K, V]{c: c}
}

// Cache returns the underlying cache.
func (t Typed[K, V]) Cache() *Cache {
	return t.c
}

// Get is Get(ctx, t.Cache(), l, k).
func (t Typed[K, V]) Get(ctx context.Context, l loader.Loader[K, V], k K) (V, error) {
	return Get(ctx, t.c, l, k)
}

// Remove is Remove(ctx, t.Cache(), l, k).
func (t Typed[K, V]) Remove(ctx context.Context, l loader.Loader[K, V], k K) {
	Remove(ctx, t.c, l, k)
}

// Memoize returns a function that serves l through c.
// Calls to the returned function share entries with Get(ctx, c, l, k).
func Memoize[K, V any](c *Cache, l loader.Loader[K, V]) func(ctx context.Context, k K) (V, error) {
	return func(ctx context.Context, k K) (V, error) {
		return Get(ctx, c, l, k)
	}
}
