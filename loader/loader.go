package loader

import (
	"context"
	"fmt"
)

// Loader computes the value for a search key on a cache miss.
//
// Contract:
// - Concurrency: Load may be called concurrently for different keys, and for the
// same key when the cache runs without single-flight.
// - Context: Load should honor cancellation/deadlines where applicable.
// - Errors: a returned error reaches the caller unchanged and nothing is cached.
// - Identity: the loader value itself is part of the cache key. Pointer loaders
// are compared by reference; implement key.Hasher for value equality.
type Loader[K, V any] interface {
	Load(ctx context.Context, key K) (V, error)
}

// Named is implemented by loaders that report a stable name for telemetry.
type Named interface {
	Name() string
}

// NameOf returns the telemetry name of l: Name() when l implements Named,
// otherwise its dynamic type.
func NameOf(l any) string {
	if n, ok := l.(Named); ok {
		if name := n.Name(); name != "" {
			return name
		}
	}
	return fmt.Sprintf("%T", l)
}

// funcLoader adapts a function to Loader. It is always used through a pointer
// so every adapter has its own identity.
type funcLoader[K, V any] struct {
	name string
	fn   func(ctx context.Context, key K) (V, error)
}

// Func returns a Loader that calls fn.
// Each call to Func returns a distinct loader, even for the same fn.
func Func[K, V any](fn func(ctx context.Context, key K) (V, error)) Loader[K, V] {
	return &funcLoader[K, V]{fn: fn}
}

// NamedFunc is like Func but reports name through Named.
func NamedFunc[K, V any](name string, fn func(ctx context.Context, key K) (V, error)) Loader[K, V] {
	return &funcLoader[K, V]{name: name, fn: fn}
}

func (f *funcLoader[K, V]) Load(ctx context.Context, key K) (V, error) {
	return f.fn(ctx, key)
}

func (f *funcLoader[K, V]) Name() string {
	return f.name
}
