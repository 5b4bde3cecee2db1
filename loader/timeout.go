package loader

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout is used by WithTimeout when d is not positive.
const DefaultTimeout = 30 * time.Second

type timeoutLoader[K, V any] struct {
	next    Loader[K, V]
	timeout time.Duration
}

type result[V any] struct {
	value V
	err   error
}

// WithTimeout returns a Loader that fails with ErrTimeout when next does not
// finish within d. The context handed to next is canceled at the deadline.
func WithTimeout[K, V any](next Loader[K, V], d time.Duration) Loader[K, V] {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &timeoutLoader[K, V]{next: next, timeout: d}
}

func (t *timeoutLoader[K, V]) Load(ctx context.Context, key K) (V, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan result[V], 1)
	go func() {
		v, err := t.next.Load(ctx, key)
		done <- result[V]{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero V
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimeout
		}
		return zero, ctx.Err()
	}
}

func (t *timeoutLoader[K, V]) Name() string {
	return NameOf(t.next)
}
