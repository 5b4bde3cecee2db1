package loader

import (
	"context"

	"golang.org/x/time/rate"
)

type rateLimitLoader[K, V any] struct {
	next Loader[K, V]
	lim  *rate.Limiter
}

// WithRateLimit returns a Loader that lets at most rps loads per second through
// next, with the given burst. Callers wait for a token; a canceled context
// aborts the wait with the limiter's error.
func WithRateLimit[K, V any](next Loader[K, V], rps float64, burst int) Loader[K, V] {
	return WithLimiter(next, rate.NewLimiter(rate.Limit(rps), burst))
}

// WithLimiter is like WithRateLimit but shares an existing limiter, so several
// loaders can draw from one budget.
func WithLimiter[K, V any](next Loader[K, V], lim *rate.Limiter) Loader[K, V] {
	return &rateLimitLoader[K, V]{next: next, lim: lim}
}

func (r *rateLimitLoader[K, V]) Load(ctx context.Context, key K) (V, error) {
	if err := r.lim.Wait(ctx); err != nil {
		var zero V
		return zero, err
	}
	return r.next.Load(ctx, key)
}

func (r *rateLimitLoader[K, V]) Name() string {
	return NameOf(r.next)
}
