// Package loader defines the collaborator contract used by the cache package to
// compute values on a miss, plus decorators that add resilience to a loader.
//
// The cache never retries, times out, throttles or short-circuits a load on its own; those
// concerns belong to the loader and are composed here:
//
//	l := loader.Func(fetchUser)
//	l = loader.WithTimeout(l, 2*time.Second)
//	l = loader.WithRetry(l, loader.RetryConfig{MaxAttempts: 3})
//	l = loader.WithRateLimit(l, 50, 5)
//	l = loader.WithBreaker(l, loader.NewBreaker(loader.BreakerConfig{}))
//
// Each constructor returns a new pointer, and the cache keys entries by loader
// identity, so wrap a loader once and reuse the result.
package loader
