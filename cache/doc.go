// Package cache provides an unbounded, thread-safe memoizing cache.
//
// Values are keyed by the pair (loader, search key). On a miss the cache asks
// the loader for the value and keeps it until Remove or Clear; there is no
// eviction, capacity bound or expiry. Callers that need a bound compose one
// outside the cache.
//
// # Locking
//
// By default Get uses double-checked locking on one cache-wide mutex:
//
//  1. A lock-free lookup serves hits without blocking.
//  2. On a miss the mutex is taken and the lookup is repeated.
//  3. If the entry is still absent the loader runs while the mutex is held,
//     and its value is stored before the mutex is released.
//
// A slow loader therefore delays every other miss on the same cache, while
// hits keep flowing. A loader may call back into the same cache with the
// context it was given; the nested call reuses the held mutex.
//
// WithSingleFlight switches to per-key deduplication instead: loads for
// different keys run in parallel and concurrent misses on one key share a
// single loader call.
//
// # Errors
//
// Get reports ErrNilLoader when no loader is given. A loader error is returned
// unchanged and nothing is stored, so the next Get loads again. Remove and
// Clear never fail.
//
// # Usage
//
//	c := cache.New(cache.WithName("users"))
//	byID := loader.NamedFunc("byID", fetchUser)
//
//	u, err := cache.Get(ctx, c, byID, 42)  // loads
//	u, err = cache.Get(ctx, c, byID, 42)   // cached
//	cache.Remove(ctx, c, byID, 42)         // next Get loads again
package cache
