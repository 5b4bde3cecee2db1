package cache

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/memocache/key"
	"github.com/jonwraymond/memocache/loader"
	"github.com/jonwraymond/memocache/observe"
)

// Cache memoizes loader results per (loader, key) pair.
// A Cache must be created with New; the zero value is not ready for use.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Lifetime: entries stay until Remove or Clear.
// - Errors: loader errors are returned unchanged and never cached.
type Cache struct {
	mu      sync.Mutex
	owner   atomic.Pointer[owner]
	entries store

	name         string
	singleFlight bool
	flights      singleflight.Group

	instrumented bool
	metrics      observe.Metrics
	tracer       observe.Tracer
	logger       observe.Logger
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		metrics: observe.NopMetrics(),
		tracer:  observe.NopTracer(),
		logger:  observe.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.name != "" {
		c.logger = c.logger.With(observe.F("cache.name", c.name))
	}
	return c
}

// Name returns the name set by WithName.
func (c *Cache) Name() string {
	return c.name
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	return c.entries.len()
}

// Clear removes every entry. It waits for a load in progress under the
// cache-wide mutex to finish.
func (c *Cache) Clear(ctx context.Context) {
	_, unlock := c.lock(ctx)
	n := c.entries.len()
	c.entries.clear()
	unlock()

	c.metrics.RecordClear(ctx, c.name)
	c.logger.Debug(ctx, "cache cleared", observe.F("entries", n))
}

// Get returns the value cached for (l, k), loading it with l on a miss.
//
// It returns ErrNilLoader if l is nil. An error from l is returned unchanged
// and leaves the cache untouched.
//
// A loader may call Get on the same cache recursively, but only with the
// context it was given and only until its Load returns; a fresh context, or
// the loader's context used after the load finished, blocks on the cache-wide
// mutex. Goroutines the loader starts with its context share the lock while
// the load is running, so they must not run concurrently with each other.
func Get[K, V any](ctx context.Context, c *Cache, l loader.Loader[K, V], k K) (V, error) {
	var zero V
	if c == nil {
		return zero, ErrNilCache
	}
	if isNil(l) {
		return zero, ErrNilLoader
	}

	ck := key.New(l, k)
	meta := c.meta(l)

	if v, ok := c.entries.load(ck); ok {
		c.metrics.RecordHit(ctx, meta)
		return as[V](v)
	}
	c.metrics.RecordMiss(ctx, meta)

	load := func(ctx context.Context) (any, error) {
		return l.Load(ctx, k)
	}

	var v any
	var err error
	if c.singleFlight {
		v, err = c.loadShared(ctx, ck, meta, load)
	} else {
		v, err = c.loadLocked(ctx, ck, meta, load)
	}
	if err != nil {
		return zero, err
	}
	return as[V](v)
}

// Remove deletes the value cached for (l, k). It is a no-op when l is nil or
// nothing is cached.
func Remove[K, V any](ctx context.Context, c *Cache, l loader.Loader[K, V], k K) {
	if c == nil || isNil(l) {
		return
	}

	ck := key.New(l, k)
	if _, ok := c.entries.load(ck); !ok {
		return
	}

	_, unlock := c.lock(ctx)
	removed := c.entries.delete(ck)
	unlock()

	if removed {
		c.metrics.RecordRemove(ctx, c.meta(l))
	}
}

// owner identifies one acquisition of the cache-wide mutex. It is not
// zero-sized so that every acquisition gets a distinct pointer.
type owner struct {
	_ byte
}

type ownerKey struct {
	c *Cache
}

// lock acquires the cache-wide mutex unless ctx carries the token of the
// acquisition currently holding it, and returns the context to pass to nested
// calls. The token is revoked before the mutex is released.
func (c *Cache) lock(ctx context.Context) (context.Context, func()) {
	if o, ok := ctx.Value(ownerKey{c}).(*owner); ok && o == c.owner.Load() {
		return ctx, func() {}
	}
	c.mu.Lock()
	o := &owner{}
	c.owner.Store(o)
	return context.WithValue(ctx, ownerKey{c}, o), func() {
		c.owner.Store(nil)
		c.mu.Unlock()
	}
}

func (c *Cache) loadLocked(ctx context.Context, ck key.Composite, meta observe.LoadMeta, load func(context.Context) (any, error)) (any, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	// A concurrent caller may have stored the value while we waited.
	if v, ok := c.entries.load(ck); ok {
		return v, nil
	}

	v, err := c.invoke(ctx, meta, load)
	if err != nil {
		return nil, err
	}
	c.entries.put(ck, v)
	return v, nil
}

// flight is the shared result of a single-flight load. The composite is kept
// because flights are grouped by hash, and colliding keys must not share a
// value.
type flight struct {
	key   key.Composite
	value any
	err   error
}

// loadShared joins or starts the flight for ck. The load runs detached from
// the starting caller's cancellation, and each caller stops waiting when its
// own ctx is done.
func (c *Cache) loadShared(ctx context.Context, ck key.Composite, meta observe.LoadMeta, load func(context.Context) (any, error)) (any, error) {
	loadCtx := context.WithoutCancel(ctx)
	ch := c.flights.DoChan(strconv.FormatUint(ck.Hash(), 16), func() (any, error) {
		if v, ok := c.entries.load(ck); ok {
			return flight{key: ck, value: v}, nil
		}
		v, err := c.loadUnlocked(loadCtx, ck, meta, load)
		return flight{key: ck, value: v, err: err}, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	f := res.Val.(flight)
	if !f.key.Equal(ck) {
		// Hash collision with another key's flight: load our own value.
		return c.loadUnlocked(ctx, ck, meta, load)
	}
	return f.value, f.err
}

// loadUnlocked runs the loader without the cache-wide mutex and only takes it
// to store the result.
func (c *Cache) loadUnlocked(ctx context.Context, ck key.Composite, meta observe.LoadMeta, load func(context.Context) (any, error)) (any, error) {
	v, err := c.invoke(ctx, meta, load)
	if err != nil {
		return nil, err
	}

	_, unlock := c.lock(ctx)
	c.entries.put(ck, v)
	unlock()
	return v, nil
}

// errLoadPanicked is recorded on the span and metrics of a load that panicked.
// The panic itself continues to the caller.
var errLoadPanicked = errors.New("cache: loader panicked")

func (c *Cache) invoke(ctx context.Context, meta observe.LoadMeta, load func(context.Context) (any, error)) (v any, err error) {
	ctx, span := c.tracer.StartLoad(ctx, meta)
	start := time.Now()
	panicked := true

	defer func() {
		if panicked {
			err = errLoadPanicked
		}
		duration := time.Since(start)
		c.tracer.EndLoad(span, err)
		c.metrics.RecordLoad(ctx, meta, duration, err)

		if c.instrumented {
			fields := append(meta.Fields(), observe.F("duration_ms", float64(duration)/float64(time.Millisecond)))
			if err != nil {
				c.logger.Warn(ctx, "load failed", append(fields, observe.F("error", err))...)
			} else {
				c.logger.Debug(ctx, "load completed", fields...)
			}
		}
	}()

	v, err = load(ctx)
	panicked = false
	return v, err
}

func (c *Cache) meta(l any) observe.LoadMeta {
	if !c.instrumented {
		return observe.LoadMeta{}
	}
	return observe.LoadMeta{Cache: c.name, Loader: loader.NameOf(l)}
}

func as[V any](v any) (V, error) {
	var zero V
	if v == nil {
		return zero, nil
	}
	t, ok := v.(V)
	if !ok {
		return zero, fmt.Errorf("%w: stored %T, want %s", ErrTypeMismatch, v, reflect.TypeFor[V]())
	}
	return t, nil
}

// isNil reports whether l is nil or a typed nil pointer, map, func or chan.
func isNil(l any) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
