package cache

import "github.com/jonwraymond/memocache/observe"

// Option configures a Cache.
type Option func(*Cache)

// WithName sets the cache name reported in metrics, spans and logs.
func WithName(name string) Option {
	return func(c *Cache) {
		c.name = name
	}
}

// WithSingleFlight makes concurrent misses on the same key share one loader
// call, and lets loads for different keys run without the cache-wide mutex.
func WithSingleFlight() Option {
	return func(c *Cache) {
		c.singleFlight = true
	}
}

// WithObserver takes metrics, tracer and logger from obs.
func WithObserver(obs observe.Observer) Option {
	return func(c *Cache) {
		if obs == nil {
			return
		}
		c.metrics = obs.Metrics()
		c.tracer = obs.Tracer()
		c.logger = obs.Logger()
		c.instrumented = true
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m observe.Metrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
			c.instrumented = true
		}
	}
}

// WithTracer sets the tracer used around loader calls.
func WithTracer(t observe.Tracer) Option {
	return func(c *Cache) {
		if t != nil {
			c.tracer = t
			c.instrumented = true
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l observe.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
			c.instrumented = true
		}
	}
}
