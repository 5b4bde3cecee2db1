package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records cache activity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly and never block the cache.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordHit records a lookup served from the cache.
	RecordHit(ctx context.Context, meta LoadMeta)

	// RecordMiss records a lookup that found no entry before locking.
	RecordMiss(ctx context.Context, meta LoadMeta)

	// RecordLoad records one loader invocation with its duration and error.
	RecordLoad(ctx context.Context, meta LoadMeta, duration time.Duration, err error)

	// RecordRemove records an entry removed by Remove.
	RecordRemove(ctx context.Context, meta LoadMeta)

	// RecordClear records a Clear of the named cache.
	RecordClear(ctx context.Context, cache string)
}

type otelMetrics struct {
	hits         metric.Int64Counter
	misses       metric.Int64Counter
	loads        metric.Int64Counter
	loadErrors   metric.Int64Counter
	loadDuration metric.Float64Histogram
	removals     metric.Int64Counter
	clears       metric.Int64Counter
}

// NewMetrics creates Metrics backed by meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}

	m := &otelMetrics{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&m.hits, "cache.hits", "Lookups served from the cache", "{lookup}"},
		{&m.misses, "cache.misses", "Lookups that missed the lock-free read", "{lookup}"},
		{&m.loads, "cache.loads", "Loader invocations", "{call}"},
		{&m.loadErrors, "cache.load.errors", "Loader invocations that failed", "{error}"},
		{&m.removals, "cache.removals", "Entries removed", "{entry}"},
		{&m.clears, "cache.clears", "Cache clears", "{call}"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name,
			metric.WithDescription(c.desc),
			metric.WithUnit(c.unit),
		)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	hist, err := meter.Float64Histogram(
		"cache.load.duration_ms",
		metric.WithDescription("Loader invocation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	m.loadDuration = hist

	return m, nil
}

func (m *otelMetrics) RecordHit(ctx context.Context, meta LoadMeta) {
	m.hits.Add(ctx, 1, metaAttrs(meta))
}

func (m *otelMetrics) RecordMiss(ctx context.Context, meta LoadMeta) {
	m.misses.Add(ctx, 1, metaAttrs(meta))
}

func (m *otelMetrics) RecordLoad(ctx context.Context, meta LoadMeta, duration time.Duration, err error) {
	opt := metaAttrs(meta)
	m.loads.Add(ctx, 1, opt)
	if err != nil {
		m.loadErrors.Add(ctx, 1, opt)
	}
	m.loadDuration.Record(ctx, float64(duration)/float64(time.Millisecond), opt)
}

func (m *otelMetrics) RecordRemove(ctx context.Context, meta LoadMeta) {
	m.removals.Add(ctx, 1, metaAttrs(meta))
}

func (m *otelMetrics) RecordClear(ctx context.Context, cache string) {
	m.clears.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.name", cache)))
}

func metaAttrs(meta LoadMeta) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("cache.name", meta.Cache),
		attribute.String("loader.name", meta.Loader),
	)
}

type nopMetrics struct{}

// NopMetrics returns Metrics that record nothing.
func NopMetrics() Metrics {
	return nopMetrics{}
}

func (nopMetrics) RecordHit(context.Context, LoadMeta)                         {}
func (nopMetrics) RecordMiss(context.Context, LoadMeta)                        {}
func (nopMetrics) RecordLoad(context.Context, LoadMeta, time.Duration, error) {}
func (nopMetrics) RecordRemove(context.Context, LoadMeta)                      {}
func (nopMetrics) RecordClear(context.Context, string)                         {}
