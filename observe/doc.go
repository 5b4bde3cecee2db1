// Package observe provides cache telemetry: OpenTelemetry metrics for hits,
// misses and loads, a span around every loader call, and a structured JSON
// logger.
//
// It is a pure instrumentation library. The cache package accepts an Observer
// (or the individual Metrics, Tracer and Logger) through its options and
// defaults to no-op implementations.
package observe
