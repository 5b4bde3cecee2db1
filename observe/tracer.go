package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Tracer wraps loader invocations in spans.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndLoad must be best-effort and must not panic.
type Tracer interface {
	// StartLoad starts a span for one loader invocation.
	StartLoad(ctx context.Context, meta LoadMeta) (context.Context, trace.Span)

	// EndLoad ends the span, recording err if non-nil.
	EndLoad(span trace.Span, err error)
}

type otelTracer struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer on top of an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	if t == nil {
		return NopTracer()
	}
	return &otelTracer{tracer: t}
}

func (t *otelTracer) StartLoad(ctx context.Context, meta LoadMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("loader.name", meta.Loader),
		attribute.Bool("cache.load.error", false),
	}
	if meta.Cache != "" {
		attrs = append(attrs, attribute.String("cache.name", meta.Cache))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *otelTracer) EndLoad(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("cache.load.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type nopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a Tracer whose spans are not recorded.
func NopTracer() Tracer {
	return &nopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *nopTracer) StartLoad(ctx context.Context, meta LoadMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *nopTracer) EndLoad(span trace.Span, _ error) {
	span.End()
}
