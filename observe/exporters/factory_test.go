package exporters

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewTracingExporter(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"stdout", false},
		{"none", false},
		{"", false},
		{"zipkin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := NewTracingExporter(context.Background(), tt.name, WithStdout(&bytes.Buffer{}))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTracingExporter(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err == nil {
				_ = exp.Shutdown(context.Background())
			}
		})
	}
}

func TestNewTracingExporter_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	if _, err := NewTracingExporter(context.Background(), "otlp"); err == nil {
		t.Error("expected error without an OTLP endpoint")
	}
}

func TestNewMetricsReader(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"stdout", false},
		{"none", false},
		{"", false},
		{"statsd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewMetricsReader(context.Background(), tt.name, WithStdout(&bytes.Buffer{}))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewMetricsReader(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err == nil {
				_ = reader.Shutdown(context.Background())
			}
		})
	}
}

func TestNewMetricsReader_PrometheusRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	reader, err := NewMetricsReader(context.Background(), "prometheus", WithRegisterer(reg))
	if err != nil {
		t.Fatalf("NewMetricsReader failed: %v", err)
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	counter, err := mp.Meter("test").Int64Counter("cache.hits")
	if err != nil {
		t.Fatalf("failed to create counter: %v", err)
	}
	counter.Add(context.Background(), 3)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	found := false
	for _, f := range families {
		if strings.Contains(f.GetName(), "hits") {
			found = true
		}
	}
	if !found {
		t.Error("expected the hits counter in the custom registry")
	}
}

func TestNewMetricsReader_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")

	if _, err := NewMetricsReader(context.Background(), "otlp"); err == nil {
		t.Error("expected error without an OTLP metrics endpoint")
	}
}

func TestNewTracingExporter_JaegerRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_JAEGER_ENDPOINT", "")

	if _, err := NewTracingExporter(context.Background(), "jaeger"); err == nil {
		t.Error("expected error without a Jaeger endpoint")
	}
}

func TestNewTracingExporter_JaegerDialsConfiguredEndpoint(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	defer ln.Close()

	accepted := make(chan struct{})
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		close(accepted)
		_ = conn.Close()
	}()

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_JAEGER_ENDPOINT", "http://"+ln.Addr().String())

	exp, err := NewTracingExporter(context.Background(), "jaeger")
	if err != nil {
		t.Fatalf("NewTracingExporter(jaeger) failed: %v", err)
	}
	defer func() { _ = exp.Shutdown(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	spans := []sdktrace.ReadOnlySpan{tracetest.SpanStub{Name: "load"}.Snapshot()}
	_ = exp.ExportSpans(ctx, spans)

	select {
	case <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("exporter did not connect to OTEL_EXPORTER_JAEGER_ENDPOINT")
	}
}
