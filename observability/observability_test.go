package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/marketedge/bootkit/bootstrap"
	"github.com/marketedge/bootkit/logger"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestInstrument(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	orch := bootstrap.New(bootstrap.WithLogger(logger.Nop()))
	orch.Register("db", func(ctx context.Context) error { return nil })

	if err := Instrument(meter, orch); err != nil {
		t.Fatalf("Instrument failed: %v", err)
	}
}

func TestNewTransitionCounter(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	hook, err := NewTransitionCounter(meter)
	if err != nil {
		t.Fatalf("NewTransitionCounter failed: %v", err)
	}

	orch := bootstrap.New(
		bootstrap.WithLogger(logger.Nop()),
		bootstrap.WithStateChangeHook(hook),
	)
	orch.Register("db", func(ctx context.Context) error { return nil })
	if !orch.Ensure(context.Background(), "db") {
		t.Fatal("expected Ensure to succeed")
	}
}

func TestTraceInitializer(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := tp.Tracer("test")

	init := TraceInitializer(tracer, "db", func(ctx context.Context) error { return nil })
	if err := init(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "bootstrap.initialize" {
		t.Errorf("expected span name 'bootstrap.initialize', got %q", spans[0].Name)
	}
}

func TestTraceInitializerRecordsError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := tp.Tracer("test")

	wantErr := errors.New("connect failed")
	init := TraceInitializer(tracer, "db", func(ctx context.Context) error { return wantErr })
	if err := init(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected original error, got %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected error event recorded on span")
	}
}

func TestTraceHealthCheck(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := tp.Tracer("test")

	check := TraceHealthCheck(tracer, "db", func(ctx context.Context) error { return nil })
	if err := check(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exporter.GetSpans()) != 1 {
		t.Error("expected health check span")
	}
}
