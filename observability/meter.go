package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/marketedge/bootkit/bootstrap"
	"github.com/marketedge/bootkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Default().Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Instrument registers observable gauges that report orchestrator state:
// service counts by status and elapsed time since orchestrator creation.
// Observations are taken from Snapshot at collection time.
func Instrument(meter metric.Meter, orch *bootstrap.Orchestrator) error {
	servicesGauge, err := meter.Int64ObservableGauge("bootkit.services",
		metric.WithDescription("Registered services grouped by status"),
	)
	if err != nil {
		return fmt.Errorf("creating bootkit.services gauge: %w", err)
	}

	elapsedGauge, err := meter.Float64ObservableGauge("bootkit.startup.elapsed",
		metric.WithDescription("Elapsed time since orchestrator creation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("creating bootkit.startup.elapsed gauge: %w", err)
	}

	_, err = meter.RegisterCallback(func(ctx context.Context, obs metric.Observer) error {
		snap := orch.Snapshot()
		for status, count := range snap.StatusCounts {
			obs.ObserveInt64(servicesGauge, int64(count),
				metric.WithAttributes(attribute.String("status", string(status))))
		}
		obs.ObserveFloat64(elapsedGauge, float64(snap.ElapsedMS)/1000.0)
		return nil
	}, servicesGauge, elapsedGauge)
	if err != nil {
		return fmt.Errorf("registering snapshot callback: %w", err)
	}
	return nil
}

// NewTransitionCounter returns a bootstrap state-change hook that counts
// status transitions, labeled by service and edge. Pass the result to
// bootstrap.WithStateChangeHook.
func NewTransitionCounter(meter metric.Meter) (func(name string, from, to bootstrap.Status), error) {
	counter, err := meter.Int64Counter("bootkit.transitions",
		metric.WithDescription("Service status transitions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bootkit.transitions counter: %w", err)
	}

	return func(name string, from, to bootstrap.Status) {
		counter.Add(context.Background(), 1, metric.WithAttributes(
			attribute.String("service.name", name),
			attribute.String("from", string(from)),
			attribute.String("to", string(to)),
		))
	}, nil
}
