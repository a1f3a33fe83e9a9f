// Package observability exports bootkit orchestration state through
// OpenTelemetry metrics and tracing.
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//	err = observability.Instrument(observability.Meter("my-service"), orch)
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//	orch.Register("db", observability.TraceInitializer(tracer, "db", connectDB))
package observability
