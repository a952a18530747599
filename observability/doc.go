// Package observability wires OpenTelemetry tracing and metrics into the SDK.
//
// The request and batch executors start spans through Tracer and record
// instruments through Metrics. Without any setup both use the global
// OpenTelemetry providers, which are no-ops until an application installs
// real ones. Binaries can install OTLP/HTTP exporters with InitTracer and
// InitMeter:
//
//	tp, err := observability.InitTracer(ctx, cfg)
//	defer tp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter())
//	exec := request.NewExecutor(tr, request.WithMetrics(metrics))
package observability
