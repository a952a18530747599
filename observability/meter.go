package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMeter installs a global meter provider exporting over OTLP/HTTP.
// The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.MetricInterval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns the SDK meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(InstrumentationName)
}

// Metrics holds the SDK's metric instruments. A nil *Metrics records nothing.
type Metrics struct {
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	batchTotal      metric.Int64Counter
	batchItems      metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requestTotal, err := meter.Int64Counter("twist.request.total",
		metric.WithDescription("Physical API calls by method, status and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating twist.request.total counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("twist.request.duration",
		metric.WithDescription("Duration of physical API calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating twist.request.duration histogram: %w", err)
	}

	batchTotal, err := meter.Int64Counter("twist.batch.total",
		metric.WithDescription("Executed batches by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating twist.batch.total counter: %w", err)
	}

	batchItems, err := meter.Int64Counter("twist.batch.items",
		metric.WithDescription("Logical calls carried by batches, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating twist.batch.items counter: %w", err)
	}

	return &Metrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		batchTotal:      batchTotal,
		batchItems:      batchItems,
	}, nil
}

// RecordRequest records one physical call. status is 0 when no exchange
// completed.
func (m *Metrics) RecordRequest(ctx context.Context, method string, status int, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("status", strconv.Itoa(status)),
		attribute.String("outcome", outcome),
	)
	m.requestTotal.Add(ctx, 1, attrs)
	m.requestDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
	))
}

// RecordBatch records one executed batch and the outcome of its items.
func (m *Metrics) RecordBatch(ctx context.Context, outcome string, succeeded, failed int) {
	if m == nil {
		return
	}
	m.batchTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	if succeeded > 0 {
		m.batchItems.Add(ctx, int64(succeeded), metric.WithAttributes(attribute.String("outcome", "ok")))
	}
	if failed > 0 {
		m.batchItems.Add(ctx, int64(failed), metric.WithAttributes(attribute.String("outcome", "error")))
	}
}
