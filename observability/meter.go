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

	"github.com/kbukum/restmapper/logger"
)

// OutcomeOK is the outcome label of a successful operation.
const OutcomeOK = "ok"

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
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

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.MetricInterval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	if name == "" {
		name = DefaultTracerName
	}
	return otel.Meter(name)
}

// Metrics holds the client instruments. A nil *Metrics records nothing.
type Metrics struct {
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	operationActive   metric.Int64UpDownCounter
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	operationTotal, err := meter.Int64Counter("restmapper.operation.total",
		metric.WithDescription("Mapping operations by kind, type name and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating restmapper.operation.total counter: %w", err)
	}

	operationDuration, err := meter.Float64Histogram("restmapper.operation.duration",
		metric.WithDescription("Duration of mapping operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating restmapper.operation.duration histogram: %w", err)
	}

	operationActive, err := meter.Int64UpDownCounter("restmapper.operation.active",
		metric.WithDescription("Mapping operations in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating restmapper.operation.active gauge: %w", err)
	}

	errorTotal, err := meter.Int64Counter("restmapper.error.total",
		metric.WithDescription("Failed mapping operations by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating restmapper.error.total counter: %w", err)
	}

	return &Metrics{
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
		operationActive:   operationActive,
		errorTotal:        errorTotal,
	}, nil
}

// RecordStart increments the in-flight count for kind.
func (m *Metrics) RecordStart(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.operationActive.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordEnd decrements the in-flight count and records the finished operation.
// outcome is OutcomeOK or an error code.
func (m *Metrics) RecordEnd(ctx context.Context, kind, typeName, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.operationActive.Add(ctx, -1, metric.WithAttributes(attribute.String("kind", kind)))
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("type_name", typeName),
		attribute.String("outcome", outcome),
	))
	m.operationDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
	if outcome != OutcomeOK {
		m.errorTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", kind),
			attribute.String("code", outcome),
		))
	}
}
