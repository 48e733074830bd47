package monitoring

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"checkout-gateway/logging"
)

var (
	// OpenTelemetry metrics
	CheckoutCounter      metric.Int64Counter
	CheckoutAmount       metric.Float64Histogram
	UpstreamCallDuration metric.Float64Histogram
	HTTPServerDuration   metric.Float64Histogram
)

func init() {
	// No-op instruments until InitMeter swaps in real ones.
	_ = registerInstruments(noop.NewMeterProvider().Meter("checkout-gateway"))
}

// InitTracer initializes OpenTelemetry tracing
func InitTracer(serviceName, endpoint string) (*sdktrace.TracerProvider, trace.Tracer, error) {
	ctx := context.Background()

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, nil, err
	}

	res, err := newResource(ctx, serviceName)
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	tracer := tp.Tracer(serviceName)

	logging.Info("Tracing initialized", zap.String("service_name", serviceName))

	return tp, tracer, nil
}

// InitMeter initializes OpenTelemetry metrics. Measurements are pushed over
// OTLP and also exposed for scraping through the returned registry.
func InitMeter(serviceName, endpoint string) (*sdkmetric.MeterProvider, *prometheus.Registry, error) {
	ctx := context.Background()

	res, err := newResource(ctx, serviceName)
	if err != nil {
		return nil, nil, err
	}

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promExporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithReader(promExporter),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	if err := registerInstruments(mp.Meter(serviceName)); err != nil {
		return nil, nil, err
	}

	if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		logging.Warn("Runtime metrics disabled", zap.Error(err))
	}

	logging.Info("Metrics initialized", zap.String("endpoint", endpoint))

	return mp, registry, nil
}

func newResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
}

func registerInstruments(meter metric.Meter) error {
	var err error

	CheckoutCounter, err = meter.Int64Counter(
		"checkout_requests_total",
		metric.WithDescription("Total number of checkout requests by provider and outcome"),
	)
	if err != nil {
		return err
	}

	CheckoutAmount, err = meter.Float64Histogram(
		"checkout_amount",
		metric.WithDescription("Checkout amounts accepted for dispatch"),
		metric.WithExplicitBucketBoundaries(1, 5, 25, 50, 100, 129, 199, 500, 1000),
	)
	if err != nil {
		return err
	}

	UpstreamCallDuration, err = meter.Float64Histogram(
		"upstream_call_duration_seconds",
		metric.WithDescription("Duration of calls to payment providers and the order backend"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	HTTPServerDuration, err = meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP server request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	return err
}
