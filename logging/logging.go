package logging

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultService = "checkout-gateway"

var (
	// root has no service field; base is root with it attached. wrapped
	// skips one frame for the package-level helpers below.
	root    = zap.NewNop()
	base    = root.With(zap.String("service", defaultService))
	wrapped = base.WithOptions(zap.AddCallerSkip(1))

	serviceName    = defaultService
	loggerProvider *sdklog.LoggerProvider
)

// InitLogger builds the process logger. Entries are written as JSON (console
// in development) to stdout and, when an OTLP exporter can be created, teed
// into the OpenTelemetry log pipeline through the otelzap bridge.
func InitLogger(service, otlpEndpoint string, production bool) error {
	cfg := zap.NewDevelopmentConfig()
	if production {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.LevelKey = "level"

	stdout, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build zap logger: %w", err)
	}
	setRoot(stdout, service)

	otelCore, err := newOTLPCore(context.Background(), service, otlpEndpoint)
	if err != nil {
		Warn("OTLP log export disabled, logging to stdout only", zap.Error(err))
		return nil
	}

	setRoot(stdout.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	})), service)

	Info("OTLP logging configured", zap.String("endpoint", otlpEndpoint))
	return nil
}

// newOTLPCore installs a global LoggerProvider exporting over gRPC and
// returns a zap core that feeds it.
func newOTLPCore(ctx context.Context, service, endpoint string) (zapcore.Core, error) {
	exporter, err := otlploggrpc.New(ctx,
		otlploggrpc.WithEndpoint(endpoint),
		otlploggrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create log exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithAttributes(semconv.ServiceName(service)),
	)
	if err != nil {
		return nil, fmt.Errorf("create log resource: %w", err)
	}

	loggerProvider = sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(loggerProvider)

	return otelzap.NewCore(service, otelzap.WithLoggerProvider(loggerProvider)), nil
}

func setRoot(l *zap.Logger, service string) {
	serviceName = service
	root = l
	base = l.With(zap.String("service", service))
	wrapped = base.WithOptions(zap.AddCallerSkip(1))
}

// SetLogger replaces the process logger, mostly for tests.
func SetLogger(l *zap.Logger) {
	setRoot(l, serviceName)
}

// GetLogger returns the process logger without the service field.
func GetLogger() *zap.Logger {
	return root
}

// WithTraceContext returns the logger annotated with the span's trace and
// span ids when the span is valid.
func WithTraceContext(span trace.Span) *zap.Logger {
	sc := span.SpanContext()
	if !sc.IsValid() {
		return base
	}
	return base.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// FromContext is WithTraceContext for the span stored in ctx.
func FromContext(ctx context.Context) *zap.Logger {
	return WithTraceContext(trace.SpanFromContext(ctx))
}

func Info(msg string, fields ...zap.Field)  { wrapped.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { wrapped.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { wrapped.Error(msg, fields...) }

// Fatal logs and exits the process.
func Fatal(msg string, fields ...zap.Field) { wrapped.Fatal(msg, fields...) }

// Sync flushes buffered entries.
func Sync() error {
	return root.Sync()
}

// Shutdown flushes and stops the OTLP log pipeline, if one was started.
func Shutdown(ctx context.Context) error {
	if loggerProvider == nil {
		return nil
	}
	return loggerProvider.Shutdown(ctx)
}
