package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"checkout-gateway/logging"
	"checkout-gateway/monitoring"
)

const maxResponseBody = 1 << 20

// NewHTTPClient returns the instrumented client shared by all upstreams.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	}
}

// NewRequestID returns a fresh "{unix_ms}-{random}" token for PayPal's
// PayPal-Request-Id header. Every call yields a different value.
func NewRequestID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), random[:9])
}

// upstream performs single, unretried JSON calls to one remote service and
// records a span and a duration measurement for each.
type upstream struct {
	name   string
	client *http.Client
	tracer trace.Tracer
}

func newUpstream(name string, client *http.Client, tracer trace.Tracer) upstream {
	if client == nil {
		client = NewHTTPClient(0)
	}
	if tracer == nil {
		tracer = otel.Tracer("checkout-gateway")
	}
	return upstream{name: name, client: client, tracer: tracer}
}

// response is a fully read upstream reply.
type response struct {
	StatusCode int
	Body       []byte
}

func (r *response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// newJSONRequest encodes body (when non-nil) and sets the JSON headers.
func newJSONRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends req. Transport failures come back as *UnavailableError; any HTTP
// status, including errors, is returned as a response.
func (u upstream) do(req *http.Request, operation string) (*response, error) {
	ctx, span := u.tracer.Start(req.Context(), u.name+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("external.service", u.name),
			attribute.String("external.operation", operation),
		),
	)
	defer span.End()

	logger := logging.WithTraceContext(span)

	start := time.Now()
	resp, err := u.client.Do(req.WithContext(ctx))
	if err != nil {
		u.record(ctx, start, operation, "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		logger.Error("Upstream unreachable",
			zap.String("upstream", u.name),
			zap.String("operation", operation),
			zap.Error(err),
		)
		return nil, &UnavailableError{Upstream: u.name, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		u.record(ctx, start, operation, "error")
		span.RecordError(err)
		return nil, &UnavailableError{Upstream: u.name, Err: fmt.Errorf("read response: %w", err)}
	}
	if len(body) > maxResponseBody {
		u.record(ctx, start, operation, "error")
		span.RecordError(ErrResponseTooLarge)
		span.SetStatus(codes.Error, "response too large")
		logger.Error("Upstream response exceeds read limit",
			zap.String("upstream", u.name),
			zap.String("operation", operation),
			zap.Int("status_code", resp.StatusCode),
			zap.Int("limit_bytes", maxResponseBody),
		)
		return nil, fmt.Errorf("%s %s: %w", u.name, operation, ErrResponseTooLarge)
	}

	out := &response{StatusCode: resp.StatusCode, Body: body}
	span.SetAttributes(attribute.Int("external.status_code", resp.StatusCode))

	if !out.ok() {
		u.record(ctx, start, operation, "failed")
		span.SetStatus(codes.Error, "upstream returned "+strconv.Itoa(resp.StatusCode))
		logger.Warn("Upstream returned error status",
			zap.String("upstream", u.name),
			zap.String("operation", operation),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", truncate(body, 512)),
		)
		return out, nil
	}

	u.record(ctx, start, operation, "success")
	return out, nil
}

func (u upstream) record(ctx context.Context, start time.Time, operation, status string) {
	monitoring.UpstreamCallDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(
			attribute.String("upstream", u.name),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
