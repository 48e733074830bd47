package monitoring

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func TestInstrumentsUsableBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckoutCounter.Add(context.Background(), 1)
		UpstreamCallDuration.Record(context.Background(), 0.2)
	})
}

func TestInitMeterExposesPrometheus(t *testing.T) {
	mp, registry, err := InitMeter("checkout-gateway-test", "127.0.0.1:4317")
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = mp.Shutdown(ctx)
	})

	CheckoutCounter.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("payment_type", "reserve_vip_spot"),
		attribute.String("payment_method", "paypal"),
		attribute.String("status", "success"),
	))

	families, err := registry.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "checkout_requests")
	assert.Contains(t, joined, "go_goroutines")
}
