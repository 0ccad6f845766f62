package telemetry

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("storex", reg)

	m.OrdersCreated.WithLabelValues("created").Inc()
	m.OrdersCreated.WithLabelValues("created").Inc()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrdersCreated.WithLabelValues("created")))

	assert.Panics(t, func() { NewMetrics("storex", reg) })
}

func TestSetupTracing(t *testing.T) {
	shutdown, err := SetupTracing("none")
	require.NoError(t, err)

	_, span := Tracer().Start(context.Background(), "unit")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, shutdown(context.Background()))

	_, err = SetupTracing("zipkin")
	assert.Error(t, err)
}
