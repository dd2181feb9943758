package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/erp/invoicing/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestFromConfig(t *testing.T) {
	cfg := telemetry.FromConfig("invoicing", config.TelemetryConfig{
		Enabled:           true,
		CollectorEndpoint: "collector:4317",
		Insecure:          true,
		SamplingRatio:     0.5,
		LogsEnabled:       true,
		Profiling: config.ProfilingConfig{
			Enabled:       true,
			ServerAddress: "http://pyroscope:4040",
			ProfileTypes:  []string{"cpu"},
		},
	})

	assert.Equal(t, "invoicing", cfg.ServiceName)
	assert.Equal(t, "collector:4317", cfg.CollectorEndpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 0.5, cfg.SamplingRatio)
	assert.True(t, cfg.LogsEnabled)
	assert.True(t, cfg.Profiling.Enabled)
	assert.Equal(t, "invoicing", cfg.Profiling.ApplicationName)
	assert.Equal(t, []string{"cpu"}, cfg.Profiling.ProfileTypes)
}

func TestSetup_Disabled(t *testing.T) {
	ctx := context.Background()
	tel, err := telemetry.Setup(ctx, telemetry.Config{ServiceName: "test"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tel.Tracer.IsEnabled())
	assert.False(t, tel.Meter.IsEnabled())
	assert.False(t, tel.Logs.IsEnabled())
	assert.False(t, tel.Profiler.IsEnabled())

	assert.NotNil(t, tel.Tracer.Tracer("test"))
	assert.NotNil(t, tel.Meter.Meter())

	logger := zap.NewNop()
	assert.Same(t, logger, tel.Logs.Attach(logger))

	assert.NoError(t, tel.Shutdown(ctx))
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	ctx := context.Background()
	cfg := telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		Insecure:          true,
		SamplingRatio:     1.0,
		ServiceName:       "test-service",
	}

	// The gRPC exporter dials lazily, so no collector is needed until a span is exported.
	tp, err := telemetry.NewTracerProvider(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.True(t, tp.IsEnabled())
	assert.Equal(t, "test-service", tp.GetConfig().ServiceName)
	assert.NotNil(t, tp.Provider())
	assert.NoError(t, tp.Shutdown(ctx))
}

func newManualMeter(t *testing.T) (*sdkmetric.ManualReader, *telemetry.StateMetrics) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := telemetry.NewStateMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return reader, m
}

func collectSums(t *testing.T, reader *sdkmetric.ManualReader, name string) []metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			return sum.DataPoints
		}
	}
	return nil
}

func TestStateMetrics_CountsCommitsPerCollection(t *testing.T) {
	reader, m := newManualMeter(t)
	ctx := context.Background()

	m.ObserveCommit(ctx, []string{"invoices", "estimates"}, nil)
	m.ObserveCommit(ctx, []string{"invoices"}, nil)

	points := collectSums(t, reader, telemetry.MetricStateCommits)
	require.Len(t, points, 2)

	byCollection := map[string]int64{}
	for _, p := range points {
		v, ok := p.Attributes.Value(attribute.Key("collection"))
		require.True(t, ok)
		byCollection[v.AsString()] = p.Value
	}
	assert.Equal(t, map[string]int64{"invoices": 2, "estimates": 1}, byCollection)

	assert.Empty(t, collectSums(t, reader, telemetry.MetricStatePersistFailures))
}

func TestStateMetrics_CountsPersistFailures(t *testing.T) {
	reader, m := newManualMeter(t)

	m.ObserveCommit(context.Background(), []string{"payments"}, errors.New("disk full"))

	points := collectSums(t, reader, telemetry.MetricStatePersistFailures)
	require.Len(t, points, 1)
	assert.Equal(t, int64(1), points[0].Value)
}
