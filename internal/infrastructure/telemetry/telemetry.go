// Package telemetry provides OpenTelemetry integration for traces, metrics
// and logs. All three signals are exported over OTLP/gRPC to one collector.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/invoicing/internal/infrastructure/config"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

// ServiceVersion is reported as service.version on every signal.
const ServiceVersion = "1.0.0"

const shutdownTimeout = 10 * time.Second

// Config holds telemetry configuration.
type Config struct {
	Enabled           bool
	CollectorEndpoint string
	Insecure          bool
	SamplingRatio     float64
	MetricsInterval   time.Duration
	LogsEnabled       bool
	ServiceName       string
	Profiling         ProfilerConfig
}

// FromConfig converts the application telemetry section.
func FromConfig(serviceName string, cfg config.TelemetryConfig) Config {
	return Config{
		Enabled:           cfg.Enabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		Insecure:          cfg.Insecure,
		SamplingRatio:     cfg.SamplingRatio,
		MetricsInterval:   cfg.MetricsInterval,
		LogsEnabled:       cfg.LogsEnabled,
		ServiceName:       serviceName,
		Profiling: ProfilerConfig{
			Enabled:           cfg.Profiling.Enabled,
			ServerAddress:     cfg.Profiling.ServerAddress,
			ApplicationName:   serviceName,
			BasicAuthUser:     cfg.Profiling.BasicAuthUser,
			BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
			ProfileTypes:      cfg.Profiling.ProfileTypes,
			SpanProfiles:      cfg.Profiling.SpanProfiles,
		},
	}
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// Telemetry owns the three providers and the profiler.
type Telemetry struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup initializes every provider. Disabled signals get no-op providers,
// so callers can use the result unconditionally.
func Setup(ctx context.Context, cfg Config, logger *zap.Logger) (*Telemetry, error) {
	tp, err := NewTracerProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	mp, err := NewMeterProvider(ctx, cfg, logger)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	lp, err := NewLoggerProvider(ctx, cfg, logger)
	if err != nil {
		_ = mp.Shutdown(ctx)
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	profiler, err := NewProfiler(cfg.Profiling, logger)
	if err != nil {
		_ = lp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	if cfg.Profiling.Enabled && cfg.Profiling.SpanProfiles {
		tp.EnableSpanProfiles()
	}
	return &Telemetry{Tracer: tp, Meter: mp, Logs: lp, Profiler: profiler}, nil
}

// Shutdown flushes and stops all providers. Logs go last so shutdown
// messages from the other providers still reach the collector.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.Profiler.Stop(),
		t.Tracer.Shutdown(ctx),
		t.Meter.Shutdown(ctx),
		t.Logs.Shutdown(ctx),
	)
}
