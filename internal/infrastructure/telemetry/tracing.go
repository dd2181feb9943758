package telemetry

import (
	"context"
	"errors"

	"github.com/erp/invoicing/internal/application/state"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TracerName is the instrumentation scope for spans started by this service.
const TracerName = "github.com/erp/invoicing"

// TracedSnapshotStore wraps a snapshot store with one client span per call.
type TracedSnapshotStore struct {
	next   state.SnapshotStore
	tracer trace.Tracer
	driver string
}

var _ state.SnapshotStore = (*TracedSnapshotStore)(nil)

// TraceSnapshotStore decorates next; driver is recorded on every span.
func TraceSnapshotStore(next state.SnapshotStore, tp trace.TracerProvider, driver string) *TracedSnapshotStore {
	return &TracedSnapshotStore{
		next:   next,
		tracer: tp.Tracer(TracerName),
		driver: driver,
	}
}

// Load implements state.SnapshotStore.
func (s *TracedSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, span := s.start(ctx, "snapshot.load", key)
	defer span.End()

	data, err := s.next.Load(ctx, key)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("snapshot.size", len(data)))
	return data, nil
}

// Save implements state.SnapshotStore.
func (s *TracedSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	ctx, span := s.start(ctx, "snapshot.save", key)
	defer span.End()

	span.SetAttributes(attribute.Int("snapshot.size", len(data)))
	if err := s.next.Save(ctx, key, data); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (s *TracedSnapshotStore) start(ctx context.Context, name, key string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("snapshot.driver", s.driver),
			attribute.String("snapshot.key", key),
		),
	)
}

// A missing snapshot is an expected first-run condition, not a failure.
func recordError(span trace.Span, err error) {
	span.RecordError(err)
	if errors.Is(err, state.ErrSnapshotNotFound) {
		return
	}
	span.SetStatus(codes.Error, err.Error())
}

// RegisterGormTracing installs the otelgorm plugin on db. Query variables are
// left out of spans since they carry customer data.
func RegisterGormTracing(db *gorm.DB, dbSystem string, tp trace.TracerProvider, logger *zap.Logger) error {
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(dbSystem),
		otelgorm.WithTracerProvider(tp),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}
	logger.Info("Database tracing enabled", zap.String("db_system", dbSystem))
	return nil
}
