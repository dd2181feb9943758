// Package persistence provides the backends that keep the encoded
// application state between restarts.
package persistence

import (
	"context"
	"fmt"
	"io"

	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/erp/invoicing/internal/infrastructure/logger"
	"github.com/erp/invoicing/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrSnapshotNotFound is returned by Load when no snapshot exists under the key
var ErrSnapshotNotFound = state.ErrSnapshotNotFound

// SnapshotStore is implemented by every backend in this package
type SnapshotStore interface {
	state.SnapshotStore
	io.Closer
	Ping(ctx context.Context) error
}

// Option configures NewSnapshotStore
type Option func(*options)

type options struct {
	tracerProvider trace.TracerProvider
}

// WithTracerProvider traces every snapshot load and save, plus the SQL
// statements of the gorm backends
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// NewSnapshotStore builds the backend selected by cfg.Driver
func NewSnapshotStore(ctx context.Context, cfg config.StorageConfig, log *zap.Logger, opts ...Option) (SnapshotStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	store, err := newBackend(ctx, cfg, log, o)
	if err != nil {
		return nil, err
	}
	if o.tracerProvider == nil {
		return store, nil
	}
	return tracedStore{
		TracedSnapshotStore: telemetry.TraceSnapshotStore(store, o.tracerProvider, cfg.Driver),
		backend:             store,
	}, nil
}

type tracedStore struct {
	*telemetry.TracedSnapshotStore
	backend SnapshotStore
}

func (s tracedStore) Ping(ctx context.Context) error { return s.backend.Ping(ctx) }

func (s tracedStore) Close() error { return s.backend.Close() }

func newBackend(ctx context.Context, cfg config.StorageConfig, log *zap.Logger, o options) (SnapshotStore, error) {
	switch cfg.Driver {
	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		db, err := NewDatabase(cfg, logger.NewGormLogger(log, logger.MapGormLogLevel("warn")))
		if err != nil {
			return nil, err
		}
		if o.tracerProvider != nil {
			if err := telemetry.RegisterGormTracing(db.DB, cfg.Driver, o.tracerProvider, log); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		store := NewGormSnapshotStore(db)
		if cfg.Driver == config.StorageDriverSQLite {
			// postgres is migrated by cmd/migrate
			if err := store.AutoMigrate(); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return store, nil
	case config.StorageDriverRedis:
		return NewRedisSnapshotStore(ctx, cfg.Redis)
	case config.StorageDriverS3:
		store, err := NewS3SnapshotStore(ctx, cfg.S3, WithS3Logger(log))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageDriverMemory:
		return NewMemorySnapshotStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
