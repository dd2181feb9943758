package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newSQLiteStore(t *testing.T) *GormSnapshotStore {
	t.Helper()
	db, err := NewDatabase(config.StorageConfig{
		Driver: config.StorageDriverSQLite,
		SQLite: config.SQLiteConfig{Path: ":memory:"},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewGormSnapshotStore(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

func newMockPostgresStore(t *testing.T) (*GormSnapshotStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	store := NewGormSnapshotStore(&Database{DB: gormDB})
	store.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }
	return store, mock, mockDB
}

// exerciseStore runs the contract every backend must satisfy
func exerciseStore(t *testing.T, store state.SnapshotStore) {
	ctx := context.Background()

	_, err := store.Load(ctx, "invoicing-state")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	require.NoError(t, store.Save(ctx, "invoicing-state", []byte(`{"customers":[]}`)))
	data, err := store.Load(ctx, "invoicing-state")
	require.NoError(t, err)
	assert.JSONEq(t, `{"customers":[]}`, string(data))

	require.NoError(t, store.Save(ctx, "invoicing-state", []byte(`{"items":[]}`)))
	data, err = store.Load(ctx, "invoicing-state")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(data))

	_, err = store.Load(ctx, "other-key")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMemorySnapshotStore(t *testing.T) {
	exerciseStore(t, NewMemorySnapshotStore())
}

func TestMemorySnapshotStore_CopiesData(t *testing.T) {
	store := NewMemorySnapshotStore()
	data := []byte("abc")
	require.NoError(t, store.Save(context.Background(), "k", data))
	data[0] = 'x'

	loaded, err := store.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(loaded))
}

func TestGormSnapshotStore_SQLite(t *testing.T) {
	exerciseStore(t, newSQLiteStore(t))
}

func TestGormSnapshotStore_Postgres(t *testing.T) {
	t.Run("missing row maps to not found", func(t *testing.T) {
		store, mock, mockDB := newMockPostgresStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "state_snapshots" WHERE "key" = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("invoicing-state", 1).
			WillReturnRows(sqlmock.NewRows([]string{"key", "data", "updated_at"}))

		_, err := store.Load(context.Background(), "invoicing-state")
		assert.ErrorIs(t, err, ErrSnapshotNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure is wrapped", func(t *testing.T) {
		store, mock, mockDB := newMockPostgresStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "state_snapshots"`).
			WillReturnError(errors.New("connection reset"))

		_, err := store.Load(context.Background(), "invoicing-state")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSnapshotNotFound)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("save upserts on key", func(t *testing.T) {
		store, mock, mockDB := newMockPostgresStore(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "state_snapshots" .* ON CONFLICT \("key"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Save(context.Background(), "invoicing-state", []byte(`{}`))
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewSnapshotStore(t *testing.T) {
	ctx := context.Background()

	store, err := NewSnapshotStore(ctx, config.StorageConfig{Driver: config.StorageDriverMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemorySnapshotStore{}, store)

	store, err = NewSnapshotStore(ctx, config.StorageConfig{
		Driver: config.StorageDriverSQLite,
		SQLite: config.SQLiteConfig{Path: ":memory:"},
	}, nil)
	require.NoError(t, err)
	assert.IsType(t, &GormSnapshotStore{}, store)
	exerciseStore(t, store)
	assert.NoError(t, store.Close())

	_, err = NewSnapshotStore(ctx, config.StorageConfig{Driver: "ftp"}, nil)
	assert.Error(t, err)
}

func TestNewRedisSnapshotStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisSnapshotStore(ctx, config.RedisConfig{Host: "127.0.0.1", Port: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestRedisSnapshotStore_KeyPrefix(t *testing.T) {
	store := NewRedisSnapshotStoreWithClient(nil, "")
	assert.Equal(t, "invoicing:invoicing-state", store.key("invoicing-state"))

	store = NewRedisSnapshotStoreWithClient(nil, "tenant-a:")
	assert.Equal(t, "tenant-a:invoicing-state", store.key("invoicing-state"))
}

func TestNewSnapshotStore_Traced(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx := context.Background()
	store, err := NewSnapshotStore(ctx, config.StorageConfig{
		Driver: config.StorageDriverSQLite,
		SQLite: config.SQLiteConfig{Path: ":memory:"},
	}, nil, WithTracerProvider(tp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Load(ctx, "state")
	require.ErrorIs(t, err, ErrSnapshotNotFound)
	require.NoError(t, store.Save(ctx, "state", []byte(`{}`)))

	var names []string
	for _, span := range sr.Ended() {
		names = append(names, span.Name())
		if span.Name() == "snapshot.load" {
			assert.NotEqual(t, codes.Error, span.Status().Code, "missing snapshot is not an error")
		}
	}
	assert.Contains(t, names, "snapshot.load")
	assert.Contains(t, names, "snapshot.save")
	// otelgorm adds a child span per statement
	assert.Greater(t, len(names), 2)
}

func TestGormSnapshotStore_CommitWithCancelledContext(t *testing.T) {
	backend := newSQLiteStore(t)
	store := state.NewStore(state.Default(), state.WithSnapshotStore(backend))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store.Update(ctx, func(st state.State) state.Delta {
		next := st.Settings
		next.InvoicePrefix = "X"
		return state.Delta{Settings: &next}
	})

	data, err := backend.Load(context.Background(), state.DefaultSnapshotKey)
	require.NoError(t, err)
	stored, err := state.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "X", stored.Settings.InvoicePrefix)
}
