package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/erp/invoicing/internal/domain/catalog"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSnapshotStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	saveErr error
	loadErr error
	// block makes Save wait for its context to end
	block bool
	// saveCtxErr and saveDeadline record the context of the last Save
	saveCtxErr   error
	saveDeadline bool
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{data: make(map[string][]byte)}
}

func (f *fakeSnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	data, ok := f.data[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return data, nil
}

func (f *fakeSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.saveCtxErr = ctx.Err()
	_, f.saveDeadline = ctx.Deadline()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[key] = data
	return nil
}

func item(id string) catalog.Item {
	return catalog.Item{Record: shared.Record{ID: id}, Name: "item " + id}
}

func TestStore_CommitPersists(t *testing.T) {
	ss := newFakeSnapshotStore()
	store := NewStore(Default(), WithSnapshotStore(ss), WithSnapshotKey("k"))
	ctx := context.Background()

	next := store.Commit(ctx, Delta{Items: []catalog.Item{item("a")}})

	assert.Len(t, next.Items, 1)
	assert.Equal(t, next, store.Snapshot())
	assert.Equal(t, 1, ss.saves)

	stored, err := Decode(ss.data["k"])
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Items[0].ID)
}

func TestStore_EmptyDeltaSkipsPersistence(t *testing.T) {
	ss := newFakeSnapshotStore()
	store := NewStore(Default(), WithSnapshotStore(ss))

	store.Commit(context.Background(), Delta{})

	assert.Equal(t, 0, ss.saves)
}

func TestStore_SaveFailureKeepsCommit(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	ss := newFakeSnapshotStore()
	ss.saveErr = errors.New("disk full")
	store := NewStore(Default(), WithSnapshotStore(ss), WithLogger(zap.New(core)))

	store.Commit(context.Background(), Delta{Items: []catalog.Item{item("a")}})

	assert.Len(t, store.Snapshot().Items, 1)
	entries := recorded.FilterMessage("failed to persist state").All()
	require.Len(t, entries, 1)
	assert.Equal(t, []interface{}{"items"}, entries[0].ContextMap()["changed"])
}

func TestStore_CancelledCallerStillPersists(t *testing.T) {
	ss := newFakeSnapshotStore()
	store := NewStore(Default(), WithSnapshotStore(ss), WithSnapshotKey("k"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store.Update(ctx, func(st State) Delta {
		next := st.Settings
		next.InvoicePrefix = "X"
		return Delta{Settings: &next}
	})

	require.Equal(t, 1, ss.saves)
	assert.NoError(t, ss.saveCtxErr)
	assert.True(t, ss.saveDeadline)

	stored, err := Decode(ss.data["k"])
	require.NoError(t, err)
	assert.Equal(t, "X", stored.Settings.InvoicePrefix)
}

func TestStore_PersistTimeoutReleasesWriters(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	ss := newFakeSnapshotStore()
	ss.block = true
	store := NewStore(Default(),
		WithSnapshotStore(ss),
		WithPersistTimeout(20*time.Millisecond),
		WithLogger(zap.New(core)),
	)

	done := make(chan struct{})
	go func() {
		store.Commit(context.Background(), Delta{Items: []catalog.Item{item("a")}})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("commit did not return after the persist timeout")
	}

	assert.Len(t, store.Snapshot().Items, 1)
	entries := recorded.FilterMessage("failed to persist state").All()
	require.Len(t, entries, 1)
	assert.Equal(t, context.DeadlineExceeded.Error(), entries[0].ContextMap()["error"])
}

type recordingObserver struct {
	changed [][]string
	errs    []error
}

func (r *recordingObserver) ObserveCommit(_ context.Context, changed []string, err error) {
	r.changed = append(r.changed, changed)
	r.errs = append(r.errs, err)
}

func TestStore_CommitObserver(t *testing.T) {
	ss := newFakeSnapshotStore()
	obs := &recordingObserver{}
	store := NewStore(Default(), WithSnapshotStore(ss), WithCommitObserver(obs))
	ctx := context.Background()

	store.Commit(ctx, Delta{})
	store.Commit(ctx, Delta{Items: []catalog.Item{item("a")}})
	ss.saveErr = errors.New("disk full")
	store.Commit(ctx, Delta{Items: []catalog.Item{item("b")}})

	require.Len(t, obs.changed, 2)
	assert.Equal(t, []string{"items"}, obs.changed[0])
	assert.NoError(t, obs.errs[0])
	assert.EqualError(t, obs.errs[1], "disk full")
}

func TestStore_UpdateSerializesWriters(t *testing.T) {
	store := NewStore(Default())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Update(ctx, func(s State) Delta {
				return Delta{Items: shared.Append(s.Items, item(string(rune('A'+n))))}
			})
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Snapshot().Items, 50)
}

func TestStore_Hydrate(t *testing.T) {
	ctx := context.Background()

	t.Run("loads stored state", func(t *testing.T) {
		ss := newFakeSnapshotStore()
		seeded := Default()
		seeded.Items = []catalog.Item{item("a")}
		data, err := Encode(seeded)
		require.NoError(t, err)
		ss.data[DefaultSnapshotKey] = data

		store := NewStore(Default(), WithSnapshotStore(ss))
		require.NoError(t, store.Hydrate(ctx))

		assert.Len(t, store.Snapshot().Items, 1)
	})

	t.Run("missing snapshot keeps defaults", func(t *testing.T) {
		store := NewStore(Default(), WithSnapshotStore(newFakeSnapshotStore()))
		require.NoError(t, store.Hydrate(ctx))
		assert.Equal(t, Default(), store.Snapshot())
	})

	t.Run("load failure is returned", func(t *testing.T) {
		ss := newFakeSnapshotStore()
		ss.loadErr = errors.New("connection refused")
		store := NewStore(Default(), WithSnapshotStore(ss))

		err := store.Hydrate(ctx)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("no snapshot store", func(t *testing.T) {
		assert.NoError(t, NewStore(Default()).Hydrate(ctx))
	})
}
