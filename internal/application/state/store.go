package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultSnapshotKey is the key the whole state is stored under
const DefaultSnapshotKey = "invoicing-state"

// DefaultPersistTimeout bounds one snapshot save
const DefaultPersistTimeout = 5 * time.Second

// ErrSnapshotNotFound is returned by a SnapshotStore when nothing was saved yet
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore is the key-value collaborator that keeps the encoded state
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Store is the single writer of the application state. Readers take a
// Snapshot; writers go through Commit or Update, which serialize on one
// mutex so that no delta is computed against a stale snapshot.
type Store struct {
	mu             sync.Mutex
	current        State
	snapshot       SnapshotStore
	key            string
	persistTimeout time.Duration
	logger         *zap.Logger
	observer       CommitObserver
}

// CommitObserver is notified after every non-empty commit. persistErr is
// the snapshot write failure, if any.
type CommitObserver interface {
	ObserveCommit(ctx context.Context, changed []string, persistErr error)
}

// StoreOption is a functional option for Store
type StoreOption func(*Store)

// WithSnapshotStore persists the state after every commit
func WithSnapshotStore(ss SnapshotStore) StoreOption {
	return func(s *Store) {
		s.snapshot = ss
	}
}

// WithSnapshotKey overrides DefaultSnapshotKey
func WithSnapshotKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithPersistTimeout overrides DefaultPersistTimeout. The save runs with the
// writer lock held, so this also bounds how long other writers wait on a
// slow backend.
func WithPersistTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// WithLogger sets the logger used for persistence failures
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCommitObserver registers o for commit notifications
func WithCommitObserver(o CommitObserver) StoreOption {
	return func(s *Store) {
		s.observer = o
	}
}

// NewStore creates a Store holding initial
func NewStore(initial State, opts ...StoreOption) *Store {
	initial.fillEmpty()
	s := &Store{
		current:        initial,
		key:            DefaultSnapshotKey,
		persistTimeout: DefaultPersistTimeout,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state. The returned collections must not be
// modified in place.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Commit applies d and persists the result. An empty delta is a no-op.
func (s *Store) Commit(ctx context.Context, d Delta) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, d)
}

// Update runs fn against the current state and commits the delta it returns,
// all under the writer lock
func (s *Store) Update(ctx context.Context, fn func(State) Delta) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, fn(s.current))
}

func (s *Store) commitLocked(ctx context.Context, d Delta) State {
	if d.IsEmpty() {
		return s.current
	}
	s.current = s.current.Apply(d)
	err := s.persist(ctx, d)
	if s.observer != nil {
		s.observer.ObserveCommit(ctx, d.Changed(), err)
	}
	return s.current
}

// persist writes the encoded state. Failures are logged and the in-memory
// commit stands. The save ignores the caller's cancellation and is bounded
// by the persist timeout instead.
func (s *Store) persist(ctx context.Context, d Delta) error {
	if s.snapshot == nil {
		return nil
	}
	data, err := Encode(s.current)
	if err != nil {
		s.logger.Error("failed to encode state", zap.Error(err))
		return err
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
	defer cancel()
	if err := s.snapshot.Save(saveCtx, s.key, data); err != nil {
		s.logger.Error("failed to persist state",
			zap.String("key", s.key),
			zap.Strings("changed", d.Changed()),
			zap.Error(err),
		)
		return err
	}
	s.logger.Debug("state persisted",
		zap.String("key", s.key),
		zap.Strings("changed", d.Changed()),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Hydrate replaces the in-memory state with the stored snapshot, merged
// over defaults. A missing snapshot leaves the current state untouched.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.snapshot == nil {
		return nil
	}
	data, err := s.snapshot.Load(ctx, s.key)
	if errors.Is(err, ErrSnapshotNotFound) {
		s.logger.Info("no stored state, starting empty", zap.String("key", s.key))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	loaded, err := Decode(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	s.logger.Info("state hydrated",
		zap.String("key", s.key),
		zap.Int("customers", len(loaded.Customers)),
		zap.Int("estimates", len(loaded.Estimates)),
		zap.Int("invoices", len(loaded.Invoices)),
	)
	return nil
}
