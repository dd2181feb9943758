package persistence

import (
	"context"
	"slices"
	"sync"
)

// MemorySnapshotStore keeps snapshots in process memory
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemorySnapshotStore creates an empty in-memory store
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string][]byte)}
}

// Load returns a copy of the snapshot stored under key
func (s *MemorySnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return slices.Clone(data), nil
}

// Save stores a copy of data under key
func (s *MemorySnapshotStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(data)
	return nil
}

// Ping always succeeds
func (s *MemorySnapshotStore) Ping(context.Context) error {
	return nil
}

// Close implements io.Closer
func (s *MemorySnapshotStore) Close() error {
	return nil
}
