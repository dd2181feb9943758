package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "invoicing:"

// RedisSnapshotStore keeps snapshots as plain Redis string values.
// Suitable when several instances share one state.
type RedisSnapshotStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSnapshotStore connects to Redis and verifies the connection
func NewRedisSnapshotStore(ctx context.Context, cfg config.RedisConfig) (*RedisSnapshotStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSnapshotStoreWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisSnapshotStoreWithClient creates a store with an existing client
func NewRedisSnapshotStoreWithClient(client *redis.Client, keyPrefix string) *RedisSnapshotStore {
	if keyPrefix == "" {
		keyPrefix = defaultRedisKeyPrefix
	}
	return &RedisSnapshotStore{client: client, keyPrefix: keyPrefix}
}

// Ping checks the Redis connection
func (s *RedisSnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisSnapshotStore) key(key string) string {
	return s.keyPrefix + key
}

// Load returns the snapshot stored under key
func (s *RedisSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot %q: %w", key, err)
	}
	return data, nil
}

// Save overwrites the snapshot stored under key. Snapshots never expire.
func (s *RedisSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", key, err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisSnapshotStore) Close() error {
	return s.client.Close()
}
