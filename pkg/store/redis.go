package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/sentree/pkg/observability"
)

// DefaultRedisPrefix namespaces every key written by RedisStore.
const DefaultRedisPrefix = "sentree:doc:"

// RedisConfig configures NewRedisStore.
type RedisConfig struct {
	Addr     string // host:port; defaults to localhost:6379
	Password string
	DB       int
	Prefix   string // defaults to DefaultRedisPrefix
}

// RedisStore keeps entries in Redis. Transient network failures are retried
// with backoff.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore connects to the server described by cfg and verifies the
// connection with PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrNetwork, cfg.Addr, err)
	}
	return NewRedisStoreFromClient(client, cfg.Prefix), nil
}

// NewRedisStoreFromClient wraps an existing client. The store takes
// ownership and closes the client on Close.
func NewRedisStoreFromClient(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Get retrieves the entry for key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.key(key)).Bytes()
		return classifyNet(err)
	})
	if errors.Is(err, redis.Nil) {
		observability.Store().OnStoreMiss(ctx, BackendRedis)
		return nil, false, nil
	}
	if err != nil {
		observability.Store().OnStoreError(ctx, BackendRedis, "get", err)
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	observability.Store().OnStoreHit(ctx, BackendRedis)
	return data, true, nil
}

// Set stores data under key; ttl zero means no expiration.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	start := time.Now()
	err := RetryWithBackoff(ctx, func() error {
		return classifyNet(s.client.Set(ctx, s.key(key), data, ttl).Err())
	})
	if err != nil {
		observability.Store().OnStoreError(ctx, BackendRedis, "set", err)
		return fmt.Errorf("redis set: %w", err)
	}
	observability.Store().OnStoreSet(ctx, BackendRedis, len(data), time.Since(start))
	return nil
}

// Delete removes the entry for key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	err := RetryWithBackoff(ctx, func() error {
		return classifyNet(s.client.Del(ctx, s.key(key)).Err())
	})
	if err != nil {
		observability.Store().OnStoreError(ctx, BackendRedis, "delete", err)
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) key(k string) string { return s.prefix + k }

var _ Store = (*RedisStore)(nil)
