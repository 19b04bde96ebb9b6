// Package store persists serialized annotation documents under string keys.
//
// Three backends implement [Store]:
//   - file: one JSON entry per key under a local directory (CLI default)
//   - redis: a shared Redis instance, for editors running on several hosts
//   - null: stores nothing, for tests and dry runs
//
// [Documents] layers the document codec on top of any backend, so callers
// put and get [io.Document] values rather than raw bytes.
//
// All backends are safe for concurrent use. Operations report to the hooks
// registered with observability.SetStoreHooks.
package store

import (
	"context"
	"fmt"
	"time"
)

// Store is a key-value store for encoded documents.
type Store interface {
	// Get returns the data stored under key. A missing or expired key is
	// reported as a miss (false) with a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNull  = "null"
)

// Config selects and configures a backend for [Open].
type Config struct {
	Backend string // one of BackendFile, BackendRedis, BackendNull; "" means file

	Dir string // file backend directory

	RedisAddr     string // host:port of the redis server
	RedisPassword string
	RedisDB       int
	Prefix        string // prepended to every redis key
}

// Open returns the store selected by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStore(cfg.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.Prefix,
		})
	case BackendNull:
		return NewNullStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
