package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matzehuels/sentree/pkg/observability"
)

// FileStore keeps each entry as a JSON file under a directory. File names
// are derived from a hash of the key, so any key is safe to use.
type FileStore struct {
	mu  sync.RWMutex
	dir string
	now func() time.Time
}

// NewFileStore creates a file store in dir, creating the directory if it
// does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: empty directory")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory holding the entries.
func (s *FileStore) Dir() string { return s.dir }

// fileEntry wraps stored data with its key and expiration.
type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves the entry for key. Expired or unreadable entries are
// removed and reported as a miss.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		observability.Store().OnStoreMiss(ctx, BackendFile)
		return nil, false, nil
	}
	if err != nil {
		observability.Store().OnStoreError(ctx, BackendFile, "get", err)
		return nil, false, fmt.Errorf("read entry: %w", err)
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Key != key {
		_ = os.Remove(path)
		observability.Store().OnStoreMiss(ctx, BackendFile)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && s.now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		observability.Store().OnStoreMiss(ctx, BackendFile)
		return nil, false, nil
	}

	observability.Store().OnStoreHit(ctx, BackendFile)
	return entry.Data, true, nil
}

// Set stores data under key.
func (s *FileStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	start := time.Now()
	entry := fileEntry{Key: key, Data: data}
	if ttl > 0 {
		entry.ExpiresAt = s.now().Add(ttl)
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		observability.Store().OnStoreError(ctx, BackendFile, "set", err)
		return fmt.Errorf("create entry dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		observability.Store().OnStoreError(ctx, BackendFile, "set", err)
		return fmt.Errorf("write entry: %w", err)
	}

	observability.Store().OnStoreSet(ctx, BackendFile, len(data), time.Since(start))
	return nil
}

// Delete removes the entry for key.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	observability.Store().OnStoreError(ctx, BackendFile, "delete", err)
	return fmt.Errorf("delete entry: %w", err)
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// path maps a key to <dir>/<first two hash chars>/<rest>.json so that no
// single directory grows too large.
func (s *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

var _ Store = (*FileStore)(nil)
