package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	sio "github.com/matzehuels/sentree/pkg/io"
	"github.com/matzehuels/sentree/pkg/observability"
	"github.com/matzehuels/sentree/pkg/sentence"
)

func fastRetry(t *testing.T) {
	t.Helper()
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	data, hit, err := s.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullStore.Get should always return a miss")
	}

	if err := s.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = s.Get(ctx, "key"); hit {
		t.Error("NullStore should not store data")
	}
	if err := s.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if _, hit, err := s.Get(ctx, "a/b"); err != nil || hit {
		t.Fatalf("Get on empty store = hit %v, err %v", hit, err)
	}

	if err := s.Set(ctx, "a/b", []byte("hello"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := s.Get(ctx, "a/b")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "hello" {
		t.Errorf("Get = %q, want %q", data, "hello")
	}

	if err := s.Delete(ctx, "a/b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "a/b"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := s.Delete(ctx, "a/b"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := s.Get(ctx, "k"); !hit {
		t.Fatal("entry should be live before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := s.Get(ctx, "k"); hit {
		t.Error("entry should be expired")
	}
	if _, err := os.Stat(s.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileStoreCorruptEntry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := s.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := s.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry should be a miss, got hit %v err %v", hit, err)
	}
}

func TestFileStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, "shared", []byte("v"), 0)
			_, _, _ = s.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	if data, hit, _ := s.Get(ctx, "shared"); !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v", data, hit)
	}
}

func TestNewFileStoreEmptyDir(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Error("NewFileStore(\"\") should fail")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open file: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("default backend = %T, want *FileStore", s)
	}

	s, err = Open(ctx, Config{Backend: BackendNull})
	if err != nil {
		t.Fatalf("Open null: %v", err)
	}
	if _, ok := s.(*NullStore); !ok {
		t.Errorf("null backend = %T, want *NullStore", s)
	}

	if _, err := Open(ctx, Config{Backend: "mongo"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open unknown = %v, want ErrUnknownBackend", err)
	}
}

func TestRedisUnreachable(t *testing.T) {
	fastRetry(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("NewRedisStore = %v, want ErrNetwork", err)
	}

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	s := NewRedisStoreFromClient(client, "")
	defer s.Close()

	if _, hit, err := s.Get(ctx, "k"); err == nil || hit {
		t.Errorf("Get on unreachable server = hit %v, err %v", hit, err)
	}
	if err := s.Set(ctx, "k", []byte("v"), 0); err == nil {
		t.Error("Set on unreachable server should fail")
	}
}

func TestRedisKeyPrefix(t *testing.T) {
	s := NewRedisStoreFromClient(redis.NewClient(&redis.Options{}), "")
	defer s.Close()
	if got := s.key("doc"); got != DefaultRedisPrefix+"doc" {
		t.Errorf("key = %q", got)
	}

	s = NewRedisStoreFromClient(redis.NewClient(&redis.Options{}), "t:")
	defer s.Close()
	if got := s.key("doc"); got != "t:doc" {
		t.Errorf("key = %q", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrNotFound) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	fastRetry(t)
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return ErrNotFound
	})
	if err != ErrNotFound || calls != 1 {
		t.Errorf("non-retryable: err %v after %d calls", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: err %v after %d calls", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, ErrNetwork) || calls != 3 {
		t.Errorf("exhausted: err %v after %d calls", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	docs := NewDocuments(fs, 0)

	g := sentence.New()
	if err := g.InsertLayerAtIndex(&sentence.Layer{ID: "l"}, 0); err != nil {
		t.Fatal(err)
	}
	if err := g.AddWord("l", &sentence.Word{ID: "w", Value: "dog"}); err != nil {
		t.Fatal(err)
	}

	if err := docs.PutGraph(ctx, "draft", g); err != nil {
		t.Fatalf("PutGraph: %v", err)
	}
	got, err := docs.GetGraph(ctx, "draft")
	if err != nil {
		t.Fatalf("GetGraph: %v", err)
	}
	if w, ok := got.Word("w"); !ok || w.Value != "dog" {
		t.Errorf("round trip lost word: %+v", w)
	}

	if _, err := docs.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}

	if err := fs.Set(ctx, "bad", []byte("{"), 0); err != nil {
		t.Fatal(err)
	}
	if _, err := docs.Get(ctx, "bad"); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Get corrupt = %v, want ErrCorrupt", err)
	}

	if err := docs.Delete(ctx, "draft"); err != nil {
		t.Fatal(err)
	}
	if _, err := docs.Get(ctx, "draft"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v", err)
	}

	if err := docs.Put(ctx, "empty", sio.Document{}); err != nil {
		t.Fatal(err)
	}
	if doc, err := docs.Get(ctx, "empty"); err != nil || len(doc) != 0 {
		t.Errorf("empty document = %v, %v", doc, err)
	}
}

type countingStoreHooks struct {
	observability.NoopStoreHooks
	mu           sync.Mutex
	hits, misses int
	sets         int
}

func (h *countingStoreHooks) OnStoreHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingStoreHooks) OnStoreMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingStoreHooks) OnStoreSet(context.Context, string, int, time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func TestFileStoreHooks(t *testing.T) {
	hooks := &countingStoreHooks{}
	observability.SetStoreHooks(hooks)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, _, _ = s.Get(ctx, "k")
	_ = s.Set(ctx, "k", []byte("v"), 0)
	_, _, _ = s.Get(ctx, "k")

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("hooks = hits %d misses %d sets %d, want 1 each", hooks.hits, hooks.misses, hooks.sets)
	}
}
