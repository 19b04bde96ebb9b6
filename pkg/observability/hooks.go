// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about editing history and document storage.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which keeps the core
// packages free of metrics frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHistoryHooks(&myHistoryHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.History().OnSnapshot(len(states), len(data))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// History Hooks
// =============================================================================

// HistoryHooks receives events from the undo/redo history. Calls happen on
// the editing goroutine and must return quickly.
type HistoryHooks interface {
	// OnSnapshot records a saved snapshot: the new history length and the
	// encoded size of the snapshot.
	OnSnapshot(historyLen, size int)

	// OnUndo and OnRedo record navigation with the resulting depth.
	OnUndo(depth int)
	OnRedo(depth int)

	// OnReset records each edge of the reset signal.
	OnReset(resetting bool)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from document store operations.
type StoreHooks interface {
	// OnStoreHit records a successful read.
	OnStoreHit(ctx context.Context, backend string)

	// OnStoreMiss records a read of a missing key.
	OnStoreMiss(ctx context.Context, backend string)

	// OnStoreSet records a write.
	OnStoreSet(ctx context.Context, backend string, size int, duration time.Duration)

	// OnStoreError records a failed operation.
	OnStoreError(ctx context.Context, backend, op string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHistoryHooks is a no-op implementation of HistoryHooks.
type NoopHistoryHooks struct{}

func (NoopHistoryHooks) OnSnapshot(int, int) {}
func (NoopHistoryHooks) OnUndo(int)          {}
func (NoopHistoryHooks) OnRedo(int)          {}
func (NoopHistoryHooks) OnReset(bool)        {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreHit(context.Context, string)                     {}
func (NoopStoreHooks) OnStoreMiss(context.Context, string)                    {}
func (NoopStoreHooks) OnStoreSet(context.Context, string, int, time.Duration) {}
func (NoopStoreHooks) OnStoreError(context.Context, string, string, error)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	historyHooks HistoryHooks = NoopHistoryHooks{}
	storeHooks   StoreHooks   = NoopStoreHooks{}
	hooksMu      sync.RWMutex
)

// SetHistoryHooks registers custom history hooks.
// This should be called once at application startup before any editing.
func SetHistoryHooks(h HistoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		historyHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// History returns the registered history hooks.
func History() HistoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return historyHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	historyHooks = NoopHistoryHooks{}
	storeHooks = NoopStoreHooks{}
}
