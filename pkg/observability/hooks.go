// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about snapshot materialization.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Pass hooks to the materializer explicitly:
//
//	m, err := snapshot.New(snapshot.Options{Hooks: &mySnapshotHooks{}})
//
// Materializers built without hooks fall back to the registered ones:
//
//	func main() {
//	    observability.SetSnapshotHooks(&mySnapshotHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Snapshot Hooks
// =============================================================================

// SnapshotHooks receives events from the snapshot materializer.
type SnapshotHooks interface {
	// OnDerivativeStart records the start of one derivative snapshot.
	OnDerivativeStart(ctx context.Context, index int, dst string)

	// OnDerivativeComplete records the end of one derivative snapshot.
	// linked is the number of artifact files hard-linked.
	OnDerivativeComplete(ctx context.Context, index int, dst string, linked int, duration time.Duration, err error)

	// OnLinkSkipped records an artifact file skipped because the
	// destination already existed.
	OnLinkSkipped(ctx context.Context, dst string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSnapshotHooks is a no-op implementation of SnapshotHooks.
type NoopSnapshotHooks struct{}

func (NoopSnapshotHooks) OnDerivativeStart(context.Context, int, string) {}
func (NoopSnapshotHooks) OnDerivativeComplete(context.Context, int, string, int, time.Duration, error) {
}
func (NoopSnapshotHooks) OnLinkSkipped(context.Context, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	snapshotHooks SnapshotHooks = NoopSnapshotHooks{}
	hooksMu       sync.RWMutex
)

// SetSnapshotHooks registers custom snapshot hooks.
// This should be called once at application startup before any snapshot is built.
func SetSnapshotHooks(h SnapshotHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		snapshotHooks = h
	}
}

// Snapshot returns the registered snapshot hooks.
func Snapshot() SnapshotHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return snapshotHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	snapshotHooks = NoopSnapshotHooks{}
}

// =============================================================================
// Fan-out
// =============================================================================

// MultiSnapshotHooks forwards every event to each of its members in order.
type MultiSnapshotHooks []SnapshotHooks

func (m MultiSnapshotHooks) OnDerivativeStart(ctx context.Context, index int, dst string) {
	for _, h := range m {
		h.OnDerivativeStart(ctx, index, dst)
	}
}

func (m MultiSnapshotHooks) OnDerivativeComplete(ctx context.Context, index int, dst string, linked int, duration time.Duration, err error) {
	for _, h := range m {
		h.OnDerivativeComplete(ctx, index, dst, linked, duration, err)
	}
}

func (m MultiSnapshotHooks) OnLinkSkipped(ctx context.Context, dst string) {
	for _, h := range m {
		h.OnLinkSkipped(ctx, dst)
	}
}
