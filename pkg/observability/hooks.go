// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline phases, external tool invocations, and
// resume-stamp cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core library free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetToolHooks(&myToolHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnConvertStart(ctx, attr)
//	// ... run conversion ...
//	observability.Pipeline().OnConvertComplete(ctx, attr, cached, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the node-ordering pipeline.
type PipelineHooks interface {
	// Phase 1: text → binary conversion, one event pair per attribute.
	OnConvertStart(ctx context.Context, attribute string)
	OnConvertComplete(ctx context.Context, attribute string, cached bool, duration time.Duration, err error)

	// Phase 2: ordering computation.
	OnOrderStart(ctx context.Context, graphName, binaryDir string)
	OnOrderComplete(ctx context.Context, graphName string, duration time.Duration, err error)

	// Phase 3: binary → text conversion of the order vector.
	OnExportStart(ctx context.Context, graphName string)
	OnExportComplete(ctx context.Context, graphName string, duration time.Duration, err error)
}

// =============================================================================
// Tool Hooks
// =============================================================================

// ToolHooks receives events from external tool invocations.
type ToolHooks interface {
	// OnToolStart records a child process launch with its full command line.
	OnToolStart(ctx context.Context, argv []string)

	// OnToolExit records a child process exit.
	OnToolExit(ctx context.Context, argv []string, exitCode int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from resume-stamp cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnConvertStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnConvertComplete(context.Context, string, bool, time.Duration, error) {}
func (NoopPipelineHooks) OnOrderStart(context.Context, string, string)                          {}
func (NoopPipelineHooks) OnOrderComplete(context.Context, string, time.Duration, error)         {}
func (NoopPipelineHooks) OnExportStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnExportComplete(context.Context, string, time.Duration, error)        {}

// NoopToolHooks is a no-op implementation of ToolHooks.
type NoopToolHooks struct{}

func (NoopToolHooks) OnToolStart(context.Context, []string)                            {}
func (NoopToolHooks) OnToolExit(context.Context, []string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	toolHooks     ToolHooks     = NoopToolHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetToolHooks registers custom tool hooks.
// This should be called once at application startup before any tool invocations.
func SetToolHooks(h ToolHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		toolHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Tool returns the registered tool hooks.
func Tool() ToolHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return toolHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	toolHooks = NoopToolHooks{}
	cacheHooks = NoopCacheHooks{}
}
