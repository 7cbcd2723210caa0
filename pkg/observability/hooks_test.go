package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnConvertStart(ctx, "head")
	p.OnConvertComplete(ctx, "head", false, time.Second, nil)
	p.OnOrderStart(ctx, "berlin", "/graph/binary/")
	p.OnOrderComplete(ctx, "berlin", time.Second, nil)
	p.OnExportStart(ctx, "berlin")
	p.OnExportComplete(ctx, "berlin", time.Second, nil)

	// Tool hooks
	tl := NoopToolHooks{}
	tl.OnToolStart(ctx, []string{"/tools/build/console", "text_to_binary_vector"})
	tl.OnToolExit(ctx, []string{"/tools/build/console"}, 0, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "attr")
	c.OnCacheMiss(ctx, "attr")
	c.OnCacheSet(ctx, "attr", 64)
}

type testPipelineHooks struct {
	NoopPipelineHooks
	converts int
}

func (h *testPipelineHooks) OnConvertStart(context.Context, string) { h.converts++ }

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Tool().(NoopToolHooks); !ok {
		t.Error("Tool() should return NoopToolHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	Pipeline().OnConvertStart(context.Background(), "head")
	if custom.converts != 1 {
		t.Errorf("custom hook should have observed 1 convert, got %d", custom.converts)
	}

	// Nil registration is ignored
	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(custom) {
		t.Error("SetPipelineHooks(nil) should keep the previous hooks")
	}

	// Reset restores noop
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}
