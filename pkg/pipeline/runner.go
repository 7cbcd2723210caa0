package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/orderkit/pkg/cache"
	"github.com/matzehuels/orderkit/pkg/observability"
	"github.com/matzehuels/orderkit/pkg/toolchain"
	"github.com/matzehuels/orderkit/pkg/workspace"
)

// Runner executes pipeline runs.
type Runner struct {
	// Cache holds resume stamps. NullCache disables resuming.
	Cache cache.Cache

	// Tools launches the external programs.
	Tools toolchain.Runner

	// Logger receives progress output.
	Logger *log.Logger
}

// NewRunner creates a Runner. A nil cache disables resume stamps, nil tools
// means real child processes, a nil logger means the default logger.
func NewRunner(c cache.Cache, tools toolchain.Runner, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if tools == nil {
		tools = toolchain.NewExecRunner(logger)
	}
	return &Runner{
		Cache:  c,
		Tools:  tools,
		Logger: logger,
	}
}

// Execute runs the three phases in order and returns what was produced.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{RunID: uuid.New().String()}
	logger.Debug("run starting", "run_id", result.RunID, "graph", opts.GraphName)

	ws := workspace.New(opts.DataDir)
	tools := toolchain.Toolchain{
		FlowCutterPath: opts.FlowCutterPath,
		Interpreter:    opts.Interpreter,
	}

	// Phase 1: text → binary conversion of every attribute vector. Inputs
	// are verified up front so a missing file fails before any process runs.
	if err := ws.CheckAttributes(opts.Attributes); err != nil {
		return nil, err
	}
	if err := ws.EnsureBinaryDir(); err != nil {
		return nil, err
	}

	// Stamp keys use the absolute dataset path, so relative and absolute
	// invocations of the same directory share stamps.
	stampDir := opts.DataDir
	if abs, err := filepath.Abs(opts.DataDir); err == nil {
		stampDir = abs
	}

	convertStart := time.Now()
	for _, attr := range opts.Attributes {
		converted, err := r.convertAttribute(ctx, ws, tools, opts, stampDir, attr)
		if err != nil {
			return nil, err
		}
		if converted {
			result.Converted = append(result.Converted, attr)
		} else {
			result.Skipped = append(result.Skipped, attr)
		}
	}
	result.Stats.ConvertTime = time.Since(convertStart)

	// Phase 2: compute the ordering. The ordering directory appears only
	// now; a phase 1 failure leaves it untouched.
	if err := ws.EnsureOrderingDir(); err != nil {
		return nil, err
	}
	result.OrderBinaryPath = ws.OrderBinaryPath(opts.GraphName)

	logger.Info("computing node ordering", "graph", opts.GraphName)
	observability.Pipeline().OnOrderStart(ctx, opts.GraphName, ws.BinaryDirArg())
	orderStart := time.Now()
	err := r.Tools.Run(ctx, tools.OrderArgs(ws.BinaryDirArg(), result.OrderBinaryPath))
	result.Stats.OrderTime = time.Since(orderStart)
	observability.Pipeline().OnOrderComplete(ctx, opts.GraphName, result.Stats.OrderTime, err)
	if err != nil {
		return nil, err
	}

	// Phase 3: binary → text conversion of the order vector.
	result.OrderTextPath = ws.OrderTextPath(opts.GraphName)

	logger.Info("exporting ordering", "dst", result.OrderTextPath)
	observability.Pipeline().OnExportStart(ctx, opts.GraphName)
	exportStart := time.Now()
	err = r.Tools.Run(ctx, tools.ConvertArgs(toolchain.BinaryToText, result.OrderBinaryPath, result.OrderTextPath))
	result.Stats.ExportTime = time.Since(exportStart)
	observability.Pipeline().OnExportComplete(ctx, opts.GraphName, result.Stats.ExportTime, err)
	if err != nil {
		return nil, err
	}

	if opts.CleanBinary {
		if err := ws.RemoveBinaryPaths(opts.Attributes); err != nil {
			return nil, err
		}
		logger.Debug("removed binary vectors", "dir", ws.BinaryDir())
	}

	logger.Debug("run finished",
		"run_id", result.RunID,
		"converted", len(result.Converted),
		"skipped", len(result.Skipped),
		"duration", result.Stats.Total().Round(time.Millisecond))
	return result, nil
}

// convertAttribute converts one attribute vector to binary form, unless a
// resume stamp shows the source is unchanged and the output still exists.
// It reports whether a conversion actually ran.
func (r *Runner) convertAttribute(ctx context.Context, ws workspace.Layout, tools toolchain.Toolchain, opts Options, stampDir, attr string) (bool, error) {
	src := ws.AttributePath(attr)
	dst := ws.BinaryPath(attr)
	key := cache.Key("attr", stampDir, attr)

	hash, err := cache.HashFile(src)
	if err != nil {
		return false, err
	}

	if !opts.Refresh {
		if stamp, ok, err := r.Cache.Get(ctx, key); err == nil && ok && string(stamp) == hash {
			if _, err := os.Stat(dst); err == nil {
				observability.Cache().OnCacheHit(ctx, "attr")
				opts.Logger.Info("attribute unchanged, skipping", "attribute", attr)
				observability.Pipeline().OnConvertStart(ctx, attr)
				observability.Pipeline().OnConvertComplete(ctx, attr, true, 0, nil)
				return false, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "attr")
	}

	opts.Logger.Info("converting attribute", "attribute", attr)
	observability.Pipeline().OnConvertStart(ctx, attr)
	start := time.Now()
	err = r.Tools.Run(ctx, tools.ConvertArgs(toolchain.TextToBinary, src, dst))
	observability.Pipeline().OnConvertComplete(ctx, attr, false, time.Since(start), err)
	if err != nil {
		return false, err
	}

	// Stamps are advisory: failing to record one only costs a reconversion.
	if err := r.Cache.Set(ctx, key, []byte(hash)); err != nil {
		opts.Logger.Warn("failed to record resume stamp", "attribute", attr, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "attr", len(hash))
	}
	return true, nil
}
