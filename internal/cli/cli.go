// Package cli implements the orderkit command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orderkit/pkg/buildinfo"
	"github.com/matzehuels/orderkit/pkg/cache"
	"github.com/matzehuels/orderkit/pkg/pipeline"
	"github.com/matzehuels/orderkit/pkg/toolchain"
)

// appName is the application name used for directories and display.
const appName = "orderkit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "orderkit",
		Short:        "Orderkit computes node orderings for road networks",
		Long:         `Orderkit drives the InertialFlowCutter toolchain to compute contraction orderings for road networks stored as RoutingKit text vectors.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.orderCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	stamps, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(stamps, toolchain.NewExecRunner(c.Logger), c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/orderkit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseAttributes parses a comma-separated attribute list. Empty means the
// pipeline's default set.
func parseAttributes(s string) []string {
	if s == "" {
		return nil
	}
	var attrs []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			attrs = append(attrs, part)
		}
	}
	return attrs
}
