package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orderkit/pkg/errors"
	"github.com/matzehuels/orderkit/pkg/observability"
	"github.com/matzehuels/orderkit/pkg/pipeline"
	"github.com/matzehuels/orderkit/pkg/routingkit"
	"github.com/matzehuels/orderkit/pkg/toolchain"
)

// orderOpts holds the command-line flags for the order command.
type orderOpts struct {
	attributes  string // comma-separated attribute list, empty = defaults
	interpreter string // interpreter for the ordering script
	noCache     bool   // disable resume stamps
	refresh     bool   // force reconversion of all attributes
	clean       bool   // remove binary vectors after a successful run
}

// orderCommand creates the order command, the main entry point of the tool.
func (c *CLI) orderCommand() *cobra.Command {
	opts := orderOpts{interpreter: toolchain.DefaultInterpreter}

	cmd := &cobra.Command{
		Use:   "order <flow-cutter-path> <data-path> <graph-name>",
		Short: "Compute a node ordering for a road network",
		Long: `Compute a contraction ordering for a road network.

The data directory must hold the network's text attribute vectors (head,
travel_time, first_out, latitude, longitude by default). The command converts
them to binary form under <data-path>/binary/, runs the InertialFlowCutter
ordering script, and writes the final text ordering to
<data-path>/ordering/<graph-name>.

Attribute conversions are stamped, so re-running after an interruption skips
work whose inputs have not changed.

Examples:
  orderkit order ~/InertialFlowCutter ./data/berlin berlin
  orderkit order --attributes head,first_out ~/ifc ./data/test test
  orderkit order --clean ~/ifc ./data/europe europe`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOrder(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.attributes, "attributes", "", "comma-separated attribute files to convert (default: the RoutingKit set)")
	cmd.Flags().StringVar(&opts.interpreter, "interpreter", opts.interpreter, "interpreter for the ordering script")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable resume stamps")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reconvert all attributes, ignoring resume stamps")
	cmd.Flags().BoolVar(&opts.clean, "clean", false, "remove binary vectors after a successful run")

	return cmd
}

// orderUI animates a spinner while the ordering script runs. The script's
// own progress goes to stdout, so the spinner on stderr is the only
// heartbeat when stdout is redirected.
type orderUI struct {
	observability.NoopPipelineHooks
	mu   sync.Mutex
	spin *Spinner
}

func (u *orderUI) OnOrderStart(ctx context.Context, graphName, binaryDir string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.spin = newSpinnerWithContext(ctx, "Ordering "+graphName+"...")
	u.spin.Start()
}

func (u *orderUI) OnOrderComplete(ctx context.Context, graphName string, d time.Duration, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.spin != nil {
		u.spin.Stop()
		u.spin = nil
	}
}

func (c *CLI) runOrder(cmd *cobra.Command, args []string, opts orderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	// The spinner would garble piped output, so it is TTY-only.
	if isatty.IsTerminal(os.Stderr.Fd()) {
		observability.SetPipelineHooks(&orderUI{})
		defer observability.Reset()
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		FlowCutterPath: args[0],
		DataDir:        args[1],
		GraphName:      args[2],
		Attributes:     parseAttributes(opts.attributes),
		Interpreter:    opts.interpreter,
		CleanBinary:    opts.clean,
		Refresh:        opts.refresh,
		Logger:         c.Logger,
	})
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}
	prog.done("Ordering complete")

	printSuccess("Ordered %s", StyleHighlight.Render(args[2]))
	printFile(result.OrderTextPath)
	if len(result.Skipped) > 0 {
		printDetail("%d converted · %d unchanged", len(result.Converted), len(result.Skipped))
	} else {
		printDetail("%d attributes converted", len(result.Converted))
	}

	// Best effort: the ordering was produced by an external tool, so a
	// node count is informative but its absence is not an error.
	if order, err := routingkit.ReadOrdering(result.OrderTextPath); err == nil {
		printDetail("%d nodes", len(order))
	}

	fmt.Println()
	return nil
}
