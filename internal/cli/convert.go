package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orderkit/pkg/errors"
	"github.com/matzehuels/orderkit/pkg/matsim"
)

// convertCommand creates the convert command, which turns a MATSim network
// file into the text attribute vectors the order command consumes.
func (c *CLI) convertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <network-xml> <data-path>",
		Short: "Convert a MATSim network to RoutingKit attribute vectors",
		Long: `Convert a MATSim network file into RoutingKit text attribute vectors.

The network's nodes and links are sorted by id, turned into an adjacency
array, and written as one file per attribute (head, travel_time, first_out,
latitude, longitude) into the data directory. The result is ready for
"orderkit order".

Example:
  orderkit convert ./berlin-network.xml ./data/berlin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(args[0], args[1])
		},
	}
	return cmd
}

func (c *CLI) runConvert(networkPath, dataDir string) error {
	spin := newSpinner("Converting network...")
	spin.Start()

	net, err := matsim.ReadNetworkFile(networkPath)
	if err != nil {
		spin.StopWithError(errors.UserMessage(err))
		return err
	}
	c.Logger.Debug("network read", "nodes", len(net.Nodes), "links", len(net.Links))

	rk, err := matsim.ToRoutingKit(net)
	if err != nil {
		spin.StopWithError(errors.UserMessage(err))
		return err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		spin.StopWithError(err.Error())
		return err
	}
	if err := rk.WriteVectors(dataDir); err != nil {
		spin.StopWithError(errors.UserMessage(err))
		return err
	}

	spin.StopWithSuccess("Converted " + StyleHighlight.Render(networkPath))
	printFile(dataDir)
	printStats(rk.NodeCount(), rk.EdgeCount())
	return nil
}
