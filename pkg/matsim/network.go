// Package matsim reads MATSim network files and converts them into the
// RoutingKit representation the ordering pipeline consumes.
package matsim

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/matzehuels/orderkit/pkg/errors"
)

// Network mirrors the <network> element of a MATSim network file.
type Network struct {
	XMLName xml.Name `xml:"network"`
	Nodes   []Node   `xml:"nodes>node"`
	Links   []Link   `xml:"links>link"`
}

// Node mirrors a <node> element. X and Y are coordinates in the network's
// coordinate system (longitude and latitude for geographic networks).
type Node struct {
	ID string  `xml:"id,attr"`
	X  float32 `xml:"x,attr"`
	Y  float32 `xml:"y,attr"`
}

// Link mirrors a <link> element. Length is in meters, Freespeed in m/s.
type Link struct {
	ID        string  `xml:"id,attr"`
	From      string  `xml:"from,attr"`
	To        string  `xml:"to,attr"`
	Length    float64 `xml:"length,attr"`
	Freespeed float64 `xml:"freespeed,attr"`
	Capacity  float64 `xml:"capacity,attr"`
	Permlanes float64 `xml:"permlanes,attr"`
}

// ReadNetworkFile reads and decodes a MATSim network file.
func ReadNetworkFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMissingInput, err, "open network %s", path)
	}
	defer f.Close()
	return ReadNetwork(f)
}

// ReadNetwork decodes a MATSim network from r.
func ReadNetwork(r io.Reader) (*Network, error) {
	var net Network
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&net); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "decode network xml")
	}
	if len(net.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidNetwork, "network has no nodes")
	}
	return &net, nil
}
