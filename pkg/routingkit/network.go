// Package routingkit models the RoutingKit text-vector representation of a
// road network.
//
// A network is stored as five per-column files inside one directory: the
// adjacency array (first_out, head), the edge weights (travel_time), and the
// node coordinates (latitude, longitude). Each file holds one value per
// line. The ordering tools consume exactly these five files by name.
package routingkit

import "github.com/matzehuels/orderkit/pkg/errors"

// Attribute file names.
const (
	AttrHead       = "head"
	AttrTravelTime = "travel_time"
	AttrFirstOut   = "first_out"
	AttrLatitude   = "latitude"
	AttrLongitude  = "longitude"
)

// DefaultAttributes returns the canonical ordered attribute list. The order
// only fixes the processing sequence for reproducibility and log
// readability; it carries no semantic weight.
func DefaultAttributes() []string {
	return []string{AttrHead, AttrTravelTime, AttrFirstOut, AttrLatitude, AttrLongitude}
}

// Network is the adjacency-array (CSR) form of a road network.
//
// FirstOut has one entry per node plus a final sentinel equal to the edge
// count; the outgoing edges of node i occupy Head[FirstOut[i]:FirstOut[i+1]].
type Network struct {
	FirstOut   []uint32
	Head       []uint32
	TravelTime []uint32
	Latitude   []float32
	Longitude  []float32
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int {
	if len(n.FirstOut) == 0 {
		return 0
	}
	return len(n.FirstOut) - 1
}

// EdgeCount returns the number of edges.
func (n *Network) EdgeCount() int {
	return len(n.Head)
}

// Validate checks the structural consistency of the adjacency array.
func (n *Network) Validate() error {
	if len(n.FirstOut) == 0 {
		return errors.New(errors.ErrCodeInvalidNetwork, "first_out is empty")
	}
	nodes := n.NodeCount()
	edges := n.EdgeCount()

	if len(n.TravelTime) != edges {
		return errors.New(errors.ErrCodeInvalidNetwork,
			"travel_time has %d entries, want %d (one per edge)", len(n.TravelTime), edges)
	}
	if len(n.Latitude) != nodes || len(n.Longitude) != nodes {
		return errors.New(errors.ErrCodeInvalidNetwork,
			"coordinates have %d/%d entries, want %d (one per node)", len(n.Latitude), len(n.Longitude), nodes)
	}
	if n.FirstOut[0] != 0 {
		return errors.New(errors.ErrCodeInvalidNetwork, "first_out must start at 0, got %d", n.FirstOut[0])
	}
	for i := 1; i < len(n.FirstOut); i++ {
		if n.FirstOut[i] < n.FirstOut[i-1] {
			return errors.New(errors.ErrCodeInvalidNetwork,
				"first_out decreases at index %d (%d < %d)", i, n.FirstOut[i], n.FirstOut[i-1])
		}
	}
	if last := n.FirstOut[len(n.FirstOut)-1]; int(last) != edges {
		return errors.New(errors.ErrCodeInvalidNetwork,
			"first_out sentinel is %d, want edge count %d", last, edges)
	}
	for i, h := range n.Head {
		if int(h) >= nodes {
			return errors.New(errors.ErrCodeInvalidNetwork,
				"head[%d] = %d exceeds node count %d", i, h, nodes)
		}
	}
	return nil
}

// WriteVectors writes the five attribute files into dir, which must exist.
func (n *Network) WriteVectors(dir string) error {
	if err := n.Validate(); err != nil {
		return err
	}
	vectors := []struct {
		name  string
		write func(path string) error
	}{
		{AttrHead, func(p string) error { return writeUint32Vector(p, n.Head) }},
		{AttrTravelTime, func(p string) error { return writeUint32Vector(p, n.TravelTime) }},
		{AttrFirstOut, func(p string) error { return writeUint32Vector(p, n.FirstOut) }},
		{AttrLatitude, func(p string) error { return writeFloat32Vector(p, n.Latitude) }},
		{AttrLongitude, func(p string) error { return writeFloat32Vector(p, n.Longitude) }},
	}
	for _, v := range vectors {
		if err := v.write(vectorPath(dir, v.name)); err != nil {
			return err
		}
	}
	return nil
}
