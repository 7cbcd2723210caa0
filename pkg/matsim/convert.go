package matsim

import (
	"sort"
	"strings"

	"github.com/matzehuels/orderkit/pkg/errors"
	"github.com/matzehuels/orderkit/pkg/routingkit"
)

// ToRoutingKit converts a MATSim network into the RoutingKit adjacency
// array.
//
// Nodes are sorted by case-folded id and links by their from-node's
// position, so node indices (and therefore head entries) are deterministic
// regardless of the order the XML listed them in. The travel time of a link
// is length/freespeed, truncated to whole seconds. Longitude takes the
// node's x coordinate and latitude its y coordinate.
func ToRoutingKit(net *Network) (*routingkit.Network, error) {
	if err := checkNetwork(net); err != nil {
		return nil, err
	}

	nodes := append([]Node(nil), net.Nodes...)
	sort.SliceStable(nodes, func(i, j int) bool {
		return strings.ToLower(nodes[i].ID) < strings.ToLower(nodes[j].ID)
	})

	index := make(map[string]uint32, len(nodes))
	for i, node := range nodes {
		index[node.ID] = uint32(i)
	}

	// Sorting links by their from-node's position makes the outgoing edges
	// of each node one contiguous run, in node iteration order.
	links := append([]Link(nil), net.Links...)
	sort.SliceStable(links, func(i, j int) bool {
		return index[links[i].From] < index[links[j].From]
	})

	rk := &routingkit.Network{
		FirstOut:   make([]uint32, 0, len(nodes)+1),
		Head:       make([]uint32, 0, len(links)),
		TravelTime: make([]uint32, 0, len(links)),
		Latitude:   make([]float32, 0, len(nodes)),
		Longitude:  make([]float32, 0, len(nodes)),
	}

	next := 0
	for _, node := range nodes {
		rk.Longitude = append(rk.Longitude, node.X)
		rk.Latitude = append(rk.Latitude, node.Y)
		rk.FirstOut = append(rk.FirstOut, uint32(len(rk.Head)))

		for next < len(links) && links[next].From == node.ID {
			link := links[next]
			rk.Head = append(rk.Head, index[link.To])
			rk.TravelTime = append(rk.TravelTime, uint32(link.Length/link.Freespeed))
			next++
		}
	}
	rk.FirstOut = append(rk.FirstOut, uint32(len(rk.Head)))

	if err := rk.Validate(); err != nil {
		return nil, err
	}
	return rk, nil
}

// checkNetwork verifies that every link references existing nodes and has a
// positive freespeed.
func checkNetwork(net *Network) error {
	ids := make(map[string]bool, len(net.Nodes))
	for _, node := range net.Nodes {
		if node.ID == "" {
			return errors.New(errors.ErrCodeInvalidNetwork, "node without id")
		}
		if ids[node.ID] {
			return errors.New(errors.ErrCodeInvalidNetwork, "duplicate node id %q", node.ID)
		}
		ids[node.ID] = true
	}
	for _, link := range net.Links {
		if !ids[link.From] {
			return errors.New(errors.ErrCodeInvalidNetwork, "link %q references unknown from-node %q", link.ID, link.From)
		}
		if !ids[link.To] {
			return errors.New(errors.ErrCodeInvalidNetwork, "link %q references unknown to-node %q", link.ID, link.To)
		}
		if link.Freespeed <= 0 {
			return errors.New(errors.ErrCodeInvalidNetwork, "link %q has non-positive freespeed %v", link.ID, link.Freespeed)
		}
		if link.Length < 0 {
			return errors.New(errors.ErrCodeInvalidNetwork, "link %q has negative length %v", link.ID, link.Length)
		}
	}
	return nil
}
