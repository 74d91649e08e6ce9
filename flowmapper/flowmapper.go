// Package flowmapper turns the legs left behind by the flow solver into the
// per-node routing tables of a component.
//
// For a leg carrying flow f of origin o from node prev to node via:
//
//	via.Flows[o][via]  += f   // delivered at via unless passed on
//	prev.Flows[o][via] += f   // prev forwards to via
//	prev.Flows[o][prev] -= f  // ... instead of keeping it (prev != o)
//
// Summed over a path, every intermediate stop ends up forwarding the flow
// and only the last stop keeps it.
package flowmapper

import (
	"github.com/katalvlaran/cargodist/component"
)

// Map writes the flows of every leg into the nodes of c and then releases
// all legs. A component without legs is left untouched.
func Map(c *component.Component) {
	// 1) Translate legs in node order.
	for n := 0; n < c.Size(); n++ {
		prevID := component.NodeID(n)
		prevNode := c.Node(prevID)
		prev := prevNode.Station

		for _, leg := range c.Legs(prevID) {
			p := c.Path(leg)
			flow := p.Flow()
			if flow == 0 {
				continue
			}
			node := c.Node(p.Node())
			via := node.Station
			origin := c.Node(p.Origin()).Station
			if prev == via || via == origin {
				panic("flowmapper: leg loops back on itself")
			}

			node.Flows.Add(origin, via, flow)
			prevNode.Flows.Add(origin, via, flow)
			if prev != origin {
				prevNode.Flows.Add(origin, prev, -flow)
			}
		}
	}

	// 2) The legs are no longer needed.
	c.ReleasePaths()
}
