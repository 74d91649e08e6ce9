// Package component implements the snapshot of one connected part of the
// station network for one cargo, the unit of work every link graph job
// computes on.
//
// A Component is built once by the partitioner (AddNode, AddEdge,
// CalculateDistances) and then handed to exactly one job. From that point on
// nothing but the job's handlers touches it, so it needs no locking.
//
// Storage:
//
//   - Nodes live in a slice indexed by NodeID in discovery order.
//   - Edges live in a dense NodeID × NodeID matrix for O(1) lookup.
//   - Every node keeps an adjacency list of the edges that carry capacity,
//     so neighbour iteration costs O(out-degree) instead of O(n).
//   - Paths live in an arena owned by the component (see path.go).
package component

import (
	"math"

	"github.com/katalvlaran/cargodist/network"
	"github.com/katalvlaran/cargodist/settings"
)

// NodeID indexes a node inside one component.
type NodeID uint32

// InvalidNode marks "no node".
const InvalidNode NodeID = math.MaxUint32

// Node is one station's contribution to a cargo's graph.
type Node struct {
	// Supply is the amount produced at the station since the last period.
	Supply int64

	// UndeliveredSupply is the part of Supply not yet assigned as demand.
	// It only ever decreases and never drops below zero.
	UndeliveredSupply int64

	// Demand is 1 if the station accepts the cargo, 0 otherwise.
	Demand int64

	// Station is the real station this node stands for.
	Station network.StationID

	// Pos is the station's location, used for distances.
	Pos network.Position

	// Flows is the routing table produced by the flow mapper.
	Flows network.FlowMap

	legs     []PathID
	legIndex map[legKey]PathID
}

// legKey identifies the single leg a node may hold per origin and next hop.
type legKey struct {
	origin, via NodeID
}

// Edge is the directed link between two nodes of a component.
type Edge struct {
	// Distance is the Manhattan distance between the two stations.
	Distance int64

	// Capacity is the monthly capacity of the link; 0 if there is no link.
	Capacity int64

	// Demand is the amount the demand calculator wants moved along this pair.
	Demand int64

	// UnsatisfiedDemand is the part of Demand no flow has been found for yet.
	UnsatisfiedDemand int64

	// Flow is the amount the solver routed over this link.
	Flow int64
}

// Component is a self-contained copy of one connected part of the network.
type Component struct {
	cargo       network.CargoID
	id          network.ComponentID
	settings    settings.LinkGraph
	maxDistance int64

	nodes []Node
	edges [][]Edge   // edges[from][to]
	adj   [][]NodeID // adj[from]: targets with Capacity > 0, in insertion order

	paths    []Path
	freeList []PathID
}

// New creates an empty component. The settings are copied, so later changes
// to s do not reach the component.
func New(cargo network.CargoID, id network.ComponentID, s settings.LinkGraph, maxDistance int64) *Component {
	if maxDistance <= 0 {
		panic("component: max distance must be positive")
	}

	return &Component{
		cargo:       cargo,
		id:          id,
		settings:    s.Clone(),
		maxDistance: maxDistance,
	}
}

// Cargo returns the cargo this component is computed for.
func (c *Component) Cargo() network.CargoID { return c.cargo }

// ID returns the component's ID.
func (c *Component) ID() network.ComponentID { return c.id }

// Settings returns the settings snapshot taken at creation.
func (c *Component) Settings() *settings.LinkGraph { return &c.settings }

// Distribution returns the distribution type in effect for the component's cargo.
func (c *Component) Distribution() settings.DistributionType {
	return c.settings.DistributionFor(c.cargo)
}

// MaxDistance returns the upper bound on any distance in the component.
func (c *Component) MaxDistance() int64 { return c.maxDistance }

// Size returns the number of nodes.
func (c *Component) Size() int { return len(c.nodes) }

// AddNode appends a node for station st and returns its ID.
func (c *Component) AddNode(st network.StationID, pos network.Position, supply int64, accepts bool) NodeID {
	var demand int64
	if accepts {
		demand = 1
	}
	id := NodeID(len(c.nodes))
	c.nodes = append(c.nodes, Node{
		Supply:            supply,
		UndeliveredSupply: supply,
		Demand:            demand,
		Station:           st,
		Pos:               pos,
		Flows:             make(network.FlowMap),
		legIndex:          make(map[legKey]PathID),
	})

	// Grow the matrix by one row and one column.
	for i := range c.edges {
		c.edges[i] = append(c.edges[i], Edge{})
	}
	c.edges = append(c.edges, make([]Edge, len(c.nodes)))
	c.adj = append(c.adj, nil)

	return id
}

// AddEdge sets the capacity of the link from → to.
// Panics if from == to or capacity <= 0.
func (c *Component) AddEdge(from, to NodeID, capacity int64) {
	if from == to {
		panic("component: edge from a node to itself")
	}
	if capacity <= 0 {
		panic("component: edge without capacity")
	}
	e := &c.edges[from][to]
	if e.Capacity == 0 {
		c.adj[from] = append(c.adj[from], to)
	}
	e.Capacity = capacity
}

// CalculateDistances fills in the distance of every node pair.
func (c *Component) CalculateDistances() {
	for i := range c.nodes {
		for j := 0; j < i; j++ {
			d := network.DistanceManhattan(c.nodes[i].Pos, c.nodes[j].Pos)
			c.edges[i][j].Distance = d
			c.edges[j][i].Distance = d
		}
	}
}

// Node returns the node with the given ID. The pointer stays valid until the
// next AddNode.
func (c *Component) Node(id NodeID) *Node { return &c.nodes[id] }

// Edge returns the edge from → to. The pointer stays valid until the next AddNode.
func (c *Component) Edge(from, to NodeID) *Edge { return &c.edges[from][to] }

// Neighbors returns the targets of from's edges with capacity.
// The slice is shared; callers must not modify it.
func (c *Component) Neighbors(from NodeID) []NodeID { return c.adj[from] }
