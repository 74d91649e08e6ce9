package component

import "math"

// PathID indexes a path in the component's arena.
type PathID int32

// NoPath marks "no path", e.g. the parent of a tree root.
const NoPath PathID = -1

// Path sentinels.
const (
	// InfiniteDistance is the distance of a node no path reaches.
	InfiniteDistance int64 = math.MaxInt64

	// InfiniteCapacity is the capacity of a tree root.
	InfiniteCapacity int64 = math.MaxInt64

	// DisconnectedCapacity is the capacity of a node no path reaches.
	DisconnectedCapacity int64 = math.MinInt64
)

// Path is one leg of a tree rooted at a source node: the route from the
// source to Node, reached over Parent.
//
// During a solver run the tree is linked by Parent. Legs that received flow
// are also registered with their parent's node, keyed by origin and next
// hop; they outlive the run and are consumed by the flow mapper.
type Path struct {
	node        NodeID
	origin      NodeID
	parent      PathID
	distance    int64
	capacity    int64
	flow        int64
	numChildren int
	live        bool
}

// Node returns the node the path leads to.
func (p Path) Node() NodeID { return p.node }

// Origin returns the source node of the tree the path belongs to.
func (p Path) Origin() NodeID { return p.origin }

// Parent returns the leg this path was forked from, or NoPath.
func (p Path) Parent() PathID { return p.parent }

// Distance returns the running distance from the origin.
func (p Path) Distance() int64 { return p.distance }

// Capacity returns the bottleneck capacity from the origin.
func (p Path) Capacity() int64 { return p.capacity }

// Flow returns the flow assigned to the path.
func (p Path) Flow() int64 { return p.flow }

// NumChildren returns how many paths are forked from this one.
func (p Path) NumChildren() int { return p.numChildren }

// IsDisconnected reports whether no route reaches the path's node.
func (p Path) IsDisconnected() bool { return p.capacity == DisconnectedCapacity }

// NewPath allocates a path ending at node. A source path is the root of its
// own tree; any other path starts out unreached.
func (c *Component) NewPath(node NodeID, source bool) PathID {
	p := Path{
		node:     node,
		origin:   InvalidNode,
		parent:   NoPath,
		distance: InfiniteDistance,
		capacity: DisconnectedCapacity,
		live:     true,
	}
	if source {
		p.origin = node
		p.distance = 0
		p.capacity = InfiniteCapacity
	}

	if n := len(c.freeList); n > 0 {
		id := c.freeList[n-1]
		c.freeList = c.freeList[:n-1]
		c.paths[id] = p

		return id
	}
	c.paths = append(c.paths, p)

	return PathID(len(c.paths) - 1)
}

// Path returns a copy of the path with the given ID.
func (c *Component) Path(id PathID) Path { return c.paths[id] }

// FreePath detaches a path and returns its slot to the arena.
// Panics if the path is already free.
func (c *Component) FreePath(id PathID) {
	p := &c.paths[id]
	if !p.live {
		panic("component: path freed twice")
	}
	if p.parent != NoPath {
		c.UnFork(id)
	}
	p.live = false
	c.freeList = append(c.freeList, id)
}

// LivePaths returns the number of allocated paths.
func (c *Component) LivePaths() int { return len(c.paths) - len(c.freeList) }

// Fork makes base + (capacity, distance) the new route of path id.
func (c *Component) Fork(id, base PathID, capacity, distance int64) {
	p, b := &c.paths[id], &c.paths[base]
	p.capacity = min(b.capacity, capacity)
	p.distance = b.distance + distance
	if p.parent != base {
		if p.parent != NoPath {
			c.paths[p.parent].numChildren--
		}
		p.parent = base
		b.numChildren++
	}
	p.origin = b.origin
}

// UnFork detaches path id from its parent. Flow is not touched.
func (c *Component) UnFork(id PathID) {
	p := &c.paths[id]
	if p.parent == NoPath {
		return
	}
	c.paths[p.parent].numChildren--
	p.parent = NoPath
}

// AddFlow pushes f along the path back to its root and returns the amount
// actually pushed. If onlyPositive is set, every edge on the way limits the
// flow to its saturated capacity minus the flow already on it.
//
// Every leg that receives flow is registered with its parent's node. If the
// node already holds a leg for the same origin and next hop, the flow is
// merged into that leg instead.
func (c *Component) AddFlow(id PathID, f int64, onlyPositive bool) int64 {
	p := c.paths[id]
	if p.parent == NoPath {
		c.paths[id].flow += f

		return f
	}

	from := c.paths[p.parent].node
	e := &c.edges[from][p.node]
	if onlyPositive {
		usable := e.Capacity * c.settings.ShortPathSaturation / 100
		if usable <= e.Flow {
			return 0
		}
		f = min(f, usable-e.Flow)
	}

	f = c.AddFlow(p.parent, f, onlyPositive)
	if f > 0 {
		leg := c.registerLeg(from, id)
		c.paths[leg].flow += f
		e.Flow += f
	}

	return f
}

// ReduceFlow lowers the flow of a path. Panics if that would go negative.
func (c *Component) ReduceFlow(id PathID, f int64) {
	p := &c.paths[id]
	if f > p.flow {
		panic("component: path flow would become negative")
	}
	p.flow -= f
}

// registerLeg records path id as a leg departing from node and returns the
// leg holding its flow, which is an older leg with the same key if one exists.
func (c *Component) registerLeg(node NodeID, id PathID) PathID {
	p := c.paths[id]
	n := &c.nodes[node]
	key := legKey{origin: p.origin, via: p.node}
	if leg, ok := n.legIndex[key]; ok {
		return leg
	}
	n.legIndex[key] = id
	n.legs = append(n.legs, id)

	return id
}

// Legs returns the legs departing from node in registration order.
func (c *Component) Legs(node NodeID) []PathID {
	out := make([]PathID, len(c.nodes[node].legs))
	copy(out, c.nodes[node].legs)

	return out
}

// Leg returns the leg departing from node for origin and next hop via.
func (c *Component) Leg(node, origin, via NodeID) (PathID, bool) {
	id, ok := c.nodes[node].legIndex[legKey{origin: origin, via: via}]

	return id, ok
}

// HasLegFlow reports whether node routes flow of origin on to via.
func (c *Component) HasLegFlow(node, origin, via NodeID) bool {
	id, ok := c.Leg(node, origin, via)

	return ok && c.paths[id].flow > 0
}

// ReleasePaths drops every leg and resets the arena.
func (c *Component) ReleasePaths() {
	for i := range c.nodes {
		c.nodes[i].legs = nil
		clear(c.nodes[i].legIndex)
	}
	c.paths = c.paths[:0]
	c.freeList = c.freeList[:0]
}
