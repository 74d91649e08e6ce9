package mcf

import (
	"math"

	"github.com/katalvlaran/cargodist/component"
)

// searched marks a node whose legs have been searched without finding a cycle.
const searched component.PathID = -2

// EliminateCycles removes circular flow from the legs of every origin and
// reports whether any was found.
//
// For each origin a depth-first search follows the origin's flow-bearing
// legs. stack[n] holds the leg by which the search left node n; reaching a
// node that is already on the stack closes a cycle, whose minimum flow is
// subtracted from every leg and edge around it.
func EliminateCycles(c *component.Component) bool {
	size := c.Size()
	stack := make([]component.PathID, size)
	found := false
	for origin := 0; origin < size; origin++ {
		for i := range stack {
			stack[i] = component.NoPath
		}
		o := component.NodeID(origin)
		found = eliminateCyclesFrom(c, stack, o, o) || found
	}

	return found
}

func eliminateCyclesFrom(c *component.Component, stack []component.PathID, origin, next component.NodeID) bool {
	switch stack[next] {
	case searched:
		return false

	case component.NoPath:
		found := false
		for _, leg := range c.Legs(next) {
			p := c.Path(leg)
			if p.Origin() != origin || p.Flow() <= 0 {
				continue
			}
			stack[next] = leg
			found = eliminateCyclesFrom(c, stack, origin, p.Node()) || found
		}
		// Whatever lies below a node where a cycle was cut may hold more
		// cycles, so only clean branches are marked as searched.
		if found {
			stack[next] = component.NoPath
		} else {
			stack[next] = searched
		}

		return found

	default:
		flow := cycleFlow(c, stack, next)
		if flow <= 0 {
			return false
		}
		eliminateCycle(c, stack, next, flow)

		return true
	}
}

// cycleFlow returns the minimum leg flow on the cycle through start.
func cycleFlow(c *component.Component, stack []component.PathID, start component.NodeID) int64 {
	flow := int64(math.MaxInt64)
	node := start
	for {
		p := c.Path(stack[node])
		flow = min(flow, p.Flow())
		node = p.Node()
		if node == start {
			return flow
		}
	}
}

// eliminateCycle subtracts flow from every leg and edge of the cycle through start.
func eliminateCycle(c *component.Component, stack []component.PathID, start component.NodeID, flow int64) {
	node := start
	for {
		leg := stack[node]
		next := c.Path(leg).Node()
		c.ReduceFlow(leg, flow)
		c.Edge(node, next).Flow -= flow
		node = next
		if node == start {
			return
		}
	}
}
