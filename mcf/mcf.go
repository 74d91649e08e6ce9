// Package mcf solves the multi-commodity flow problem of a component: it
// routes the demand assigned to every node pair over the component's links.
//
// The solver runs in two passes.
//
//   - FirstPass saturates the shortest paths first. New paths may be created,
//     but only up to short_path_saturation percent of each link's capacity.
//     Every pair gets at least one push even if no path has capacity left.
//     Cycles that appear in the flow of an origin are removed.
//   - SecondPass assigns whatever demand is left, ignoring capacity, and only
//     along paths FirstPass already used, widest first.
//
// Both passes push demand in slices of demand/accuracy, so lower accuracy
// means fewer, coarser iterations.
//
// The solution is left behind as legs registered with the nodes of the
// component (see component.Path), ready for the flow mapper.
package mcf

import "github.com/katalvlaran/cargodist/component"

// pushFlow pushes a slice of e's unsatisfied demand along path and returns
// the amount moved. With positiveCap set, the push stops at the saturated
// capacity of the path's links; otherwise the path may be overloaded.
func pushFlow(c *component.Component, e *component.Edge, path component.PathID, accuracy int64, positiveCap bool) int64 {
	if e.UnsatisfiedDemand <= 0 {
		panic("mcf: pushing flow without unsatisfied demand")
	}
	flow := min(max(e.Demand/accuracy, 1), e.UnsatisfiedDemand)
	flow = c.AddFlow(path, flow, positiveCap)
	e.UnsatisfiedDemand -= flow

	return flow
}

// cleanupPaths ends a dijkstra run. Legs that received flow are detached from
// the run's tree and kept; every other path of the run is freed, the root
// included.
func cleanupPaths(c *component.Component, source component.NodeID, paths []component.PathID) {
	for _, id := range paths {
		c.UnFork(id)
	}
	for node, id := range paths {
		if component.NodeID(node) == source || c.Path(id).Flow() == 0 {
			c.FreePath(id)
		}
	}
}

// FirstPass routes demand along the shortest paths with capacity left.
func FirstPass(c *component.Component) {
	size := c.Size()
	accuracy := c.Settings().Accuracy
	moreLoops := true

	for moreLoops {
		moreLoops = false

		for s := 0; s < size; s++ {
			source := component.NodeID(s)

			// 1) Saturate the shortest paths first.
			paths := dijkstra(c, source, DistanceAnnotation{}, true)

			for d := 0; d < size; d++ {
				e := c.Edge(source, component.NodeID(d))
				if e.UnsatisfiedDemand <= 0 {
					continue
				}
				p := c.Path(paths[d])

				// 2) Only push within capacity, except that a pair nothing
				//    was pushed for yet may use any connected path once.
				if p.Capacity() > 0 && pushFlow(c, e, paths[d], accuracy, true) > 0 {
					moreLoops = true
				} else if e.UnsatisfiedDemand == e.Demand && !p.IsDisconnected() {
					pushFlow(c, e, paths[d], accuracy, false)
				}
			}

			cleanupPaths(c, source, paths)
		}

		// 3) Nothing moved: cycles removed from the flow may free capacity.
		if !moreLoops {
			moreLoops = EliminateCycles(c)
		}
	}
}

// SecondPass assigns all remaining demand along existing paths, ignoring
// capacity. Pairs without a usable path keep their unsatisfied demand.
func SecondPass(c *component.Component) {
	size := c.Size()
	accuracy := c.Settings().Accuracy
	demandLeft := true

	for demandLeft {
		demandLeft = false

		for s := 0; s < size; s++ {
			source := component.NodeID(s)
			paths := dijkstra(c, source, CapacityAnnotation{}, false)

			for d := 0; d < size; d++ {
				e := c.Edge(source, component.NodeID(d))
				if e.UnsatisfiedDemand <= 0 || c.Path(paths[d]).IsDisconnected() {
					continue
				}
				pushFlow(c, e, paths[d], accuracy, false)
				if e.UnsatisfiedDemand > 0 {
					demandLeft = true
				}
			}

			cleanupPaths(c, source, paths)
		}
	}
}
