package mcf

import "github.com/katalvlaran/cargodist/component"

// annotation is the grading strategy of a Dijkstra run.
type annotation interface {
	// isBetter reports whether base extended by an edge of the given
	// capacity and distance beats the current path self.
	isBetter(self, base component.Path, capacity, distance int64) bool

	// before orders the priority queue. It must be a strict total order.
	before(x, y component.Path) bool
}

// DistanceAnnotation grades paths by distance, preferring paths that still
// have capacity left over those that do not.
type DistanceAnnotation struct{}

func (DistanceAnnotation) isBetter(self, base component.Path, capacity, distance int64) bool {
	// 1) A disconnected path is worse than anything; if both are, keep self.
	if base.Distance() == component.InfiniteDistance {
		return false
	}
	if self.Distance() == component.InfiniteDistance {
		return true
	}

	// 2) Capacity left beats no capacity left.
	if capacity > 0 && base.Capacity() > 0 {
		if self.Capacity() > 0 {
			return base.Distance()+distance < self.Distance()
		}

		return true
	}
	if self.Capacity() > 0 {
		return false
	}

	// 3) Both out of capacity: plain distance.
	return base.Distance()+distance < self.Distance()
}

// before puts shorter paths first, lower node IDs first among equals.
func (DistanceAnnotation) before(x, y component.Path) bool {
	if x.Distance() != y.Distance() {
		return x.Distance() < y.Distance()
	}

	return x.Node() < y.Node()
}

// CapacityAnnotation grades paths by bottleneck capacity, shorter first
// among equals.
type CapacityAnnotation struct{}

func (CapacityAnnotation) isBetter(self, base component.Path, capacity, distance int64) bool {
	minCap := min(base.Capacity(), capacity)
	if minCap == self.Capacity() {
		if base.Distance() != component.InfiniteDistance {
			return base.Distance()+distance < self.Distance()
		}

		return false
	}

	return minCap > self.Capacity()
}

// before puts bigger capacities first, higher node IDs first among equals.
func (CapacityAnnotation) before(x, y component.Path) bool {
	if x.Capacity() != y.Capacity() {
		return x.Capacity() > y.Capacity()
	}

	return x.Node() > y.Node()
}
