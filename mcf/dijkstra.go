package mcf

import (
	"container/heap"

	"github.com/katalvlaran/cargodist/component"
)

// dijkstra grows one path tree from source over c, grading paths with anno.
// It returns one path per node, indexed by NodeID; unreached nodes keep a
// disconnected path.
//
// With createNew set, any edge may be used, but its capacity is shrunk to
// short_path_saturation percent (at least 1). Without it, only edges that
// already carry flow of source's tree are used, at face value.
//
// Complexity: O((V + E) log V) heap operations per run.
func dijkstra(c *component.Component, source component.NodeID, anno annotation, createNew bool) []component.PathID {
	// 1) One path per node; the source is the root.
	size := c.Size()
	paths := make([]component.PathID, size)
	for node := 0; node < size; node++ {
		paths[node] = c.NewPath(component.NodeID(node), component.NodeID(node) == source)
	}

	// 2) Every node starts queued, ordered by its annotation.
	r := &runner{
		c:         c,
		source:    source,
		anno:      anno,
		createNew: createNew,
		sat:       c.Settings().ShortPathSaturation,
		paths:     paths,
	}
	r.init()

	// 3) Settle nodes best-first and relax their edges. A node whose path
	//    improves after it was settled is queued again.
	r.process()

	return paths
}

// runner holds the state of a single dijkstra run.
type runner struct {
	c         *component.Component
	source    component.NodeID
	anno      annotation
	createNew bool
	sat       int64
	paths     []component.PathID
	pq        pathQueue
}

func (r *runner) init() {
	n := len(r.paths)
	r.pq = pathQueue{
		r:     r,
		items: make([]component.NodeID, n),
		index: make([]int, n),
	}
	for i := 0; i < n; i++ {
		r.pq.items[i] = component.NodeID(i)
		r.pq.index[i] = i
	}
	heap.Init(&r.pq)
}

func (r *runner) process() {
	for r.pq.Len() > 0 {
		from := heap.Pop(&r.pq).(component.NodeID)
		for _, to := range r.c.Neighbors(from) {
			r.relax(from, to)
		}
	}
}

// relax tries to improve the path to `to` by going over `from`.
func (r *runner) relax(from, to component.NodeID) {
	if !r.createNew && !r.c.HasLegFlow(from, r.source, to) {
		return
	}

	e := r.c.Edge(from, to)
	capacity := e.Capacity
	if r.createNew {
		capacity = capacity * r.sat / 100
		if capacity == 0 {
			capacity = 1
		}
	}
	capacity -= e.Flow

	// Intermediate stops cost a little extra.
	distance := e.Distance + 1

	dest, base := r.paths[to], r.paths[from]
	if r.anno.isBetter(r.c.Path(dest), r.c.Path(base), capacity, distance) {
		r.c.Fork(dest, base, capacity, distance)
		r.pq.update(to)
	}
}

// pathQueue is an indexed min-heap of nodes, ordered by the annotation of
// their current path.
type pathQueue struct {
	r     *runner
	items []component.NodeID
	index []int // position of a node in items; -1 once popped
}

func (q pathQueue) Len() int { return len(q.items) }

func (q pathQueue) Less(i, j int) bool {
	x := q.r.c.Path(q.r.paths[q.items[i]])
	y := q.r.c.Path(q.r.paths[q.items[j]])

	return q.r.anno.before(x, y)
}

func (q pathQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.index[q.items[i]] = i
	q.index[q.items[j]] = j
}

func (q *pathQueue) Push(x any) {
	node := x.(component.NodeID)
	q.index[node] = len(q.items)
	q.items = append(q.items, node)
}

func (q *pathQueue) Pop() any {
	n := len(q.items) - 1
	node := q.items[n]
	q.items = q.items[:n]
	q.index[node] = -1

	return node
}

// update restores heap order after node's path changed, queueing it again
// if it had already been popped.
func (q *pathQueue) update(node component.NodeID) {
	if i := q.index[node]; i >= 0 {
		heap.Fix(q, i)

		return
	}
	heap.Push(q, node)
}
