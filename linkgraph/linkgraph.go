package linkgraph

import (
	"log/slog"
	"strconv"

	"golang.org/x/sync/semaphore"

	"github.com/katalvlaran/cargodist/component"
	"github.com/katalvlaran/cargodist/network"
	"github.com/katalvlaran/cargodist/settings"
)

// LinkGraph is the persistent distribution state of one cargo.
type LinkGraph struct {
	cargo    network.CargoID
	net      *network.Network
	settings *settings.LinkGraph // live; copied into every new component

	// currentComponentID is the ID of the last created component. Its parity
	// tells stations seen in this sweep from stations seen in the last one.
	currentComponentID network.ComponentID
	// currentStationID is the partitioning cursor.
	currentStationID network.StationID

	jobs     []*Job // FIFO; join order == creation order
	handlers []Handler
	workers  *semaphore.Weighted
	logger   *slog.Logger
	label    string
}

// New creates the link graph for cargo over net. s is read whenever a
// component is created or jobs are joined, so changes to it take effect for
// later components.
func New(cargo network.CargoID, net *network.Network, s *settings.LinkGraph, opts ...Option) *LinkGraph {
	if int(cargo) >= network.NumCargo {
		panic("linkgraph: cargo ID out of range")
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &LinkGraph{
		cargo:              cargo,
		net:                net,
		settings:           s,
		currentComponentID: 1,
		handlers:           o.Handlers,
		workers:            o.Workers,
		logger:             o.Logger.With("cargo", cargo),
		label:              strconv.Itoa(int(cargo)),
	}
}

// Cargo returns the cargo this link graph distributes.
func (g *LinkGraph) Cargo() network.CargoID { return g.cargo }

// Jobs returns the outstanding jobs in join order.
func (g *LinkGraph) Jobs() []*Job {
	out := make([]*Job, len(g.jobs))
	copy(out, g.jobs)

	return out
}

// NextComponent looks for the next station not covered in the current sweep
// and spawns a job for its component. It walks the pool at most once and
// reports whether a job was spawned.
func (g *LinkGraph) NextComponent(today Date) bool {
	poolSize := g.net.PoolSize()
	if poolSize == 0 {
		return false
	}
	if int(g.currentStationID) >= poolSize {
		g.currentStationID = network.StationID(poolSize - 1)
	}

	// 1) Step back over holes so the lap below ends on a real station.
	for !g.net.IsValidID(g.currentStationID) && g.currentStationID > 0 {
		g.currentStationID--
	}
	last := g.currentStationID

	for {
		// 2) A station qualifies if it was not seen in this sweep and has links.
		if st := g.net.Station(g.currentStationID); st != nil {
			ge := st.Cargo(g.cargo)
			if (uint32(ge.LastComponent)+uint32(g.currentComponentID))%2 != 0 && ge.HasLinks() {
				g.currentComponentID += 2
				g.createComponent(st, today)

				return true
			}
		}

		// 3) Wrapping around starts a new sweep with flipped parity.
		g.currentStationID++
		if int(g.currentStationID) == poolSize {
			g.currentStationID = 0
			if g.currentComponentID%2 == 0 {
				g.currentComponentID = 1
			} else {
				g.currentComponentID = 0
			}
		}
		if g.currentStationID == last {
			return false
		}
	}
}

// createComponent copies first's connected part of the network into a new
// component and spawns its job.
func (g *LinkGraph) createComponent(first *network.Station, today Date) {
	c := component.New(g.cargo, g.currentComponentID, *g.settings, g.net.MaxDistance())
	w := &walker{
		g:     g,
		c:     c,
		index: make(map[network.StationID]component.NodeID),
	}
	w.enqueue(first)
	g.currentStationID = first.ID + 1
	w.loop()

	// Distances for every pair, once the node set is complete.
	c.CalculateDistances()
	componentNodes.Observe(float64(c.Size()))

	g.spawn(c, today+Date(c.Settings().RecalcInterval), today)
}

// walker is the breadth-first search building a component.
type walker struct {
	g     *LinkGraph
	c     *component.Component
	queue []*network.Station
	index map[network.StationID]component.NodeID
}

// enqueue marks st as part of the component, adds its node and queues it.
func (w *walker) enqueue(st *network.Station) component.NodeID {
	ge := st.Cargo(w.g.cargo)
	ge.LastComponent = w.c.ID()
	node := w.c.AddNode(st.ID, st.Pos, ge.Supply, ge.Acceptance)
	w.index[st.ID] = node
	w.queue = append(w.queue, st)

	return node
}

func (w *walker) loop() {
	for len(w.queue) > 0 {
		st := w.queue[0]
		w.queue = w.queue[1:]
		w.visitLinks(st)
	}
}

// visitLinks adds an edge for every link of source to a valid station,
// queueing stations seen for the first time. Links are walked in ascending
// target order.
func (w *walker) visitLinks(source *network.Station) {
	from := w.index[source.ID]
	ge := source.Cargo(w.g.cargo)
	for _, targetID := range ge.SortedLinks() {
		target := w.g.net.Station(targetID)
		if target == nil {
			continue
		}
		to, seen := w.index[targetID]
		if !seen {
			to = w.enqueue(target)
		}
		// A link whose average rounds down to nothing still connects.
		capacity := max(ge.Links[targetID].Capacity(), 1)
		w.c.AddEdge(from, to, capacity)
	}
}

// spawn starts a job for c and queues it.
func (g *LinkGraph) spawn(c *component.Component, joinDate, today Date) {
	j := NewJob(c, joinDate, g.handlers)
	g.logger.Debug("new job",
		"component", c.ID(), "nodes", c.Size(), "join_date", joinDate, "date", today)
	j.Spawn(g.workers)
	if !j.Async() {
		g.logger.Debug("no worker slot, ran job inline", "component", c.ID())
	}
	g.jobs = append(g.jobs, j)
	jobsOutstanding.WithLabelValues(g.label).Set(float64(len(g.jobs)))
}

// Join reaps jobs from the front of the queue that are due, committing their
// flows to the stations. It stops at the first job that is not due yet.
// A join date further away than one recalculation interval counts as due.
// Returns the number of jobs joined.
func (g *LinkGraph) Join(today Date) int {
	joined := 0
	interval := Date(g.settings.RecalcInterval)
	for len(g.jobs) > 0 {
		j := g.jobs[0]
		if j.JoinDate() > today && j.JoinDate() <= today+interval {
			break
		}
		g.release(j, today)
		g.jobs = g.jobs[1:]
		joined++
	}
	jobsOutstanding.WithLabelValues(g.label).Set(float64(len(g.jobs)))

	return joined
}

// release joins j and commits its flows.
func (g *LinkGraph) release(j *Job, today Date) {
	j.Join()
	g.commit(j.Component())
	jobsJoined.Inc()
	g.logger.Debug("removing job",
		"component", j.Component().ID(), "join_date", j.JoinDate(), "date", today)
}

// commit replaces the flows of every station of c that still exists. The
// stations get their own copies; the component may still be read afterwards.
func (g *LinkGraph) commit(c *component.Component) {
	for n := 0; n < c.Size(); n++ {
		node := c.Node(component.NodeID(n))
		st := g.net.Station(node.Station)
		if st == nil {
			continue
		}
		st.Cargo(g.cargo).Flows = node.Flows.Clone()
	}
}

// Restore queues an already built component with an explicit join date, as
// when resuming a saved state. Its stations are marked as seen.
func (g *LinkGraph) Restore(c *component.Component, joinDate, today Date) {
	if c.Cargo() != g.cargo {
		panic("linkgraph: restoring a component of another cargo")
	}
	for n := 0; n < c.Size(); n++ {
		if st := g.net.Station(c.Node(component.NodeID(n)).Station); st != nil {
			st.Cargo(g.cargo).LastComponent = c.ID()
		}
	}
	g.spawn(c, joinDate, today)
}

// Clear waits for every job and drops it without committing, then resets
// the cursor.
func (g *LinkGraph) Clear(today Date) {
	for _, j := range g.jobs {
		j.Join()
		g.logger.Debug("dropping job",
			"component", j.Component().ID(), "join_date", j.JoinDate(), "date", today)
	}
	g.jobs = nil
	g.currentComponentID = 1
	g.currentStationID = 0
	jobsOutstanding.WithLabelValues(g.label).Set(0)
}
