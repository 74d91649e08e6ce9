package linkgraph

import (
	"golang.org/x/sync/semaphore"

	"github.com/katalvlaran/cargodist/network"
	"github.com/katalvlaran/cargodist/settings"
)

// Tick schedule within a day.
const (
	// DayTicks is the number of ticks per day.
	DayTicks = 74
	// SpawnTick offsets the tick at which new components are spawned.
	SpawnTick = 58
	// JoinTick offsets the tick at which finished jobs are joined.
	JoinTick = 21
)

// Scheduler owns the link graphs of all cargos and drives them from the
// host's tick counter.
type Scheduler struct {
	settings *settings.LinkGraph
	graphs   [network.NumCargo]*LinkGraph
}

// NewScheduler creates one link graph per cargo. Unless WithWorkers is given,
// the graphs share a worker bound of s.MaxWorkers (none if 0).
func NewScheduler(net *network.Network, s *settings.LinkGraph, opts ...Option) *Scheduler {
	o := DefaultOptions()
	if s.MaxWorkers > 0 {
		o.Workers = semaphore.NewWeighted(s.MaxWorkers)
	}
	for _, opt := range opts {
		opt(&o)
	}
	shared := func(dst *Options) { *dst = o }

	sch := &Scheduler{settings: s}
	for c := range sch.graphs {
		sch.graphs[c] = New(network.CargoID(c), net, s, shared)
	}

	return sch
}

// Graph returns the link graph of cargo.
func (s *Scheduler) Graph(cargo network.CargoID) *LinkGraph { return s.graphs[cargo] }

// IsSpawnTick reports whether components are spawned on tick.
func IsSpawnTick(tick uint64) bool { return (tick+SpawnTick)%DayTicks == 0 }

// IsJoinTick reports whether jobs are joined on tick.
func IsJoinTick(tick uint64) bool { return (tick+JoinTick)%DayTicks == 0 }

// OnTick spawns or joins for every cargo due on date. A cargo is due when
// (date + cargo) is a multiple of the recalculation interval.
func (s *Scheduler) OnTick(tick uint64, date Date) {
	spawn, join := IsSpawnTick(tick), IsJoinTick(tick)
	if !spawn && !join {
		return
	}
	interval := Date(s.settings.RecalcInterval)
	for c, g := range s.graphs {
		if (date+Date(c))%interval != 0 {
			continue
		}
		if spawn {
			g.NextComponent(date)
		} else {
			g.Join(date)
		}
	}
}

// Reset clears every link graph.
func (s *Scheduler) Reset(today Date) {
	for _, g := range s.graphs {
		g.Clear(today)
	}
}
