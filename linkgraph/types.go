// Package linkgraph drives cargo distribution over a station network.
//
// One LinkGraph exists per cargo. On every spawn tick it walks its cursor
// through the station pool until it finds a station not yet covered in the
// current sweep, copies the station's connected component into a
// component.Component and starts a Job computing it. On every join tick it
// reaps finished jobs in creation order and commits their flows to the
// stations.
//
// A Scheduler owns the link graphs of all cargos and maps the host's tick
// counter onto spawn and join events.
//
// Concurrency:
//
//   - The network and every LinkGraph are used from one goroutine only.
//   - Each Job runs on at most one goroutine and touches only its component.
//   - Worker slots are bounded by a weighted semaphore; when none is free the
//     job runs inline in the caller instead.
package linkgraph

import (
	"log/slog"
	"slices"

	"golang.org/x/sync/semaphore"

	"github.com/katalvlaran/cargodist/component"
	"github.com/katalvlaran/cargodist/demands"
	"github.com/katalvlaran/cargodist/flowmapper"
	"github.com/katalvlaran/cargodist/mcf"
)

// Date is a day number of the host simulation.
type Date int32

// Handler is one stage of the job pipeline. Handlers are stateless; all
// per-run state lives in the component.
type Handler func(c *component.Component)

// defaultHandlers is built once and never modified.
var defaultHandlers = []Handler{
	demands.Calculate,
	mcf.FirstPass,
	mcf.SecondPass,
	flowmapper.Map,
}

// DefaultHandlers returns the standard pipeline: demand calculation, both
// flow passes, flow mapping. The order is significant.
func DefaultHandlers() []Handler {
	return slices.Clone(defaultHandlers)
}

// Options configures a LinkGraph or Scheduler.
type Options struct {
	// Logger receives job lifecycle events at debug level.
	Logger *slog.Logger

	// Handlers is the pipeline every job runs.
	Handlers []Handler

	// Workers bounds concurrently running jobs. nil means no bound.
	Workers *semaphore.Weighted
}

// Option is a functional option for New and NewScheduler.
type Option func(*Options)

// DefaultOptions returns the default logger, the default pipeline and no
// worker bound.
func DefaultOptions() Options {
	return Options{
		Logger:   slog.Default(),
		Handlers: DefaultHandlers(),
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithHandlers replaces the job pipeline.
func WithHandlers(hs ...Handler) Option {
	return func(o *Options) {
		o.Handlers = slices.Clone(hs)
	}
}

// WithWorkers bounds concurrently running jobs by the given semaphore.
func WithWorkers(sem *semaphore.Weighted) Option {
	return func(o *Options) {
		o.Workers = sem
	}
}
