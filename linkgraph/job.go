package linkgraph

import (
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/katalvlaran/cargodist/component"
)

// Job computes one component. Its lifecycle is created → running → joined;
// after Join the component must only be read.
type Job struct {
	component *component.Component
	joinDate  Date
	handlers  []Handler
	done      chan struct{}
	async     bool
	spawned   bool
}

// NewJob creates a job for c that is due on joinDate.
func NewJob(c *component.Component, joinDate Date, handlers []Handler) *Job {
	return &Job{
		component: c,
		joinDate:  joinDate,
		handlers:  handlers,
		done:      make(chan struct{}),
	}
}

// Component returns the job's component.
func (j *Job) Component() *component.Component { return j.component }

// JoinDate returns the date the job is due.
func (j *Job) JoinDate() Date { return j.joinDate }

// Async reports whether the job ran on its own goroutine.
func (j *Job) Async() bool { return j.async }

// Done reports whether the pipeline has finished, without blocking.
func (j *Job) Done() bool {
	select {
	case <-j.done:
		return true
	default:
		return false
	}
}

// Spawn starts the pipeline. If slots is nil or a slot can be taken the
// pipeline runs on a new goroutine; otherwise it runs to completion before
// Spawn returns. Spawning twice panics.
func (j *Job) Spawn(slots *semaphore.Weighted) {
	if j.spawned {
		panic("linkgraph: job spawned twice")
	}
	j.spawned = true

	if slots == nil || slots.TryAcquire(1) {
		j.async = true
		jobsSpawned.WithLabelValues(modeAsync).Inc()
		go func() {
			defer close(j.done)
			if slots != nil {
				defer slots.Release(1)
			}
			j.run()
		}()

		return
	}

	jobsSpawned.WithLabelValues(modeInline).Inc()
	j.run()
	close(j.done)
}

// Join blocks until the pipeline has finished. It may be called any number
// of times.
func (j *Job) Join() {
	if !j.spawned {
		panic("linkgraph: joining a job that was never spawned")
	}
	<-j.done
}

func (j *Job) run() {
	start := time.Now()
	for _, h := range j.handlers {
		h(j.component)
	}
	jobDuration.Observe(time.Since(start).Seconds())
}
