package linkgraph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// jobsSpawned counts spawned jobs by execution mode (async or inline).
	jobsSpawned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cargodist_jobs_spawned_total",
		Help: "Link graph jobs spawned, by execution mode",
	}, []string{"mode"})

	// jobsJoined counts joined and released jobs.
	jobsJoined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cargodist_jobs_joined_total",
		Help: "Link graph jobs joined",
	})

	// jobsOutstanding tracks queued jobs per cargo.
	jobsOutstanding = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cargodist_jobs_outstanding",
		Help: "Link graph jobs waiting to be joined, by cargo",
	}, []string{"cargo"})

	// jobDuration tracks how long the handler pipeline takes.
	jobDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cargodist_job_duration_seconds",
		Help:    "Handler pipeline duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	})

	// componentNodes tracks the size of created components.
	componentNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cargodist_component_nodes",
		Help:    "Number of nodes per link graph component",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
	})
)

const (
	modeAsync  = "async"
	modeInline = "inline"
)
