package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cargodist/linkgraph"
	"github.com/katalvlaran/cargodist/network"
	"github.com/katalvlaran/cargodist/scenario"
)

type runFlags struct {
	days        int
	workers     int64
	decay       bool
	metricsAddr string
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run the distribution for a number of days and print the flows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := g.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			return runScenario(cmd, log, sc, f)
		},
	}
	cmd.Flags().IntVar(&f.days, "days", 30, "number of days to simulate")
	cmd.Flags().Int64Var(&f.workers, "workers", -1, "override max_workers (-1 keeps the scenario's value)")
	cmd.Flags().BoolVar(&f.decay, "decay", false, "decay link statistics at the end of every day")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	return cmd
}

func runScenario(cmd *cobra.Command, log *slog.Logger, sc *scenario.Scenario, f *runFlags) error {
	if f.days < 0 {
		return fmt.Errorf("days must not be negative, got %d", f.days)
	}
	if f.workers >= 0 {
		sc.Settings.MaxWorkers = f.workers
	}

	net, err := sc.Build()
	if err != nil {
		return err
	}

	// 1) Metrics, if asked for.
	if f.metricsAddr != "" {
		stop := serveMetrics(log, f.metricsAddr)
		defer stop()
	}

	// 2) Drive the scheduler tick by tick.
	s := sc.Settings
	sch := linkgraph.NewScheduler(net, &s, linkgraph.WithLogger(log))
	log.Info("running scenario",
		"stations", net.PoolSize(), "cargos", sc.CargoIDs(), "days", f.days)
	for day := 0; day < f.days; day++ {
		for t := uint64(0); t < linkgraph.DayTicks; t++ {
			sch.OnTick(uint64(day)*linkgraph.DayTicks+t, linkgraph.Date(day))
		}
		// Nothing refreshes the links, so they fade out.
		if f.decay {
			net.RunAverages()
		}
	}
	sch.Reset(linkgraph.Date(f.days))

	// 3) Print what the stations ended up with.
	out, err := yaml.Marshal(buildReport(net, sc.CargoIDs(), f.days))
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)

	return err
}

// serveMetrics starts a /metrics endpoint and returns a function stopping it.
func serveMetrics(log *slog.Logger, addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("metrics server shutdown", "error", err)
		}
	}
}

// report is the YAML document run prints.
type report struct {
	Days   int           `yaml:"days"`
	Cargos []cargoReport `yaml:"cargos"`
}

type cargoReport struct {
	Cargo    network.CargoID `yaml:"cargo"`
	Links    []linkEntry     `yaml:"links"`
	Stations []stationFlows  `yaml:"stations"`
}

type linkEntry struct {
	From     network.StationID `yaml:"from"`
	To       network.StationID `yaml:"to"`
	Capacity int64             `yaml:"capacity"`
}

type stationFlows struct {
	ID    network.StationID `yaml:"id"`
	Name  string            `yaml:"name,omitempty"`
	Flows []flowEntry       `yaml:"flows"`
}

type flowEntry struct {
	Origin network.StationID `yaml:"origin"`
	Via    network.StationID `yaml:"via"`
	Amount int64             `yaml:"amount"`
}

// buildReport lists the remaining links and every station with a non-empty
// flow table, per cargo.
func buildReport(net *network.Network, cargos []network.CargoID, days int) report {
	r := report{Days: days}
	for _, c := range cargos {
		cr := cargoReport{Cargo: c, Links: []linkEntry{}, Stations: []stationFlows{}}
		for _, st := range net.Stations() {
			for _, to := range st.Cargo(c).SortedLinks() {
				cr.Links = append(cr.Links, linkEntry{From: st.ID, To: to, Capacity: net.Link(c, st.ID, to).Capacity()})
			}
			flows := st.Cargo(c).Flows
			if len(flows) == 0 {
				continue
			}
			sf := stationFlows{ID: st.ID, Name: st.Name}
			for _, origin := range flows.Origins() {
				for _, via := range flows.Vias(origin) {
					sf.Flows = append(sf.Flows, flowEntry{Origin: origin, Via: via, Amount: flows.Get(origin, via)})
				}
			}
			cr.Stations = append(cr.Stations, sf)
		}
		r.Cargos = append(r.Cargos, cr)
	}

	return r
}
