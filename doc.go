// Package cargodist computes how cargo should travel through a transport
// network.
//
// For every cargo type the engine periodically takes one connected part of
// the station network, works out how much each supplying station should send
// to each accepting station, routes that demand over the available links and
// writes the result back as per-station routing tables:
//
//	flows[origin][via] -> amount
//
// A vehicle loading cargo at a station looks up where cargo of a given origin
// should go next.
//
// Packages, bottom-up:
//
//	movingavg/    moving average behind link capacity figures
//	network/      live stations, links and flow tables
//	settings/     tunables, YAML loading and validation
//	component/    the snapshot a job works on: nodes, edges, path arena
//	demands/      demand calculator
//	mcf/          two-pass multi-commodity flow solver
//	flowmapper/   turns solver paths into flow tables
//	linkgraph/    partitioning, jobs, scheduling, metrics
//	scenario/     YAML description of a whole network
//
// Quick start:
//
//	net := network.New(64, 64)
//	a, _ := net.AddStation("Mine", network.Position{X: 0, Y: 0})
//	b, _ := net.AddStation("Plant", network.Position{X: 20, Y: 4})
//	a.Cargo(0).Supply = 120
//	b.Cargo(0).Acceptance = true
//	net.AddLinkMonthly(0, a.ID, b.ID, 200)
//
//	s := settings.Default()
//	sch := linkgraph.NewScheduler(net, &s)
//	for tick := uint64(0); ; tick++ {
//		sch.OnTick(tick, linkgraph.Date(tick/linkgraph.DayTicks))
//	}
//
// The cargodist command runs a scenario file end to end.
package cargodist
