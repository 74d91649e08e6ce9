package linkgraph_test

import (
	"fmt"

	"github.com/katalvlaran/cargodist/linkgraph"
	"github.com/katalvlaran/cargodist/network"
	"github.com/katalvlaran/cargodist/settings"
)

// ExampleLinkGraph_line routes a mine's output through a junction to a plant.
func ExampleLinkGraph_line() {
	// 1) Mine → Junction → Plant, 20 units a month on each link.
	net := network.New(16, 16)
	mine, _ := net.AddStation("Mine", network.Position{X: 0})
	junction, _ := net.AddStation("Junction", network.Position{X: 5})
	plant, _ := net.AddStation("Plant", network.Position{X: 10})
	mine.Cargo(0).Supply = 10
	plant.Cargo(0).Acceptance = true
	_, _ = net.AddLinkMonthly(0, mine.ID, junction.ID, 20)
	_, _ = net.AddLinkMonthly(0, junction.ID, plant.ID, 20)

	// 2) One-way traffic, coarse steps.
	s := settings.Default()
	s.Accuracy = 1
	s.Distribution = settings.Asymmetric
	g := linkgraph.New(0, net, &s)

	// 3) The first call only aligns the sweep; the second spawns.
	for !g.NextComponent(0) {
	}
	g.Join(linkgraph.Date(s.RecalcInterval))

	// 4) Print each station's table.
	for _, st := range net.Stations() {
		flows := st.Cargo(0).Flows
		for _, origin := range flows.Origins() {
			for _, via := range flows.Vias(origin) {
				fmt.Printf("%s: from %d via %d: %d\n", st.Name, origin, via, flows.Get(origin, via))
			}
		}
	}
	// Output:
	// Mine: from 0 via 1: 10
	// Junction: from 0 via 2: 10
	// Plant: from 0 via 2: 10
}
