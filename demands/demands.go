// Package demands assigns transport demand to the edges of a component.
//
// Every node with supply is paired with every node accepting the cargo. For
// each pair a share of the supplier's production is booked as demand on the
// edge between them; the share shrinks with distance (demand_distance) and,
// in symmetric mode, a proportional amount of return demand (demand_size) is
// booked on the reverse edge. Suppliers and consumers are visited round
// robin, a little at a time (accuracy), until all supply is distributed.
//
// Degenerate components (no supply, no acceptors, a single node that is both)
// are left untouched.
package demands

import (
	"github.com/katalvlaran/cargodist/component"
	"github.com/katalvlaran/cargodist/settings"
)

// Calculate fills in Demand and UnsatisfiedDemand of c's edges and lowers the
// nodes' UndeliveredSupply accordingly.
func Calculate(c *component.Component) {
	// 1) Manual distribution never assigns demand.
	dt := c.Distribution()
	if dt == settings.Manual {
		return
	}

	// 2) Build the calculator from the component's settings snapshot.
	calc := newCalculator(c.Settings(), dt, c.MaxDistance())

	// 3) Distribute.
	calc.run(c)
}

// calculator holds the effective modifiers for one run.
type calculator struct {
	accuracy    int64
	modSize     int64 // 0 disables return demand
	modDist     int64 // already amplified above 100
	maxDistance int64
}

func newCalculator(s *settings.LinkGraph, dt settings.DistributionType, maxDistance int64) calculator {
	calc := calculator{
		accuracy:    s.Accuracy,
		modSize:     s.DemandSize,
		modDist:     s.DemandDistance,
		maxDistance: maxDistance,
	}
	if calc.modDist > 100 {
		over := calc.modDist - 100
		calc.modDist = 100 + over*over
	}
	if dt == settings.Asymmetric {
		calc.modSize = 0
	}

	return calc
}

// scaledDistance stretches distance around maxDistance by modDist.
func (calc *calculator) scaledDistance(distance int64) int64 {
	return calc.maxDistance - (calc.maxDistance-distance)*calc.modDist/100
}

// divisor returns how many portions a supplier's production is split into
// for a consumer at the given scaled distance.
func (calc *calculator) divisor(distance int64) int64 {
	d := calc.accuracy*(calc.modDist-100)/100 + calc.accuracy*distance/calc.maxDistance + 1
	if d <= 0 {
		panic("demands: non-positive divisor")
	}

	return d
}

// run is the round-robin distribution loop.
func (calc *calculator) run(c *component.Component) {
	// 1) Collect suppliers and consumers.
	var (
		supplies, demands []component.NodeID
		supplySum         int64
	)
	for id := component.NodeID(0); int(id) < c.Size(); id++ {
		n := c.Node(id)
		if n.Supply > 0 {
			supplies = append(supplies, id)
			supplySum += n.Supply
		}
		if n.Demand > 0 {
			demands = append(demands, id)
		}
	}
	if supplySum == 0 || len(demands) == 0 {
		return
	}

	numSupplies := int64(len(supplies))
	numDemands := int64(len(demands))
	demandPerNode := max(supplySum/numDemands, 1)
	var chance int64

	// 2) Pop a supplier and offer it to every current consumer once.
	for len(supplies) > 0 && len(demands) > 0 {
		fromID := supplies[0]
		supplies = supplies[1:]
		from := c.Node(fromID)

		for i := int64(0); i < numDemands; i++ {
			if len(demands) == 0 {
				panic("demands: consumer queue ran empty")
			}
			toID := demands[0]
			demands = demands[1:]

			// A supplier does not send to itself.
			if fromID == toID {
				if len(demands) == 0 && len(supplies) == 0 {
					return
				}
				demands = append(demands, toID)

				continue
			}

			to := c.Node(toID)
			forward := c.Edge(fromID, toID)
			backward := c.Edge(toID, fromID)

			// 3) Size of the candidate share.
			supply := from.Supply
			if calc.modSize > 0 {
				supply = max(1, supply*to.Supply*calc.modSize/100/demandPerNode)
			}

			divisor := calc.divisor(calc.scaledDistance(forward.Distance))

			var demandForw int64
			if divisor < supply {
				demandForw = supply / divisor
			} else if chance++; chance > calc.accuracy*numDemands*numSupplies {
				// Give up on a fair split and hand out single units.
				demandForw = 1
			}
			demandForw = min(demandForw, from.UndeliveredSupply)

			// 4) Return demand, bounded by what the consumer still has to give.
			if calc.modSize > 0 && from.Demand > 0 {
				demandBack := demandForw * calc.modSize / 100
				if demandBack > to.UndeliveredSupply {
					demandBack = to.UndeliveredSupply
					demandForw = demandBack * 100 / calc.modSize
				}
				backward.Demand += demandBack
				backward.UnsatisfiedDemand += demandBack
				to.UndeliveredSupply -= demandBack
			}

			forward.Demand += demandForw
			forward.UnsatisfiedDemand += demandForw
			from.UndeliveredSupply -= demandForw

			// 5) Requeue the consumer unless it has nothing left to return.
			if calc.modSize == 0 || to.UndeliveredSupply > 0 {
				demands = append(demands, toID)
			} else {
				numDemands--
			}

			if from.UndeliveredSupply == 0 {
				break
			}
		}

		if from.UndeliveredSupply != 0 {
			supplies = append(supplies, fromID)
		}
	}
}
