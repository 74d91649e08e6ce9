package network

import "sort"

// GoodsEntry is the per-cargo state of a station.
type GoodsEntry struct {
	// Supply is the amount produced at the station since the last period.
	Supply int64

	// Acceptance reports whether the station accepts the cargo.
	Acceptance bool

	// Links maps a destination station to the statistic of the link to it.
	Links map[StationID]*LinkStat

	// LastComponent is the ID of the component this station last belonged to.
	LastComponent ComponentID

	// Flows is the routing table committed by the last joined job.
	Flows FlowMap
}

// HasLinks reports whether the entry has at least one outgoing link.
func (g *GoodsEntry) HasLinks() bool { return len(g.Links) > 0 }

// SortedLinks returns the link destinations in ascending order.
func (g *GoodsEntry) SortedLinks() []StationID {
	out := make([]StationID, 0, len(g.Links))
	for id := range g.Links {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Station is one stop of the transport network.
type Station struct {
	ID    StationID
	Name  string
	Pos   Position
	Goods [NumCargo]GoodsEntry
}

func newStation(id StationID, name string, pos Position) *Station {
	st := &Station{ID: id, Name: name, Pos: pos}
	for c := range st.Goods {
		st.Goods[c] = GoodsEntry{
			Links:         make(map[StationID]*LinkStat),
			LastComponent: InvalidComponent,
			Flows:         make(FlowMap),
		}
	}

	return st
}

// Cargo returns the goods entry for cargo. Panics if cargo is out of range.
func (s *Station) Cargo(cargo CargoID) *GoodsEntry {
	if int(cargo) >= NumCargo {
		panic("network: cargo ID out of range")
	}

	return &s.Goods[cargo]
}
