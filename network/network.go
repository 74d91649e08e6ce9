package network

import "fmt"

// Network is a pool of stations on a map of SizeX × SizeY tiles.
// Removed stations leave holes; their IDs may be reused by AddStation.
type Network struct {
	sizeX, sizeY int64
	stations     []*Station // index == StationID; nil marks a hole
}

// New creates an empty network on a map of the given size.
func New(sizeX, sizeY int64) *Network {
	return &Network{sizeX: sizeX, sizeY: sizeY}
}

// MaxDistance returns an upper bound on DistanceManhattan for any two tiles of the map.
func (n *Network) MaxDistance() int64 { return n.sizeX + n.sizeY + 1 }

// PoolSize returns one past the highest station ID ever allocated.
func (n *Network) PoolSize() int { return len(n.stations) }

// IsValidID reports whether id refers to an existing station.
func (n *Network) IsValidID(id StationID) bool {
	return int(id) < len(n.stations) && n.stations[id] != nil
}

// Station returns the station with the given ID, or nil if it does not exist.
func (n *Network) Station(id StationID) *Station {
	if !n.IsValidID(id) {
		return nil
	}

	return n.stations[id]
}

// Stations returns all existing stations in ascending ID order.
func (n *Network) Stations() []*Station {
	out := make([]*Station, 0, len(n.stations))
	for _, st := range n.stations {
		if st != nil {
			out = append(out, st)
		}
	}

	return out
}

// AddStation places a new station in the first free slot.
func (n *Network) AddStation(name string, pos Position) (*Station, error) {
	for i, st := range n.stations {
		if st == nil {
			n.stations[i] = newStation(StationID(i), name, pos)

			return n.stations[i], nil
		}
	}
	if len(n.stations) >= MaxStations {
		return nil, ErrPoolFull
	}
	st := newStation(StationID(len(n.stations)), name, pos)
	n.stations = append(n.stations, st)

	return st, nil
}

// AddStationWithID places a new station at a specific ID, growing the pool
// with holes if needed.
func (n *Network) AddStationWithID(id StationID, name string, pos Position) (*Station, error) {
	if id == InvalidStation {
		return nil, fmt.Errorf("%w: id %d", ErrPoolFull, id)
	}
	if n.IsValidID(id) {
		return nil, fmt.Errorf("%w: id %d", ErrStationExists, id)
	}
	for len(n.stations) <= int(id) {
		n.stations = append(n.stations, nil)
	}
	n.stations[id] = newStation(id, name, pos)

	return n.stations[id], nil
}

// RemoveStation deletes a station and every link pointing at it.
func (n *Network) RemoveStation(id StationID) error {
	if !n.IsValidID(id) {
		return fmt.Errorf("%w: id %d", ErrStationNotFound, id)
	}
	n.stations[id] = nil
	for _, st := range n.stations {
		if st == nil {
			continue
		}
		for c := range st.Goods {
			delete(st.Goods[c].Links, id)
		}
	}

	return nil
}

// AddLink creates or refreshes the link from → to for cargo and adds
// capacity to it. A new link averages over the distance between the
// stations, but at least MinAverageLength days.
func (n *Network) AddLink(cargo CargoID, from, to StationID, capacity int64) (*LinkStat, error) {
	if int(cargo) >= NumCargo {
		return nil, fmt.Errorf("%w: %d", ErrBadCargo, cargo)
	}
	if from == to {
		return nil, fmt.Errorf("%w: station %d", ErrSelfLink, from)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCapacity, capacity)
	}
	src, dst := n.Station(from), n.Station(to)
	if src == nil {
		return nil, fmt.Errorf("%w: from %d", ErrStationNotFound, from)
	}
	if dst == nil {
		return nil, fmt.Errorf("%w: to %d", ErrStationNotFound, to)
	}

	links := src.Goods[cargo].Links
	ls, ok := links[to]
	if !ok {
		ls = NewLinkStat(DistanceManhattan(src.Pos, dst.Pos), 0, 0, 0)
		links[to] = ls
	}
	ls.Increase(capacity, 0)

	return ls, nil
}

// Link returns the link statistic from → to for cargo, or nil.
func (n *Network) Link(cargo CargoID, from, to StationID) *LinkStat {
	st := n.Station(from)
	if st == nil || int(cargo) >= NumCargo {
		return nil
	}

	return st.Goods[cargo].Links[to]
}

// RunAverages decays every link statistic once. Links whose capacity has
// decayed to nothing are removed.
func (n *Network) RunAverages() {
	for _, st := range n.stations {
		if st == nil {
			continue
		}
		for c := range st.Goods {
			links := st.Goods[c].Links
			for to, ls := range links {
				ls.Decrease()
				if ls.IsNull() {
					delete(links, to)
				}
			}
		}
	}
}

// AddLinkMonthly is like AddLink but takes a monthly capacity figure and
// converts it into the raw amount the link's moving average reports back as
// exactly that figure.
func (n *Network) AddLinkMonthly(cargo CargoID, from, to StationID, monthly int64) (*LinkStat, error) {
	if monthly < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCapacity, monthly)
	}
	ls, err := n.AddLink(cargo, from, to, 0)
	if err != nil {
		return nil, err
	}
	length := ls.Length()
	ls.Increase((monthly*length+29)/30, 0)

	return ls, nil
}
