package network

import "sort"

// FlowMap is a per-station routing table: FlowMap[origin][via] is the amount
// of cargo from origin that should leave via the given next hop. An entry
// whose via is the station itself stands for local consumption.
type FlowMap map[StationID]map[StationID]int64

// Add adds amount (possibly negative) to the [origin][via] entry.
// Entries that reach zero are removed, as are emptied origin maps.
func (f FlowMap) Add(origin, via StationID, amount int64) {
	if amount == 0 {
		return
	}
	vias, ok := f[origin]
	if !ok {
		vias = make(map[StationID]int64)
		f[origin] = vias
	}
	v := vias[via] + amount
	if v == 0 {
		delete(vias, via)
		if len(vias) == 0 {
			delete(f, origin)
		}

		return
	}
	vias[via] = v
}

// Get returns the [origin][via] entry, or 0 if absent.
func (f FlowMap) Get(origin, via StationID) int64 {
	return f[origin][via]
}

// Has reports whether an [origin][via] entry exists.
func (f FlowMap) Has(origin, via StationID) bool {
	_, ok := f[origin][via]

	return ok
}

// Origins returns the origins in ascending order.
func (f FlowMap) Origins() []StationID {
	out := make([]StationID, 0, len(f))
	for o := range f {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Vias returns the next hops recorded for origin in ascending order.
func (f FlowMap) Vias(origin StationID) []StationID {
	vias := f[origin]
	out := make([]StationID, 0, len(vias))
	for v := range vias {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Clone returns a deep copy.
func (f FlowMap) Clone() FlowMap {
	out := make(FlowMap, len(f))
	for o, vias := range f {
		cp := make(map[StationID]int64, len(vias))
		for v, amount := range vias {
			cp[v] = amount
		}
		out[o] = cp
	}

	return out
}
