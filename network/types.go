// Package network holds the live, persistent station network that the
// distribution engine partitions: a pool of stations with per-cargo goods
// entries, link statistics between stations and the resulting flow tables.
//
// The network is not safe for concurrent use. It is mutated only from the
// host simulation's tick loop; link graph jobs work on private copies and
// never touch it.
//
// Errors:
//
//	ErrStationNotFound - station ID is out of range or the slot is empty.
//	ErrStationExists   - AddStationWithID targeted an occupied slot.
//	ErrPoolFull        - no free station ID is left.
//	ErrSelfLink        - a link from a station to itself was requested.
//	ErrBadCargo        - cargo ID is out of range.
//	ErrBadCapacity     - negative link capacity.
package network

import (
	"errors"
	"math"
)

// Sentinel errors for network operations.
var (
	// ErrStationNotFound indicates an operation referenced a non-existent station.
	ErrStationNotFound = errors.New("network: station not found")

	// ErrStationExists indicates the requested station slot is already occupied.
	ErrStationExists = errors.New("network: station already exists")

	// ErrPoolFull indicates no more station IDs are available.
	ErrPoolFull = errors.New("network: station pool is full")

	// ErrSelfLink indicates a link from a station to itself was requested.
	ErrSelfLink = errors.New("network: link to self not allowed")

	// ErrBadCargo indicates a cargo ID outside [0, NumCargo).
	ErrBadCargo = errors.New("network: cargo ID out of range")

	// ErrBadCapacity indicates a negative capacity was supplied for a link.
	ErrBadCapacity = errors.New("network: negative link capacity")
)

// StationID identifies a station slot in the pool.
type StationID uint16

// InvalidStation marks "no station".
const InvalidStation StationID = math.MaxUint16

// MaxStations is the size limit of the station pool.
const MaxStations = int(InvalidStation)

// CargoID identifies a cargo type.
type CargoID uint8

// NumCargo is the number of distinct cargo types a station can carry.
const NumCargo = 32

// ComponentID identifies a link graph component. Its parity is used by the
// partitioning cursor to tell "seen in this pass" from "seen in the last pass".
type ComponentID uint16

// InvalidComponent is the LastComponent of a station that was never partitioned.
const InvalidComponent ComponentID = math.MaxUint16

// Position is a tile coordinate on the map.
type Position struct {
	X int64 `yaml:"x"`
	Y int64 `yaml:"y"`
}

// DistanceManhattan returns |a.X-b.X| + |a.Y-b.Y|.
func DistanceManhattan(a, b Position) int64 {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}
