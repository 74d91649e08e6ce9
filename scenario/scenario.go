// Package scenario describes a station network and its distribution settings
// in YAML, for the command line tool and end-to-end tests.
//
// A scenario looks like this:
//
//	map: {size_x: 64, size_y: 64}
//	settings:
//	  accuracy: 16
//	  distribution: asymmetric
//	cargos: [0]
//	stations:
//	  - id: 0
//	    name: Mine
//	    x: 0
//	    y: 0
//	    goods:
//	      0: {supply: 120, links: {1: 200}}
//	  - id: 1
//	    name: Plant
//	    x: 20
//	    y: 4
//	    goods:
//	      0: {accepts: true}
//
// Link capacities are monthly figures. Settings not given keep their defaults.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cargodist/network"
	"github.com/katalvlaran/cargodist/settings"
)

// Sentinel errors returned by Validate and Build.
var (
	ErrBadMap           = errors.New("scenario: map size must be positive")
	ErrNoStations       = errors.New("scenario: no stations")
	ErrDuplicateStation = errors.New("scenario: duplicate station id")
	ErrBadStation       = errors.New("scenario: invalid station id")
	ErrOutOfMap         = errors.New("scenario: station outside the map")
	ErrUnknownStation   = errors.New("scenario: link to unknown station")
	ErrBadCargo         = errors.New("scenario: invalid cargo")
	ErrBadSupply        = errors.New("scenario: negative supply")
	ErrBadLink          = errors.New("scenario: invalid link")
)

// MapSize is the extent of the map in tiles.
type MapSize struct {
	SizeX int64 `yaml:"size_x"`
	SizeY int64 `yaml:"size_y"`
}

// Goods is one station's figures for one cargo.
type Goods struct {
	Supply  int64 `yaml:"supply"`
	Accepts bool  `yaml:"accepts"`
	// Links maps target stations to monthly capacities.
	Links map[network.StationID]int64 `yaml:"links,omitempty"`
}

// Station is one station of the scenario.
type Station struct {
	ID    network.StationID          `yaml:"id"`
	Name  string                     `yaml:"name"`
	X     int64                      `yaml:"x"`
	Y     int64                      `yaml:"y"`
	Goods map[network.CargoID]*Goods `yaml:"goods,omitempty"`
}

// Scenario is a complete network description.
type Scenario struct {
	Map      MapSize            `yaml:"map"`
	Settings settings.LinkGraph `yaml:"settings"`
	// Cargos lists the cargos to distribute. Empty means every cargo that
	// appears in a station's goods.
	Cargos   []network.CargoID `yaml:"cargos,omitempty"`
	Stations []Station         `yaml:"stations"`
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	sc := &Scenario{Settings: settings.Default()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scenario: parse: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return sc, nil
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	return Parse(data)
}

// Validate checks the scenario for consistency.
func (sc *Scenario) Validate() error {
	if sc.Map.SizeX <= 0 || sc.Map.SizeY <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadMap, sc.Map.SizeX, sc.Map.SizeY)
	}
	if err := sc.Settings.Validate(); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	if len(sc.Stations) == 0 {
		return ErrNoStations
	}
	for _, c := range sc.Cargos {
		if int(c) >= network.NumCargo {
			return fmt.Errorf("%w: %d", ErrBadCargo, c)
		}
	}

	ids := make(map[network.StationID]bool, len(sc.Stations))
	for _, st := range sc.Stations {
		if st.ID == network.InvalidStation {
			return fmt.Errorf("%w: %d", ErrBadStation, st.ID)
		}
		if ids[st.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateStation, st.ID)
		}
		ids[st.ID] = true
		if st.X < 0 || st.X >= sc.Map.SizeX || st.Y < 0 || st.Y >= sc.Map.SizeY {
			return fmt.Errorf("%w: station %d at (%d,%d)", ErrOutOfMap, st.ID, st.X, st.Y)
		}
	}

	for _, st := range sc.Stations {
		for c, g := range st.Goods {
			if err := sc.validateGoods(st.ID, c, g, ids); err != nil {
				return err
			}
		}
	}

	return nil
}

func (sc *Scenario) validateGoods(id network.StationID, c network.CargoID, g *Goods, ids map[network.StationID]bool) error {
	if int(c) >= network.NumCargo {
		return fmt.Errorf("%w: station %d cargo %d", ErrBadCargo, id, c)
	}
	if len(sc.Cargos) > 0 && !slices.Contains(sc.Cargos, c) {
		return fmt.Errorf("%w: station %d cargo %d not listed", ErrBadCargo, id, c)
	}
	if g == nil {
		return nil
	}
	if g.Supply < 0 {
		return fmt.Errorf("%w: station %d cargo %d", ErrBadSupply, id, c)
	}
	for to, capacity := range g.Links {
		if !ids[to] {
			return fmt.Errorf("%w: %d -> %d", ErrUnknownStation, id, to)
		}
		if to == id || capacity < 0 {
			return fmt.Errorf("%w: %d -> %d capacity %d", ErrBadLink, id, to, capacity)
		}
	}

	return nil
}

// CargoIDs returns the cargos to distribute in ascending order.
func (sc *Scenario) CargoIDs() []network.CargoID {
	if len(sc.Cargos) > 0 {
		out := slices.Clone(sc.Cargos)
		slices.Sort(out)

		return slices.Compact(out)
	}
	var out []network.CargoID
	for _, st := range sc.Stations {
		for c := range st.Goods {
			if !slices.Contains(out, c) {
				out = append(out, c)
			}
		}
	}
	slices.Sort(out)

	return out
}

// Build creates the network the scenario describes. The scenario must have
// been validated.
func (sc *Scenario) Build() (*network.Network, error) {
	net := network.New(sc.Map.SizeX, sc.Map.SizeY)

	// 1) Stations first, so links can refer to any of them.
	for _, st := range sc.Stations {
		s, err := net.AddStationWithID(st.ID, st.Name, network.Position{X: st.X, Y: st.Y})
		if err != nil {
			return nil, fmt.Errorf("scenario: station %d: %w", st.ID, err)
		}
		for c, g := range st.Goods {
			if g == nil {
				continue
			}
			ge := s.Cargo(c)
			ge.Supply = g.Supply
			ge.Acceptance = g.Accepts
		}
	}

	// 2) Links, in station order.
	for _, st := range sc.Stations {
		for c, g := range st.Goods {
			if g == nil {
				continue
			}
			for to, capacity := range g.Links {
				if _, err := net.AddLinkMonthly(c, st.ID, to, capacity); err != nil {
					return nil, fmt.Errorf("scenario: link %d -> %d: %w", st.ID, to, err)
				}
			}
		}
	}

	return net, nil
}
