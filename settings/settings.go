// Package settings holds the tunables of the cargo distribution engine and
// their YAML representation.
//
// A LinkGraph value is copied into every component when it is created, so a
// settings change made while jobs are in flight only affects components
// created afterwards.
package settings

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cargodist/network"
)

// Sentinel errors returned by Validate, Parse and Load.
var (
	ErrBadRecalcInterval = errors.New("settings: recalc_interval out of range")
	ErrBadAccuracy       = errors.New("settings: accuracy out of range")
	ErrBadDemandDistance = errors.New("settings: demand_distance out of range")
	ErrBadDemandSize     = errors.New("settings: demand_size out of range")
	ErrBadSaturation     = errors.New("settings: short_path_saturation out of range")
	ErrBadDistribution   = errors.New("settings: unknown distribution type")
	ErrBadCargo          = errors.New("settings: cargo ID out of range")
	ErrBadWorkers        = errors.New("settings: max_workers must be non-negative")
)

// Accepted ranges.
const (
	MinRecalcInterval  = 1
	MaxRecalcInterval  = 90
	MinAccuracy        = 1
	MaxAccuracy        = 64
	MaxDemandDistance  = 1000
	MaxDemandSize      = 100
	MaxShortPathSatPct = 250
)

// Defaults.
const (
	DefaultRecalcInterval      = 4
	DefaultAccuracy            = 16
	DefaultDemandDistance      = 100
	DefaultDemandSize          = 100
	DefaultShortPathSaturation = 80
)

// DistributionType selects how demand between two stations is modelled.
type DistributionType string

const (
	// Symmetric sends roughly the same amount of cargo in each direction.
	Symmetric DistributionType = "symmetric"
	// Asymmetric only sends cargo from producers to acceptors.
	Asymmetric DistributionType = "asymmetric"
	// Manual disables demand calculation; cargo goes wherever vehicles take it.
	Manual DistributionType = "manual"
)

// Valid reports whether d is a known distribution type.
func (d DistributionType) Valid() bool {
	switch d {
	case Symmetric, Asymmetric, Manual:
		return true
	default:
		return false
	}
}

// ParseDistributionType converts s to a DistributionType.
func ParseDistributionType(s string) (DistributionType, error) {
	d := DistributionType(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrBadDistribution, s)
	}

	return d, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DistributionType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDistributionType(s)
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}

// LinkGraph is the set of tunables read by the engine.
type LinkGraph struct {
	// RecalcInterval is the number of days between spawning a component's job
	// and joining it.
	RecalcInterval int32 `yaml:"recalc_interval"`

	// Accuracy controls how finely demand and flow are split up.
	Accuracy int64 `yaml:"accuracy"`

	// DemandDistance is the percentage by which distance lowers demand.
	DemandDistance int64 `yaml:"demand_distance"`

	// DemandSize is the percentage of return traffic in symmetric mode.
	DemandSize int64 `yaml:"demand_size"`

	// ShortPathSaturation is the percentage of capacity the first MCF pass
	// fills before it looks for longer paths.
	ShortPathSaturation int64 `yaml:"short_path_saturation"`

	// Distribution is the type used for every cargo not overridden below.
	Distribution DistributionType `yaml:"distribution"`

	// CargoDistribution overrides Distribution per cargo.
	CargoDistribution map[network.CargoID]DistributionType `yaml:"cargo_distribution,omitempty"`

	// MaxWorkers bounds concurrently running jobs. 0 means no bound.
	MaxWorkers int64 `yaml:"max_workers"`
}

// Default returns the stock settings.
func Default() LinkGraph {
	return LinkGraph{
		RecalcInterval:      DefaultRecalcInterval,
		Accuracy:            DefaultAccuracy,
		DemandDistance:      DefaultDemandDistance,
		DemandSize:          DefaultDemandSize,
		ShortPathSaturation: DefaultShortPathSaturation,
		Distribution:        Symmetric,
	}
}

// DistributionFor returns the distribution type in effect for cargo.
func (s *LinkGraph) DistributionFor(cargo network.CargoID) DistributionType {
	if d, ok := s.CargoDistribution[cargo]; ok {
		return d
	}

	return s.Distribution
}

// Clone returns a deep copy.
func (s LinkGraph) Clone() LinkGraph {
	if s.CargoDistribution != nil {
		cp := make(map[network.CargoID]DistributionType, len(s.CargoDistribution))
		for c, d := range s.CargoDistribution {
			cp[c] = d
		}
		s.CargoDistribution = cp
	}

	return s
}

// Validate checks every field against its accepted range.
func (s *LinkGraph) Validate() error {
	switch {
	case s.RecalcInterval < MinRecalcInterval || s.RecalcInterval > MaxRecalcInterval:
		return fmt.Errorf("%w: %d", ErrBadRecalcInterval, s.RecalcInterval)
	case s.Accuracy < MinAccuracy || s.Accuracy > MaxAccuracy:
		return fmt.Errorf("%w: %d", ErrBadAccuracy, s.Accuracy)
	case s.DemandDistance < 0 || s.DemandDistance > MaxDemandDistance:
		return fmt.Errorf("%w: %d", ErrBadDemandDistance, s.DemandDistance)
	case s.DemandSize < 0 || s.DemandSize > MaxDemandSize:
		return fmt.Errorf("%w: %d", ErrBadDemandSize, s.DemandSize)
	case s.ShortPathSaturation < 0 || s.ShortPathSaturation > MaxShortPathSatPct:
		return fmt.Errorf("%w: %d", ErrBadSaturation, s.ShortPathSaturation)
	case !s.Distribution.Valid():
		return fmt.Errorf("%w: %q", ErrBadDistribution, s.Distribution)
	case s.MaxWorkers < 0:
		return fmt.Errorf("%w: %d", ErrBadWorkers, s.MaxWorkers)
	}
	for c, d := range s.CargoDistribution {
		if int(c) >= network.NumCargo {
			return fmt.Errorf("%w: %d", ErrBadCargo, c)
		}
		if !d.Valid() {
			return fmt.Errorf("%w: cargo %d: %q", ErrBadDistribution, c, d)
		}
	}

	return nil
}

// Parse decodes YAML into settings. Omitted fields keep their defaults.
func Parse(data []byte) (LinkGraph, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return LinkGraph{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return LinkGraph{}, err
	}

	return s, nil
}

// Load reads and parses a settings file.
func Load(path string) (LinkGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LinkGraph{}, fmt.Errorf("read settings: %w", err)
	}

	return Parse(data)
}
