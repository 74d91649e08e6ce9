package scenario_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cargodist/network"
	"github.com/katalvlaran/cargodist/scenario"
	"github.com/katalvlaran/cargodist/settings"
)

func TestLoad_Line(t *testing.T) {
	sc, err := scenario.Load(filepath.Join("testdata", "line.yaml"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), sc.Settings.Accuracy)
	assert.Equal(t, settings.Asymmetric, sc.Settings.Distribution)
	assert.Equal(t, int32(settings.DefaultRecalcInterval), sc.Settings.RecalcInterval)
	assert.Equal(t, []network.CargoID{0}, sc.CargoIDs())

	net, err := sc.Build()
	require.NoError(t, err)
	require.Equal(t, 3, net.PoolSize())
	assert.Equal(t, int64(65), net.MaxDistance())

	mine := net.Station(0)
	assert.Equal(t, "Mine", mine.Name)
	assert.Equal(t, int64(10), mine.Cargo(0).Supply)
	assert.True(t, net.Station(2).Cargo(0).Acceptance)
	assert.Equal(t, int64(20), net.Link(0, 0, 1).Capacity())
	assert.Equal(t, int64(20), net.Link(0, 1, 2).Capacity())
	assert.Nil(t, net.Link(0, 2, 1))
}

func TestLoad_Missing(t *testing.T) {
	_, err := scenario.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", ``, scenario.ErrBadMap},
		{"no-stations", `map: {size_x: 4, size_y: 4}`, scenario.ErrNoStations},
		{"settings", `
map: {size_x: 4, size_y: 4}
settings: {accuracy: 99}
stations: [{id: 0}]`, settings.ErrBadAccuracy},
		{"duplicate", `
map: {size_x: 4, size_y: 4}
stations: [{id: 1}, {id: 1, x: 2}]`, scenario.ErrDuplicateStation},
		{"invalid-id", `
map: {size_x: 4, size_y: 4}
stations: [{id: 65535}]`, scenario.ErrBadStation},
		{"outside", `
map: {size_x: 4, size_y: 4}
stations: [{id: 0, x: 4}]`, scenario.ErrOutOfMap},
		{"unknown-target", `
map: {size_x: 4, size_y: 4}
stations: [{id: 0, goods: {0: {links: {7: 3}}}}]`, scenario.ErrUnknownStation},
		{"self-link", `
map: {size_x: 4, size_y: 4}
stations: [{id: 0, goods: {0: {links: {0: 3}}}}]`, scenario.ErrBadLink},
		{"negative-capacity", `
map: {size_x: 4, size_y: 4}
stations: [{id: 0, goods: {0: {links: {1: -3}}}}, {id: 1}]`, scenario.ErrBadLink},
		{"negative-supply", `
map: {size_x: 4, size_y: 4}
stations: [{id: 0, goods: {0: {supply: -1}}}]`, scenario.ErrBadSupply},
		{"cargo-range", `
map: {size_x: 4, size_y: 4}
stations: [{id: 0, goods: {32: {supply: 1}}}]`, scenario.ErrBadCargo},
		{"cargo-unlisted", `
map: {size_x: 4, size_y: 4}
cargos: [1]
stations: [{id: 0, goods: {0: {supply: 1}}}]`, scenario.ErrBadCargo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tc.doc))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := scenario.Parse([]byte(`
map: {size_x: 4, size_y: 4}
stations: [{id: 0, colour: red}]`))
	require.Error(t, err)
}

func TestCargoIDs(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
map: {size_x: 4, size_y: 4}
stations:
  - {id: 0, goods: {3: {supply: 1}, 1: {accepts: true}}}
  - {id: 1, goods: {1: {supply: 1}}}`))
	require.NoError(t, err)
	assert.Equal(t, []network.CargoID{1, 3}, sc.CargoIDs())

	sc.Cargos = []network.CargoID{4, 2, 4}
	assert.Equal(t, []network.CargoID{2, 4}, sc.CargoIDs())
}

func TestBuild_Holes(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
map: {size_x: 8, size_y: 8}
stations:
  - {id: 4, x: 1, goods: {0: {links: {2: 30}}}}
  - {id: 2, x: 3}`))
	require.NoError(t, err)

	net, err := sc.Build()
	require.NoError(t, err)
	assert.Equal(t, 5, net.PoolSize())
	assert.False(t, net.IsValidID(0))
	assert.Equal(t, int64(30), net.Link(0, 4, 2).Capacity())
}
