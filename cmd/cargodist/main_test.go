package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cargodist/scenario"
)

var lineScenario = filepath.Join("..", "..", "scenario", "testdata", "line.yaml")

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestValidate(t *testing.T) {
	out, _, err := execute(t, "validate", lineScenario)
	require.NoError(t, err)
	assert.Contains(t, out, "ok, 3 stations, cargos [0]")

	_, _, err = execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, _, err = execute(t, "validate")
	require.Error(t, err)
}

func TestRun_Line(t *testing.T) {
	// Cargo 0 spawns on day 4 and is joined on day 8.
	out, stderr, err := execute(t, "run", lineScenario, "--days", "9", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "new job")
	assert.Contains(t, stderr, "removing job")

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.Equal(t, 9, r.Days)
	require.Len(t, r.Cargos, 1)
	want := []stationFlows{
		{ID: 0, Name: "Mine", Flows: []flowEntry{{Origin: 0, Via: 1, Amount: 10}}},
		{ID: 1, Name: "Junction", Flows: []flowEntry{{Origin: 0, Via: 2, Amount: 10}}},
		{ID: 2, Name: "Plant", Flows: []flowEntry{{Origin: 0, Via: 2, Amount: 10}}},
	}
	assert.Equal(t, want, r.Cargos[0].Stations)
	assert.Equal(t, []linkEntry{{From: 0, To: 1, Capacity: 20}, {From: 1, To: 2, Capacity: 20}}, r.Cargos[0].Links)
}

func TestRun_Decay(t *testing.T) {
	// Nine days of decay take the links from 20 down to 17 a month; the
	// component still has room for all 10 units.
	out, _, err := execute(t, "run", lineScenario, "--days", "9", "--decay")
	require.NoError(t, err)

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	require.Len(t, r.Cargos, 1)
	assert.Equal(t, []linkEntry{{From: 0, To: 1, Capacity: 17}, {From: 1, To: 2, Capacity: 17}}, r.Cargos[0].Links)
	require.Len(t, r.Cargos[0].Stations, 3)
	assert.Equal(t, []flowEntry{{Origin: 0, Via: 1, Amount: 10}}, r.Cargos[0].Stations[0].Flows)
}

func TestRun_TooShort(t *testing.T) {
	out, _, err := execute(t, "run", lineScenario, "--days", "8", "--workers", "0")
	require.NoError(t, err)

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	require.Len(t, r.Cargos, 1)
	assert.Empty(t, r.Cargos[0].Stations)
}

func TestRun_Errors(t *testing.T) {
	_, _, err := execute(t, "run", lineScenario, "--days", "-1")
	require.Error(t, err)

	_, _, err = execute(t, "run", lineScenario, "--log-format", "xml")
	require.Error(t, err)

	_, _, err = execute(t, "run", lineScenario, "--log-level", "loud")
	require.Error(t, err)
}

func TestBuildReport_SkipsEmptyStations(t *testing.T) {
	sc, err := scenario.Load(lineScenario)
	require.NoError(t, err)
	net, err := sc.Build()
	require.NoError(t, err)
	net.Station(1).Cargo(0).Flows.Add(0, 2, 4)

	r := buildReport(net, sc.CargoIDs(), 0)
	require.Len(t, r.Cargos, 1)
	require.Len(t, r.Cargos[0].Stations, 1)
	assert.Equal(t, "Junction", r.Cargos[0].Stations[0].Name)
}
