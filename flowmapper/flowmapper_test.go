package flowmapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cargodist/component"
	"github.com/katalvlaran/cargodist/flowmapper"
	"github.com/katalvlaran/cargodist/network"
	"github.com/katalvlaran/cargodist/settings"
)

const (
	stA network.StationID = 10
	stB network.StationID = 11
	stC network.StationID = 12
)

func line() *component.Component {
	c := component.New(0, 1, settings.Default(), 33)
	c.AddNode(stA, network.Position{X: 0}, 10, false)
	c.AddNode(stB, network.Position{X: 5}, 0, false)
	c.AddNode(stC, network.Position{X: 10}, 0, true)
	c.AddEdge(0, 1, 20)
	c.AddEdge(1, 2, 20)
	c.CalculateDistances()

	return c
}

func TestMap_EmptyIsNoOp(t *testing.T) {
	c := line()
	c.Node(1).Flows.Add(stA, stC, 3)

	flowmapper.Map(c)

	assert.Empty(t, c.Node(0).Flows)
	assert.Equal(t, network.FlowMap{stA: {stC: 3}}, c.Node(1).Flows)
	assert.Empty(t, c.Node(2).Flows)
}

func TestMap_Line(t *testing.T) {
	c := line()
	root := c.NewPath(0, true)
	pb := c.NewPath(1, false)
	pc := c.NewPath(2, false)
	c.Fork(pb, root, 20, 6)
	c.Fork(pc, pb, 20, 6)
	require.Equal(t, int64(10), c.AddFlow(pc, 10, false))
	c.FreePath(root)

	flowmapper.Map(c)

	// A sends towards B, B passes on to C, C keeps it. B's own [A][B] entry
	// is booked on arrival and cancelled when B forwards, so it drops out.
	assert.Equal(t, network.FlowMap{stA: {stB: 10}}, c.Node(0).Flows)
	assert.Equal(t, network.FlowMap{stA: {stC: 10}}, c.Node(1).Flows)
	assert.Equal(t, network.FlowMap{stA: {stC: 10}}, c.Node(2).Flows)

	// Legs are gone afterwards.
	assert.Empty(t, c.Legs(0))
	assert.Empty(t, c.Legs(1))
	assert.Equal(t, 0, c.LivePaths())
}

func TestMap_SkipsZeroFlowLegs(t *testing.T) {
	c := line()
	root := c.NewPath(0, true)
	pb := c.NewPath(1, false)
	c.Fork(pb, root, 20, 6)
	c.AddFlow(pb, 4, false)
	c.ReduceFlow(pb, 4)

	flowmapper.Map(c)
	assert.Empty(t, c.Node(0).Flows)
	assert.Empty(t, c.Node(1).Flows)
}
