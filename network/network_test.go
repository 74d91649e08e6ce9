package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cargodist/network"
)

const cargo network.CargoID = 3

func TestDistanceManhattan(t *testing.T) {
	a := network.Position{X: 1, Y: 7}
	b := network.Position{X: 4, Y: 2}
	require.Equal(t, int64(8), network.DistanceManhattan(a, b))
	require.Equal(t, int64(8), network.DistanceManhattan(b, a))
	require.Equal(t, int64(0), network.DistanceManhattan(a, a))
}

func TestNetwork_StationPool(t *testing.T) {
	n := network.New(64, 64)
	require.Equal(t, int64(129), n.MaxDistance())

	a, err := n.AddStation("A", network.Position{})
	require.NoError(t, err)
	b, err := n.AddStation("B", network.Position{X: 3})
	require.NoError(t, err)
	require.Equal(t, network.StationID(0), a.ID)
	require.Equal(t, network.StationID(1), b.ID)

	// New stations start outside any component and with empty flows.
	ge := a.Cargo(cargo)
	assert.Equal(t, network.InvalidComponent, ge.LastComponent)
	assert.Empty(t, ge.Flows)
	assert.False(t, ge.HasLinks())

	// Holes are left behind and reused.
	require.NoError(t, n.RemoveStation(a.ID))
	require.False(t, n.IsValidID(a.ID))
	require.Nil(t, n.Station(a.ID))
	require.Equal(t, 2, n.PoolSize())
	require.ErrorIs(t, n.RemoveStation(a.ID), network.ErrStationNotFound)

	c, err := n.AddStation("C", network.Position{})
	require.NoError(t, err)
	require.Equal(t, network.StationID(0), c.ID)

	// Explicit IDs grow the pool with holes.
	d, err := n.AddStationWithID(5, "D", network.Position{})
	require.NoError(t, err)
	require.Equal(t, network.StationID(5), d.ID)
	require.Equal(t, 6, n.PoolSize())
	require.False(t, n.IsValidID(4))
	require.Len(t, n.Stations(), 3)

	_, err = n.AddStationWithID(5, "D2", network.Position{})
	require.ErrorIs(t, err, network.ErrStationExists)
}

func TestNetwork_Links(t *testing.T) {
	n := network.New(16, 16)
	a, _ := n.AddStation("A", network.Position{})
	b, _ := n.AddStation("B", network.Position{X: 5})

	_, err := n.AddLink(cargo, a.ID, a.ID, 10)
	require.ErrorIs(t, err, network.ErrSelfLink)
	_, err = n.AddLink(cargo, a.ID, 9, 10)
	require.ErrorIs(t, err, network.ErrStationNotFound)
	_, err = n.AddLink(network.NumCargo, a.ID, b.ID, 10)
	require.ErrorIs(t, err, network.ErrBadCargo)
	_, err = n.AddLink(cargo, a.ID, b.ID, -1)
	require.ErrorIs(t, err, network.ErrBadCapacity)
	_, err = n.AddLinkMonthly(cargo, a.ID, b.ID, -1)
	require.ErrorIs(t, err, network.ErrBadCapacity)
	require.Nil(t, n.Link(cargo, a.ID, b.ID))

	ls, err := n.AddLinkMonthly(cargo, a.ID, b.ID, 20)
	require.NoError(t, err)
	require.Equal(t, int64(network.MinAverageLength), ls.Length())
	require.Equal(t, int64(20), ls.Capacity())
	require.Same(t, ls, n.Link(cargo, a.ID, b.ID))
	require.Equal(t, []network.StationID{b.ID}, a.Cargo(cargo).SortedLinks())

	// Links to a removed station disappear with it.
	require.NoError(t, n.RemoveStation(b.ID))
	require.False(t, a.Cargo(cargo).HasLinks())
}

func TestNetwork_RunAveragesDropsDeadLinks(t *testing.T) {
	n := network.New(16, 16)
	a, _ := n.AddStation("A", network.Position{})
	b, _ := n.AddStation("B", network.Position{X: 1})
	_, err := n.AddLink(cargo, a.ID, b.ID, 2)
	require.NoError(t, err)

	for i := 0; i < 200 && n.Link(cargo, a.ID, b.ID) != nil; i++ {
		n.RunAverages()
	}
	require.Nil(t, n.Link(cargo, a.ID, b.ID))
}

func TestLinkStat_Freeze(t *testing.T) {
	ls := network.NewLinkStat(10, 0, 0, 0)
	require.Equal(t, int64(network.MinAverageLength), ls.Length())
	require.True(t, ls.IsNull())

	ls.Freeze(50)
	require.Equal(t, int64(50), ls.Frozen())
	for i := 0; i < 50; i++ {
		ls.Decrease()
	}
	// Frozen capacity never decays.
	require.False(t, ls.IsNull())
	require.Equal(t, int64(50*30/network.MinAverageLength), ls.Capacity())

	ls.Unfreeze(80)
	require.Equal(t, int64(0), ls.Frozen())
	ls.Increase(96, 96)
	require.Equal(t, int64(30), ls.Usage())

	ls.Clear()
	require.True(t, ls.IsNull())
	require.Equal(t, int64(0), ls.Usage())
}

func TestFlowMap_Add(t *testing.T) {
	f := make(network.FlowMap)
	f.Add(1, 2, 10)
	f.Add(1, 3, 4)
	f.Add(0, 0, 0) // no-op
	require.Equal(t, int64(10), f.Get(1, 2))
	require.Equal(t, []network.StationID{1}, f.Origins())
	require.Equal(t, []network.StationID{2, 3}, f.Vias(1))

	cp := f.Clone()
	f.Add(1, 2, -10)
	require.False(t, f.Has(1, 2))
	require.True(t, cp.Has(1, 2))

	f.Add(1, 3, -4)
	require.Empty(t, f)
	require.Equal(t, int64(0), f.Get(7, 7))
}
