package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDistanceTable(t *testing.T) {
	dt := NewDistanceTable("B", []NodeId{"C", "B", "A"})
	assert.Equal(t, []NodeId{"C", "A"}, dt.Nodes())
	assert.Equal(t, []NodeId{"A", "C"}, dt.Destinations())
	assert.False(t, dt.Has("B"))
	assert.Equal(t, INF, dt.Get("A", "C"))
	// the owner is never a cell
	assert.False(t, dt.Set("B", "A", 1))
	assert.False(t, dt.Set("A", "B", 1))
}

func TestDistanceTableSet(t *testing.T) {
	dt := NewDistanceTable("A", []NodeId{"A", "B", "C"})
	assert.True(t, dt.Set("C", "B", 2))
	assert.False(t, dt.Set("C", "B", 2))
	assert.Equal(t, Cost(2), dt.Get("C", "B"))

	assert.True(t, dt.InvalidateVia("B"))
	assert.False(t, dt.InvalidateVia("B"))
	assert.Equal(t, INF, dt.Get("C", "B"))
}

func TestDistanceTableMinCost(t *testing.T) {
	dt := NewDistanceTable("A", []NodeId{"A", "C", "B", "D"})
	c, via := dt.MinCost("D")
	assert.Equal(t, INF, c)
	assert.Equal(t, NodeId(""), via)

	dt.Set("D", "B", 3)
	dt.Set("D", "C", 3)
	dt.Set("D", "D", 7)
	c, via = dt.MinCost("D")
	assert.Equal(t, Cost(3), c)
	// ties go to the earliest declared hop, C before B here
	assert.Equal(t, NodeId("C"), via)
}

func TestSnapshotIsIndependent(t *testing.T) {
	dt := NewDistanceTable("A", []NodeId{"A", "B", "C"})
	dt.Set("C", "B", 2)
	snap := dt.Snapshot()
	assert.True(t, dt.Equal(snap))
	assert.Empty(t, snap.Diff(dt.Snapshot()))

	dt.Set("C", "B", 9)
	assert.Equal(t, Cost(2), snap.Get("C", "B"))
	assert.False(t, dt.Equal(snap))
	assert.NotEmpty(t, snap.Diff(dt.Snapshot()))
	assert.Equal(t, NodeId("A"), snap.Owner())

	c, via := snap.MinCost("C")
	assert.Equal(t, Cost(2), c)
	assert.Equal(t, NodeId("B"), via)
}
