package state

import (
	"maps"
	"slices"

	"github.com/google/go-cmp/cmp"
)

// costMatrix maps destination -> first hop -> cost.
type costMatrix map[NodeId]map[NodeId]Cost

func (m costMatrix) clone() costMatrix {
	c := make(costMatrix, len(m))
	for dest, row := range m {
		c[dest] = maps.Clone(row)
	}
	return c
}

func (m costMatrix) equal(o costMatrix) bool {
	return maps.EqualFunc(m, o, func(a, b map[NodeId]Cost) bool {
		return maps.Equal(a, b)
	})
}

// minCost scans the row of dest in the given order. The first strictly smaller cost wins.
func (m costMatrix) minCost(order []NodeId, dest NodeId) (Cost, NodeId) {
	best, via := INF, NodeId("")
	row := m[dest]
	for _, n := range order {
		if c, ok := row[n]; ok && c < best {
			best, via = c, n
		}
	}
	return best, via
}

// DistanceTable is the per-router view of the network: for every destination, the cost of
// reaching it through every possible first hop. The owner is never a destination or a hop.
type DistanceTable struct {
	Self  NodeId
	order []NodeId
	cells costMatrix
}

// NewDistanceTable allocates an all-INF table for self over nodes. The order of nodes is kept
// and decides ties in MinCost.
func NewDistanceTable(self NodeId, nodes []NodeId) *DistanceTable {
	order := make([]NodeId, 0, len(nodes))
	for _, n := range nodes {
		if n != self && !slices.Contains(order, n) {
			order = append(order, n)
		}
	}
	cells := make(costMatrix, len(order))
	for _, dest := range order {
		row := make(map[NodeId]Cost, len(order))
		for _, via := range order {
			row[via] = INF
		}
		cells[dest] = row
	}
	return &DistanceTable{Self: self, order: order, cells: cells}
}

// Nodes returns every destination in table order.
func (t *DistanceTable) Nodes() []NodeId {
	return slices.Clone(t.order)
}

// Destinations returns every destination sorted by name.
func (t *DistanceTable) Destinations() []NodeId {
	return slices.Sorted(slices.Values(t.order))
}

func (t *DistanceTable) Has(n NodeId) bool {
	_, ok := t.cells[n]
	return ok
}

// Get returns the cost to dest through via, INF for unknown cells.
func (t *DistanceTable) Get(dest, via NodeId) Cost {
	c, ok := t.cells[dest][via]
	if !ok {
		return INF
	}
	return c
}

// Set writes a cell and reports whether its value changed. Unknown cells are ignored.
func (t *DistanceTable) Set(dest, via NodeId, c Cost) bool {
	row, ok := t.cells[dest]
	if !ok {
		return false
	}
	prev, ok := row[via]
	if !ok {
		return false
	}
	row[via] = c
	return prev != c
}

// InvalidateVia marks every path through via as unreachable.
func (t *DistanceTable) InvalidateVia(via NodeId) bool {
	changed := false
	for _, dest := range t.order {
		if t.Set(dest, via, INF) {
			changed = true
		}
	}
	return changed
}

func (t *DistanceTable) MinCost(dest NodeId) (Cost, NodeId) {
	return t.cells.minCost(t.order, dest)
}

// Snapshot returns an independent copy that later writes to t never reach.
func (t *DistanceTable) Snapshot() TableSnapshot {
	return TableSnapshot{owner: t.Self, order: slices.Clone(t.order), cells: t.cells.clone()}
}

// Equal reports whether the table holds exactly the values of s.
func (t *DistanceTable) Equal(s TableSnapshot) bool {
	return t.cells.equal(s.cells)
}

// TableSnapshot is a frozen distance table. It has no mutators.
type TableSnapshot struct {
	owner NodeId
	order []NodeId
	cells costMatrix
}

func (s TableSnapshot) Owner() NodeId {
	return s.owner
}

func (s TableSnapshot) Get(dest, via NodeId) Cost {
	c, ok := s.cells[dest][via]
	if !ok {
		return INF
	}
	return c
}

func (s TableSnapshot) MinCost(dest NodeId) (Cost, NodeId) {
	return s.cells.minCost(s.order, dest)
}

func (s TableSnapshot) Equal(o TableSnapshot) bool {
	return s.owner == o.owner && s.cells.equal(o.cells)
}

// Diff describes the cells that differ between two snapshots, empty when equal.
func (s TableSnapshot) Diff(o TableSnapshot) string {
	return cmp.Diff(map[NodeId]map[NodeId]Cost(s.cells), map[NodeId]map[NodeId]Cost(o.cells))
}

// Advertisement is a router's table as sent to one neighbour.
type Advertisement struct {
	From  NodeId
	Table TableSnapshot
}
