package state

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

type NodeId string

// Cost is a link or path metric. INF marks an unreachable destination.
type Cost uint64

func AddCost(a, b Cost) Cost {
	if a == INF || b == INF {
		return INF
	} else if a > INFM-b {
		return INFM
	}
	return a + b
}

func (c Cost) String() string {
	if c == INF {
		return "INF"
	}
	return strconv.FormatUint(uint64(c), 10)
}

// Route is the selected next hop towards a destination. NextHop is empty when the destination is unreachable.
type Route struct {
	NextHop NodeId
	Cost    Cost
}

func (r Route) Reachable() bool {
	return r.NextHop != "" && r.Cost != INF
}

func (r Route) String() string {
	return fmt.Sprintf("(nh: %s, metric: %s)", r.NextHop, r.Cost)
}

type RoutingTable map[NodeId]Route

// Destinations returns the destinations of the table in name order.
func (rt RoutingTable) Destinations() []NodeId {
	return slices.Sorted(maps.Keys(rt))
}

func (rt RoutingTable) Clone() RoutingTable {
	return maps.Clone(rt)
}
