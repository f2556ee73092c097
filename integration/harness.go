//go:build integration

package integration

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/encodeous/dvsim/core"
	"github.com/encodeous/dvsim/state"
	"github.com/stretchr/testify/require"
)

// VirtualHarness assembles a scenario piece by piece and runs it in process.
type VirtualHarness struct {
	Nodes     []state.NodeId
	Links     []state.LinkCfg
	Updates   []state.LinkCfg
	MaxRounds int

	Sim *core.Simulator
	Out bytes.Buffer
}

func (v *VirtualHarness) NewNode(ids ...state.NodeId) {
	v.Nodes = append(v.Nodes, ids...)
}

func (v *VirtualHarness) AddLink(a, b state.NodeId, weight int) {
	v.Links = append(v.Links, state.LinkCfg{A: a, B: b, Weight: weight})
}

func (v *VirtualHarness) Update(a, b state.NodeId, weight int) {
	v.Updates = append(v.Updates, state.LinkCfg{A: a, B: b, Weight: weight})
}

func (v *VirtualHarness) Scenario() *state.Scenario {
	return &state.Scenario{Nodes: v.Nodes, Links: v.Links, Updates: v.Updates}
}

// Start runs the whole scenario and fails the test on any error.
func (v *VirtualHarness) Start(t *testing.T) core.Result {
	t.Helper()
	sim, err := core.NewSimulator(v.Scenario(), core.Options{Out: &v.Out, MaxRounds: v.MaxRounds})
	require.NoError(t, err)
	v.Sim = sim
	res, err := sim.Run(context.Background())
	require.NoError(t, err)
	return res
}

// ShortestPaths is a plain Dijkstra over the current graph, used as the reference for
// converged routing tables.
func ShortestPaths(g *state.Graph, nodes []state.NodeId, src state.NodeId) map[state.NodeId]state.Cost {
	dist := make(map[state.NodeId]state.Cost, len(nodes))
	for _, n := range nodes {
		dist[n] = state.INF
	}
	dist[src] = 0
	done := make(map[state.NodeId]bool, len(nodes))
	for range nodes {
		cur, best := state.NodeId(""), state.INF
		for _, n := range nodes {
			if !done[n] && dist[n] < best {
				cur, best = n, dist[n]
			}
		}
		if best == state.INF {
			break
		}
		done[cur] = true
		for neigh, w := range g.Neighbours(cur) {
			if c := state.AddCost(best, w); c < dist[neigh] {
				dist[neigh] = c
			}
		}
	}
	return dist
}

// AssertOptimal checks every routing table against ShortestPaths and that every chosen next
// hop is a neighbour.
func (v *VirtualHarness) AssertOptimal(t *testing.T) {
	t.Helper()
	g := v.Sim.Graph()
	for _, r := range v.Sim.Routers() {
		want := ShortestPaths(g, v.Nodes, r.Id)
		for _, dest := range r.Table.Nodes() {
			route := r.Routes[dest]
			if want[dest] == state.INF {
				require.False(t, route.Reachable(), "%s -> %s should be unreachable, got %s", r.Id, dest, route)
				continue
			}
			require.Equal(t, want[dest], route.Cost, "%s -> %s", r.Id, dest)
			require.True(t, g.HasLink(r.Id, route.NextHop), "%s -> %s via non neighbour %s", r.Id, dest, route.NextHop)
		}
	}
}

// RandomHarness builds n nodes with each possible link present with probability p and a
// weight in [1, maxWeight].
func RandomHarness(rng *rand.Rand, n int, p float64, maxWeight int) *VirtualHarness {
	v := &VirtualHarness{}
	for i := range n {
		v.NewNode(state.NodeId(fmt.Sprintf("n%02d", i)))
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				v.AddLink(v.Nodes[i], v.Nodes[j], 1+rng.IntN(maxWeight))
			}
		}
	}
	return v
}
