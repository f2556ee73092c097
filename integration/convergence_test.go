//go:build integration

package integration

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/encodeous/dvsim/core"
	"github.com/encodeous/dvsim/state"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestOptimalConvergence(t *testing.T) {
	defer goleak.VerifyNone(t)

	vh := &VirtualHarness{}
	vh.NewNode("a", "b", "c")
	// c <-50-> a <-10-> b
	vh.AddLink("a", "b", 10)
	vh.AddLink("a", "c", 50)
	// a <-10-> b <-10-> c
	vh.Update("b", "c", 10)

	res := vh.Start(t)
	assert.True(t, res.TopologyChanged)
	assert.False(t, res.Bounded)
	vh.AssertOptimal(t)
	assert.Equal(t, state.Route{NextHop: "b", Cost: 20}, vh.Sim.Router("a").Routes["c"])
}

func TestWeightIncreaseReroutes(t *testing.T) {
	defer goleak.VerifyNone(t)

	vh := &VirtualHarness{}
	vh.NewNode("a", "b", "c", "d")
	vh.AddLink("a", "b", 1)
	vh.AddLink("b", "d", 1)
	vh.AddLink("a", "c", 2)
	vh.AddLink("c", "d", 2)
	vh.Update("b", "d", 10)

	vh.Start(t)
	vh.AssertOptimal(t)
	assert.Equal(t, state.Route{NextHop: "c", Cost: 4}, vh.Sim.Router("a").Routes["d"])
}

func TestRandomGraphsConverge(t *testing.T) {
	defer goleak.VerifyNone(t)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 25 {
		vh := RandomHarness(rng, 4+rng.IntN(10), 0.35, 9)
		// edits never remove links, so the second phase settles too
		for range 3 {
			a, b := vh.Nodes[rng.IntN(len(vh.Nodes))], vh.Nodes[rng.IntN(len(vh.Nodes))]
			if a != b {
				vh.Update(a, b, 1+rng.IntN(9))
			}
		}
		t.Run(fmt.Sprintf("graph%02d", i), func(t *testing.T) {
			res := vh.Start(t)
			assert.False(t, res.Bounded)
			vh.AssertOptimal(t)
		})
	}
}

// A partition after convergence only settles when the cut off side has no neighbours left
// to bounce stale costs with, otherwise the run has to be bounded.
func TestPartitionNeedsBound(t *testing.T) {
	defer goleak.VerifyNone(t)

	vh := &VirtualHarness{MaxRounds: 20}
	vh.NewNode("a", "b", "c")
	vh.AddLink("a", "b", 1)
	vh.AddLink("b", "c", 1)
	vh.Update("b", "c", state.RemoveWeight)

	res := vh.Start(t)
	assert.True(t, res.Bounded)
	assert.Equal(t, 20, res.Rounds[core.PhasePostChange])
	for _, dest := range []state.NodeId{"a", "b"} {
		assert.False(t, vh.Sim.Router("c").Routes[dest].Reachable())
	}
}
