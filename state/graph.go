package state

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	ErrNegativeWeight = errors.New("link weight must not be negative")
	ErrSelfLink       = errors.New("a node cannot link to itself")
)

// Graph is the physical topology: a symmetric map of link weights.
// The routers never read it directly except for their own adjacency.
type Graph struct {
	adj map[NodeId]map[NodeId]Cost
}

func NewGraph() *Graph {
	return &Graph{adj: make(map[NodeId]map[NodeId]Cost)}
}

// AddNode registers a node without links. Adding an existing node is a no-op.
func (g *Graph) AddNode(n NodeId) {
	if _, ok := g.adj[n]; !ok {
		g.adj[n] = make(map[NodeId]Cost)
	}
}

// AddLink inserts or overwrites the link a <-> b.
func (g *Graph) AddLink(a, b NodeId, weight int) error {
	if a == b {
		return fmt.Errorf("%s <-> %s: %w", a, b, ErrSelfLink)
	}
	if weight < 0 {
		return fmt.Errorf("%s <-> %s weight %d: %w", a, b, weight, ErrNegativeWeight)
	}
	g.AddNode(a)
	g.AddNode(b)
	g.adj[a][b] = Cost(weight)
	g.adj[b][a] = Cost(weight)
	return nil
}

// RemoveLink deletes the link a <-> b. Removing a missing link does nothing.
func (g *Graph) RemoveLink(a, b NodeId) {
	delete(g.adj[a], b)
	delete(g.adj[b], a)
}

// Neighbours returns a copy of the adjacency of node.
func (g *Graph) Neighbours(node NodeId) map[NodeId]Cost {
	n, ok := g.adj[node]
	if !ok {
		return make(map[NodeId]Cost)
	}
	return maps.Clone(n)
}

func (g *Graph) Weight(a, b NodeId) (Cost, bool) {
	w, ok := g.adj[a][b]
	return w, ok
}

func (g *Graph) HasLink(a, b NodeId) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Links lists every link once, smaller endpoint first, in name order.
func (g *Graph) Links() []Triple[NodeId, NodeId, Cost] {
	seen := make(map[Pair[NodeId, NodeId]]struct{})
	for a, neighs := range g.adj {
		for b := range neighs {
			seen[OrderedPair(a, b)] = struct{}{}
		}
	}
	keys := slices.Collect(maps.Keys(seen))
	SortPairs(keys)
	links := make([]Triple[NodeId, NodeId, Cost], 0, len(keys))
	for _, k := range keys {
		links = append(links, Triple[NodeId, NodeId, Cost]{k.V1, k.V2, g.adj[k.V1][k.V2]})
	}
	return links
}

// Apply performs a single topology edit.
func (g *Graph) Apply(edit LinkCfg) error {
	if edit.IsRemoval() {
		g.RemoveLink(edit.A, edit.B)
		return nil
	}
	return g.AddLink(edit.A, edit.B, edit.Weight)
}
