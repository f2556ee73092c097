package core

// Distance-vector (Bellman-Ford) rules for a single router. Every function here only
// mutates the router passed in; other routers are reached through the Network or read
// through immutable snapshots.

import (
	"github.com/encodeous/dvsim/state"
)

func classifyChange(prev, next state.Cost) RouterEvent {
	switch {
	case prev == state.INF:
		return RouteAdded
	case next == state.INF:
		return RouteRetracted
	case next < prev:
		return RouteImproved
	default:
		return RouteWorsened
	}
}

// RefreshDirectCosts re-reads the router's adjacency from the graph. The direct cell
// table[n][n] of every neighbour n takes the link weight, and every path through a node
// that is no longer a neighbour is dropped. The router always becomes dirty.
func RefreshDirectCosts(r *Router, g *state.Graph, n Network) bool {
	neighs := g.Neighbours(r.Id)
	changed := false
	for _, node := range r.Table.Nodes() {
		if w, ok := neighs[node]; ok {
			prev := r.Table.Get(node, node)
			if r.Table.Set(node, node, w) {
				changed = true
				n.Log(LinkRefreshed, "direct cost refreshed", "router", r.Id, "neigh", node, "from", prev, "to", w)
			}
		} else if r.Table.InvalidateVia(node) {
			changed = true
			n.Log(RouteRetracted, "dropped paths through lost neighbour", "router", r.Id, "via", node)
		}
	}
	r.needsUpdate = true
	return changed
}

// Advertise sends one snapshot of the table to every current neighbour if the router is
// dirty, then clears the flag. It returns the number of advertisements sent.
func Advertise(r *Router, g *state.Graph, n Network) int {
	if !r.needsUpdate {
		return 0
	}
	r.needsUpdate = false

	neighs := g.Neighbours(r.Id)
	if len(neighs) == 0 {
		return 0
	}
	adv := state.Advertisement{From: r.Id, Table: r.Table.Snapshot()}
	sent := 0
	for _, node := range r.Table.Nodes() {
		if _, ok := neighs[node]; ok {
			n.SendAdvertisement(node, adv)
			sent++
		}
	}
	n.Log(AdvertisementSent, "advertised table", "router", r.Id, "neighbours", sent)
	return sent
}

// ProcessUpdates drains the mailbox in arrival order and relaxes against each advertisement.
// It returns whether any cell changed.
func ProcessUpdates(r *Router, n Network) bool {
	changed := false
	for _, adv := range r.mailbox {
		if relax(r, adv, n) {
			changed = true
		}
	}
	r.mailbox = nil
	return changed
}

// relax applies the Bellman-Ford step for one advertisement: the cost to dest through the
// sender becomes the direct cost to the sender plus the sender's best advertised cost to dest.
// The sender's own row is left alone, only RefreshDirectCosts writes it.
func relax(r *Router, adv state.Advertisement, n Network) bool {
	sender := adv.From
	if !r.Table.Has(sender) {
		n.Log(InconsistentState, "advertisement from unknown router", "router", r.Id, "from", sender)
		return false
	}
	toSender := r.Table.Get(sender, sender)
	if toSender == state.INF {
		n.Log(NoLinkToSender, "advertisement from router without a direct link", "router", r.Id, "from", sender)
	}

	changed := false
	for _, dest := range r.Table.Nodes() {
		if dest == sender {
			continue
		}
		best, _ := adv.Table.MinCost(dest)
		prev := r.Table.Get(dest, sender)
		next := state.AddCost(toSender, best)
		if r.Table.Set(dest, sender, next) {
			changed = true
			r.needsUpdate = true
			n.Log(classifyChange(prev, next), "relaxed", "router", r.Id, "dest", dest, "via", sender, "from", prev, "to", next)
		}
	}
	return changed
}

// ComputeRoutes derives the routing table from the distance table and stores it on the router.
func ComputeRoutes(r *Router) state.RoutingTable {
	rt := make(state.RoutingTable, len(r.Table.Nodes()))
	for _, dest := range r.Table.Nodes() {
		c, via := r.Table.MinCost(dest)
		rt[dest] = state.Route{NextHop: via, Cost: c}
	}
	r.Routes = rt
	return rt
}

// Resync brings the router in line with a changed topology. Pending advertisements are
// discarded, direct costs are refreshed, and every path through a current neighbour is
// rebuilt from that neighbour's routing table as recorded in reg. It returns whether the
// table differs from its state before the call.
func Resync(r *Router, g *state.Graph, reg RouteRegistry, n Network) bool {
	prev := r.Table.Snapshot()
	if len(r.mailbox) > 0 {
		n.Log(MailboxDropped, "discarded pending advertisements", "router", r.Id, "count", len(r.mailbox))
	}
	r.mailbox = nil

	RefreshDirectCosts(r, g, n)
	neighs := g.Neighbours(r.Id)
	for _, neigh := range r.Table.Nodes() {
		if _, ok := neighs[neigh]; !ok {
			continue
		}
		routes, ok := reg.Lookup(neigh)
		if !ok {
			n.Log(InconsistentState, "no routing table recorded for neighbour", "router", r.Id, "neigh", neigh)
			continue
		}
		direct := r.Table.Get(neigh, neigh)
		for _, dest := range routes.Destinations() {
			if dest == r.Id {
				continue
			}
			r.Table.Set(dest, neigh, state.AddCost(direct, routes[dest].Cost))
		}
	}

	if r.Table.Equal(prev) {
		return false
	}
	r.needsUpdate = true
	n.Log(LinkRefreshed, "table changed after topology update", "router", r.Id, "diff", prev.Diff(r.Table.Snapshot()))
	return true
}
