package core

import (
	"fmt"
	"strings"

	"github.com/encodeous/dvsim/state"
)

type RouterEvent int

// trace events

const (
	RouteImproved RouterEvent = iota
	RouteWorsened
	RouteRetracted
	RouteAdded
	AdvertisementSent
	MailboxDropped
	LinkRefreshed
)

// warn events

const (
	InconsistentState RouterEvent = iota + 1000
	NoLinkToSender
)

func (e RouterEvent) String() string {
	switch e {
	case RouteImproved:
		return "RouteImproved"
	case RouteWorsened:
		return "RouteWorsened"
	case RouteRetracted:
		return "RouteRetracted"
	case RouteAdded:
		return "RouteAdded"
	case AdvertisementSent:
		return "AdvertisementSent"
	case MailboxDropped:
		return "MailboxDropped"
	case LinkRefreshed:
		return "LinkRefreshed"
	case InconsistentState:
		return "InconsistentState"
	case NoLinkToSender:
		return "NoLinkToSender"
	}
	return fmt.Sprintf("RouterEvent(%d)", int(e))
}

// Network is everything a router may touch outside its own state: delivery of
// advertisements to a neighbour's mailbox, and an event log.
type Network interface {
	SendAdvertisement(neigh state.NodeId, adv state.Advertisement)
	Log(event RouterEvent, desc string, args ...any)
}

// RouteRegistry is a read-only view of every router's last computed routing table.
// Routers consult it when re-synchronising after a topology change.
type RouteRegistry map[state.NodeId]state.RoutingTable

func (r RouteRegistry) Lookup(node state.NodeId) (state.RoutingTable, bool) {
	rt, ok := r[node]
	return rt, ok
}

// Router is one simulated node. Apart from Deliver, only the functions in router_algo.go
// mutate its table and mailbox.
type Router struct {
	Id     state.NodeId
	Table  *state.DistanceTable
	Routes state.RoutingTable

	mailbox     []state.Advertisement
	needsUpdate bool
}

func NewRouter(id state.NodeId, nodes []state.NodeId) *Router {
	return &Router{
		Id:     id,
		Table:  state.NewDistanceTable(id, nodes),
		Routes: make(state.RoutingTable),
	}
}

// Dirty reports whether the table changed since the router last advertised it.
func (r *Router) Dirty() bool {
	return r.needsUpdate
}

func (r *Router) Pending() int {
	return len(r.mailbox)
}

// Deliver queues an advertisement for the next process phase.
func (r *Router) Deliver(adv state.Advertisement) {
	r.mailbox = append(r.mailbox, adv)
}

func (r *Router) StringRoutes() string {
	sb := strings.Builder{}
	for i, dest := range r.Routes.Destinations() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s via %s", dest, r.Routes[dest]))
	}
	return sb.String()
}
