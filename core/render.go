package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/encodeous/dvsim/state"
)

// Renderer writes distance and routing tables in the fixed text format. Write errors are
// sticky and reported by Flush.
type Renderer struct {
	w *bufio.Writer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: bufio.NewWriter(w)}
}

func formatCost(c state.Cost) string {
	if c == state.INF {
		return state.InfToken
	}
	return c.String()
}

// DistanceTable prints the header line, a tab separated matrix with destinations as rows and
// first hops as columns (both sorted), and a trailing blank line.
func (p *Renderer) DistanceTable(r *Router, t int) {
	fmt.Fprintf(p.w, "Distance Table of router %s at t=%d\n", r.Id, t)
	dests := r.Table.Destinations()

	header := make([]string, 0, len(dests)+1)
	header = append(header, state.TableCornerToken)
	for _, d := range dests {
		header = append(header, string(d))
	}
	fmt.Fprintln(p.w, strings.Join(header, "\t"))

	for _, dest := range dests {
		row := make([]string, 0, len(dests)+1)
		row = append(row, string(dest))
		for _, via := range dests {
			row = append(row, formatCost(r.Table.Get(dest, via)))
		}
		fmt.Fprintln(p.w, strings.Join(row, "\t"))
	}
	fmt.Fprintln(p.w)
}

// RoutingTable prints dest,nextHop,cost for every destination of the router's last
// computed routing table.
func (p *Renderer) RoutingTable(r *Router) {
	fmt.Fprintf(p.w, "Routing table of router %s:\n", r.Id)
	for _, dest := range r.Routes.Destinations() {
		route := r.Routes[dest]
		nh, cost := state.NoNextHopToken, state.RouteInfToken
		if route.Reachable() {
			nh, cost = string(route.NextHop), route.Cost.String()
		}
		fmt.Fprintf(p.w, "%s,%s,%s\n", dest, nh, cost)
	}
	fmt.Fprintln(p.w)
}

func (p *Renderer) Flush() error {
	return p.w.Flush()
}
