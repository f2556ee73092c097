package core

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/encodeous/dvsim/state"
	"github.com/google/go-cmp/cmp"
)

type HarnessEvent struct {
	Message string
	Args    []any
}

func MakeEvent(msg string, args ...any) HarnessEvent {
	return HarnessEvent{
		Message: msg,
		Args:    args,
	}
}

// RouterHarness is a Network that records instead of delivering.
type RouterHarness struct {
	actions []HarnessEvent
	sent    []state.Advertisement
}

func (h *RouterHarness) SendAdvertisement(neigh state.NodeId, adv state.Advertisement) {
	h.actions = append(h.actions, MakeEvent("ADVERTISE", neigh, adv.From))
	h.sent = append(h.sent, adv)
}

func (h *RouterHarness) Log(event RouterEvent, desc string, args ...any) {
	x := make([]any, 0)
	x = append(x, event)
	x = append(x, desc)
	x = append(x, args...)
	h.actions = append(h.actions, MakeEvent("LOG", x...))
}

type HarnessEvents []HarnessEvent

func (h HarnessEvents) String() string {
	out := make([]string, 0)
	for _, action := range h {
		cur := action.Message
		for _, arg := range action.Args {
			cur += " " + fmt.Sprint(arg)
		}
		out = append(out, cur)
	}
	slices.Sort(out)
	return strings.Join(out, "\n")
}

// GetActions returns and clears every recorded non-log action.
func (h *RouterHarness) GetActions() HarnessEvents {
	x := make([]HarnessEvent, 0)
	for _, action := range h.actions {
		if action.Message != "LOG" {
			x = append(x, action)
		}
	}

	h.actions = make([]HarnessEvent, 0)
	return x
}

// GetLogs returns and clears every recorded log event.
func (h *RouterHarness) GetLogs() HarnessEvents {
	x := make([]HarnessEvent, 0)
	rest := make([]HarnessEvent, 0)
	for _, action := range h.actions {
		if action.Message == "LOG" {
			x = append(x, action)
		} else {
			rest = append(rest, action)
		}
	}
	h.actions = rest
	return x
}

func (e HarnessEvents) contains(msg string, args ...any) bool {
	for _, event := range e {
		if event.Message == msg {
			if len(event.Args) >= len(args) {
				match := true
				for i, arg := range args {
					if !cmp.Equal(event.Args[i], arg) {
						match = false
						break
					}
				}
				if match {
					return true
				}
			}
		}
	}
	return false
}

func (e HarnessEvents) AssertContains(t *testing.T, msg string, args ...any) {
	t.Helper()
	if e.contains(msg, args...) {
		return
	}
	t.Fatal("Expected event not found: ", msg, " with args: ", args, " in ", e)
}

func (e HarnessEvents) AssertNotContains(t *testing.T, msg string, args ...any) {
	t.Helper()
	if e.contains(msg, args...) {
		t.Fatal("Unexpected event found: ", msg, " with args: ", args, " in ", e)
	}
}

// MakeGraph builds a graph from "a b weight" triples.
func MakeGraph(t *testing.T, nodes []state.NodeId, links ...state.LinkCfg) *state.Graph {
	t.Helper()
	g := state.NewGraph()
	for _, n := range nodes {
		g.AddNode(n)
	}
	for _, l := range links {
		if err := g.AddLink(l.A, l.B, l.Weight); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func Link(a, b state.NodeId, w int) state.LinkCfg {
	return state.LinkCfg{A: a, B: b, Weight: w}
}

// MakeRouters builds one refreshed router per node and delivers nothing.
func MakeRouters(h *RouterHarness, g *state.Graph, nodes ...state.NodeId) map[state.NodeId]*Router {
	rs := make(map[state.NodeId]*Router)
	for _, n := range nodes {
		r := NewRouter(n, nodes)
		RefreshDirectCosts(r, g, h)
		rs[n] = r
	}
	return rs
}
