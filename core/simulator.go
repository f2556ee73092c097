package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/encodeous/dvsim/perf"
	"github.com/encodeous/dvsim/state"
)

type SimState int

const (
	Initializing SimState = iota
	Converging
	Converged
	Terminated
)

func (s SimState) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Converging:
		return "converging"
	case Converged:
		return "converged"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("SimState(%d)", int(s))
}

type Phase int

const (
	PhaseInitial Phase = iota
	PhasePostChange
)

func (p Phase) String() string {
	if p == PhaseInitial {
		return "initial"
	}
	return "post-change"
}

// Result summarises a run.
type Result struct {
	// Rounds holds the number of printed rounds per phase, t=0 and the post-change snapshot excluded.
	Rounds         map[Phase]int
	FinalRound     int
	Advertisements int
	CellsChanged   int
	// TopologyChanged is false when the edit batch left every table untouched.
	TopologyChanged bool
	// Bounded is true when a phase stopped at MaxRounds instead of converging.
	Bounded bool
}

type Options struct {
	Out       io.Writer
	Log       *slog.Logger
	MaxRounds int
}

// Simulator drives the whole population in global lockstep rounds. Routers only learn
// about each other through advertisements the simulator carries between mailboxes.
type Simulator struct {
	graph   *state.Graph
	routers []*Router
	byId    map[state.NodeId]*Router
	updates []state.LinkCfg

	round     int
	phase     Phase
	state     SimState
	maxRounds int

	out    *Renderer
	log    *slog.Logger
	result Result
}

// NewSimulator validates the scenario and builds one router per declared node, in
// declaration order, with direct costs loaded from the initial topology.
func NewSimulator(sc *state.Scenario, opts Options) (*Simulator, error) {
	if err := state.ScenarioValidator(sc); err != nil {
		return nil, err
	}
	g, err := sc.BuildGraph()
	if err != nil {
		return nil, err
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}

	s := &Simulator{
		graph:     g,
		byId:      make(map[state.NodeId]*Router, len(sc.Nodes)),
		updates:   sc.Updates,
		state:     Initializing,
		maxRounds: opts.MaxRounds,
		out:       NewRenderer(opts.Out),
		log:       opts.Log,
		result:    Result{Rounds: make(map[Phase]int)},
	}
	for _, id := range sc.Nodes {
		r := NewRouter(id, sc.Nodes)
		RefreshDirectCosts(r, g, s)
		s.routers = append(s.routers, r)
		s.byId[id] = r
	}
	return s, nil
}

func (s *Simulator) SendAdvertisement(neigh state.NodeId, adv state.Advertisement) {
	r, ok := s.byId[neigh]
	if !ok {
		s.Log(InconsistentState, "advertisement to unknown router", "from", adv.From, "to", neigh)
		return
	}
	r.Deliver(adv)
	s.result.Advertisements++
	perf.AdvertisementsSent.Add(1)
}

func (s *Simulator) Log(event RouterEvent, desc string, args ...any) {
	switch event {
	case RouteImproved, RouteWorsened, RouteRetracted, RouteAdded:
		s.result.CellsChanged++
		perf.CellsRelaxed.Add(1)
	}
	args = append([]any{"event", event.String(), "t", s.round}, args...)
	if event >= InconsistentState {
		s.log.Warn(desc, args...)
	} else {
		s.log.Debug(desc, args...)
	}
}

func (s *Simulator) Graph() *state.Graph {
	return s.graph
}

func (s *Simulator) Router(id state.NodeId) *Router {
	return s.byId[id]
}

// Routers returns the population in declaration order.
func (s *Simulator) Routers() []*Router {
	return s.routers
}

// Round is the t of the next table print.
func (s *Simulator) Round() int {
	return s.round
}

func (s *Simulator) State() SimState {
	return s.state
}

func (s *Simulator) Result() Result {
	return s.result
}

func (s *Simulator) printTables(t int) {
	for _, r := range s.routers {
		s.out.DistanceTable(r, t)
	}
}

func (s *Simulator) printRoutes() {
	for _, r := range s.routers {
		ComputeRoutes(r)
		s.out.RoutingTable(r)
	}
}

func (s *Simulator) snapshot() map[state.NodeId]state.TableSnapshot {
	snaps := make(map[state.NodeId]state.TableSnapshot, len(s.routers))
	for _, r := range s.routers {
		snaps[r.Id] = r.Table.Snapshot()
	}
	return snaps
}

func (s *Simulator) unchangedSince(snaps map[state.NodeId]state.TableSnapshot) bool {
	for _, r := range s.routers {
		if !r.Table.Equal(snaps[r.Id]) {
			return false
		}
	}
	return true
}

func (s *Simulator) anyDirty() bool {
	for _, r := range s.routers {
		if r.Dirty() {
			return true
		}
	}
	return false
}

// Step runs one global round: every router advertises from the state at the start of the
// round, and only then does any router process its mailbox.
func (s *Simulator) Step() {
	start := time.Now()
	for _, r := range s.routers {
		Advertise(r, s.graph, s)
	}
	for _, r := range s.routers {
		ProcessUpdates(r, s)
	}
	perf.Rounds.Add(1)
	perf.RoundLatency.Add(float64(time.Since(start).Microseconds()))
}

// Converge runs rounds until no table changes. A round that changed something is printed
// and advances t; the loop also ends once no router is left dirty, or when MaxRounds is
// reached.
func (s *Simulator) Converge(ctx context.Context) error {
	s.state = Converging
	prev := s.snapshot()
	rounds := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Step()
		if s.unchangedSince(prev) {
			break
		}
		prev = s.snapshot()
		s.printTables(s.round)
		s.round++
		rounds++
		if !s.anyDirty() {
			break
		}
		if s.maxRounds > 0 && rounds >= s.maxRounds {
			s.log.Warn("stopped before convergence, possible count-to-infinity", "phase", s.phase, "rounds", rounds)
			s.result.Bounded = true
			break
		}
	}
	s.result.Rounds[s.phase] += rounds
	s.state = Converged
	s.log.Info("converged", "phase", s.phase, "rounds", rounds, "t", s.round)
	return nil
}

// ApplyTopologyChanges applies every edit to the graph, then re-synchronises each router
// against the routing tables its neighbours held before the edits. It returns whether any
// table changed.
func (s *Simulator) ApplyTopologyChanges(edits []state.LinkCfg) (bool, error) {
	for _, e := range edits {
		if _, ok := s.byId[e.A]; !ok {
			return false, fmt.Errorf("update %s: %s: %w", e, e.A, state.ErrUnknownNode)
		}
		if _, ok := s.byId[e.B]; !ok {
			return false, fmt.Errorf("update %s: %s: %w", e, e.B, state.ErrUnknownNode)
		}
		if err := s.graph.Apply(e); err != nil {
			return false, fmt.Errorf("update %s: %w", e, err)
		}
		perf.TopologyEdits.Add(1)
		s.log.Debug("applied topology edit", "edit", e.String(), "removal", e.IsRemoval())
	}

	reg := make(RouteRegistry, len(s.routers))
	for _, r := range s.routers {
		reg[r.Id] = r.Routes.Clone()
	}
	changed := false
	for _, r := range s.routers {
		if Resync(r, s.graph, reg, s) {
			changed = true
		}
	}
	return changed, nil
}

// Run executes the full simulation: the initial tables at t=0, convergence, routing tables,
// then the edit batch followed by a second convergence. If the edits change nothing the run
// ends right after the first routing tables.
func (s *Simulator) Run(ctx context.Context) (res Result, err error) {
	if s.state != Initializing {
		return s.result, fmt.Errorf("simulator already %s", s.state)
	}
	defer func() {
		s.state = Terminated
		s.result.FinalRound = s.round
		res = s.result
		err = errors.Join(err, s.out.Flush())
	}()

	s.phase = PhaseInitial
	s.printTables(s.round)
	s.round++
	if err = s.Converge(ctx); err != nil {
		return
	}
	s.printRoutes()

	s.phase = PhasePostChange
	changed, err := s.ApplyTopologyChanges(s.updates)
	if err != nil {
		return
	}
	s.result.TopologyChanged = changed
	if !changed {
		s.log.Info("topology edits changed no table")
		return
	}
	s.printTables(s.round)
	s.round++
	if err = s.Converge(ctx); err != nil {
		return
	}
	s.printRoutes()
	return
}
