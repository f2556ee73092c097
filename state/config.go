package state

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// LinkCfg is a single link line. In the update batch, Weight == RemoveWeight deletes the link.
type LinkCfg struct {
	A      NodeId `yaml:"a"`
	B      NodeId `yaml:"b"`
	Weight int    `yaml:"weight"`
}

func (l LinkCfg) IsRemoval() bool {
	return l.Weight == RemoveWeight
}

func (l LinkCfg) String() string {
	return fmt.Sprintf("%s %s %d", l.A, l.B, l.Weight)
}

// Scenario is a complete simulation input: the routers in declaration order, the initial
// links and the batch of topology edits applied after the first convergence.
type Scenario struct {
	Nodes   []NodeId  `yaml:"nodes"`
	Links   []LinkCfg `yaml:"links,omitempty"`
	Updates []LinkCfg `yaml:"updates,omitempty"`
}

// BuildGraph returns the initial topology with every declared node registered.
func (s *Scenario) BuildGraph() (*Graph, error) {
	g := NewGraph()
	for _, n := range s.Nodes {
		g.AddNode(n)
	}
	for _, l := range s.Links {
		if err := g.AddLink(l.A, l.B, l.Weight); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// UnmarshalScenario decodes a YAML scenario. Unknown fields are rejected.
func UnmarshalScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.UnmarshalWithOptions(data, &sc, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	return &sc, nil
}

func MarshalScenario(sc *Scenario) ([]byte, error) {
	return yaml.Marshal(sc)
}
