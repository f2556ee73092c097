package state

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

var blankPattern, _ = regexp.Compile(`[\s\v\x{85}\p{Z}]`)

var (
	ErrUnknownNode   = errors.New("node not declared")
	ErrDuplicateNode = errors.New("node declared twice")
)

// NameValidator accepts any non-empty name that fits in one field of the line protocol.
func NameValidator(s string) error {
	if s == "" {
		return errors.New("node name must not be empty")
	}
	if blankPattern.MatchString(s) {
		return fmt.Errorf("%q is not a valid name, it must not contain whitespace", s)
	}
	return nil
}

func linkValidator(nodes []NodeId, l LinkCfg, minWeight int) error {
	for _, n := range []NodeId{l.A, l.B} {
		if !slices.Contains(nodes, n) {
			return fmt.Errorf("link %s: %s: %w", l, n, ErrUnknownNode)
		}
	}
	if l.A == l.B {
		return fmt.Errorf("link %s: %w", l, ErrSelfLink)
	}
	if l.Weight < minWeight {
		return fmt.Errorf("link %s: %w", l, ErrNegativeWeight)
	}
	return nil
}

// ScenarioValidator checks that every name is valid and unique, and every link and edit
// refers to declared nodes with an acceptable weight.
func ScenarioValidator(sc *Scenario) error {
	for i, n := range sc.Nodes {
		if err := NameValidator(string(n)); err != nil {
			return err
		}
		if slices.Contains(sc.Nodes[:i], n) {
			return fmt.Errorf("%s: %w", n, ErrDuplicateNode)
		}
	}
	for _, l := range sc.Links {
		if err := linkValidator(sc.Nodes, l, 0); err != nil {
			return err
		}
	}
	for _, l := range sc.Updates {
		if err := linkValidator(sc.Nodes, l, RemoveWeight); err != nil {
			return fmt.Errorf("update: %w", err)
		}
	}
	return nil
}
