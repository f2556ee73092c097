package state

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrMalformedLine     = errors.New("expected three fields: node1 node2 weight")
	ErrBadWeight         = errors.New("weight is not an integer")
	ErrMissingTerminator = errors.New("input ended before section terminator")
)

// ParseError locates a malformed input line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type section int

const (
	sectionNodes section = iota
	sectionLinks
	sectionUpdates
	sectionDone
)

var terminators = map[section]string{
	sectionNodes:   StartMarker,
	sectionLinks:   UpdateMarker,
	sectionUpdates: EndMarker,
}

// ParseScenario reads the line protocol: node names until START, links until UPDATE, and
// topology edits until END. Blank lines are skipped and anything after END is ignored.
// The result is not validated, see ScenarioValidator.
func ParseScenario(r io.Reader) (*Scenario, error) {
	sc := &Scenario{}
	sec := sectionNodes
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for sec != sectionDone && scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == terminators[sec] {
			sec++
			continue
		}
		switch sec {
		case sectionNodes:
			sc.Nodes = append(sc.Nodes, NodeId(line))
		case sectionLinks, sectionUpdates:
			link, err := parseLink(line)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Text: line, Err: err}
			}
			if sec == sectionLinks {
				sc.Links = append(sc.Links, link)
			} else {
				sc.Updates = append(sc.Updates, link)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if sec != sectionDone {
		return nil, fmt.Errorf("waiting for %s: %w", terminators[sec], ErrMissingTerminator)
	}
	return sc, nil
}

func parseLink(line string) (LinkCfg, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return LinkCfg{}, ErrMalformedLine
	}
	w, err := strconv.Atoi(fields[2])
	if err != nil {
		return LinkCfg{}, fmt.Errorf("%w: %s", ErrBadWeight, fields[2])
	}
	return LinkCfg{A: NodeId(fields[0]), B: NodeId(fields[1]), Weight: w}, nil
}

// WriteScenario encodes sc in the line protocol.
func WriteScenario(w io.Writer, sc *Scenario) error {
	bw := bufio.NewWriter(w)
	for _, n := range sc.Nodes {
		fmt.Fprintln(bw, n)
	}
	fmt.Fprintln(bw, StartMarker)
	for _, l := range sc.Links {
		fmt.Fprintln(bw, l)
	}
	fmt.Fprintln(bw, UpdateMarker)
	for _, l := range sc.Updates {
		fmt.Fprintln(bw, l)
	}
	fmt.Fprintln(bw, EndMarker)
	return bw.Flush()
}
