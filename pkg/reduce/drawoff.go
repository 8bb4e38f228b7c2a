package reduce

import (
	"regexp"
	"strings"

	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/topology"
)

// Criterion selects the links of one node to draw off.
type Criterion struct {
	// Node is the hostname, compared case-insensitively.
	Node string
	// Pattern is a regular expression over the whole interface name.
	// Empty matches every interface.
	Pattern string
}

// String renders the criterion as the targeted-mode description.
func (c Criterion) String() string {
	pattern := c.Pattern
	if pattern == "" {
		pattern = "None"
	}
	return "Draw-off node: " + c.Node + ", link_pattern: " + pattern
}

// Matcher is a compiled Criterion.
type Matcher struct {
	node string
	re   *regexp.Regexp
}

// Compile validates the criterion and compiles its pattern.
func (c Criterion) Compile() (*Matcher, error) {
	if c.Node == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "draw-off node cannot be empty")
	}
	pattern := c.Pattern
	if pattern == "" {
		pattern = ".*"
	}
	re, err := regexp.Compile(`(?i)^(?:` + pattern + `)$`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "compile link pattern %q", c.Pattern)
	}
	return &Matcher{node: c.Node, re: re}, nil
}

// Match reports whether ep belongs to the node and its interface name
// matches the pattern.
func (m *Matcher) Match(ep topology.Endpoint) bool {
	return strings.EqualFold(ep.Hostname, m.node) && m.re.MatchString(ep.InterfaceName)
}

// MatchEdge reports whether either endpoint of e matches.
func (m *Matcher) MatchEdge(e topology.Edge) bool {
	return m.Match(e.Node1) || m.Match(e.Node2)
}

// Partition is the result of a draw-off.
type Partition struct {
	Lost  []topology.Edge `json:"lost_edges"`
	Found []topology.Edge `json:"found_edges"`
}

// Len returns the total number of edges in both halves.
func (p Partition) Len() int {
	return len(p.Lost) + len(p.Found)
}

// Split partitions edges with an arbitrary predicate. Both halves keep the
// input order and are never nil.
func Split(edges []topology.Edge, lost func(topology.Edge) bool) Partition {
	p := Partition{
		Lost:  []topology.Edge{},
		Found: make([]topology.Edge, 0, len(edges)),
	}
	for _, e := range edges {
		if lost(e) {
			p.Lost = append(p.Lost, e)
		} else {
			p.Found = append(p.Found, e)
		}
	}
	return p
}

// DrawOff moves every edge touching the criterion's node on a matching
// interface into Lost. A node that matches nothing yields an empty Lost and
// a Found equal to the input; that is not an error.
func DrawOff(edges []topology.Edge, c Criterion) (Partition, error) {
	m, err := c.Compile()
	if err != nil {
		return Partition{}, err
	}
	return Split(edges, m.MatchEdge), nil
}

// Without removes every edge undirected-equal to target.
func Without(edges []topology.Edge, target topology.Edge) Partition {
	key := target.Key()
	return Split(edges, func(e topology.Edge) bool { return e.Key() == key })
}
