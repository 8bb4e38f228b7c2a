package reduce

import (
	"slices"
	"testing"

	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/topology"
)

func TestDrawOffScenario(t *testing.T) {
	edges := []topology.Edge{
		topology.NewEdge("A", "eth1", "B", "eth1"),
		topology.NewEdge("B", "eth2", "C", "eth1"),
	}
	p, err := DrawOff(edges, Criterion{Node: "B", Pattern: "eth.*"})
	if err != nil {
		t.Fatalf("DrawOff() error: %v", err)
	}
	if !slices.Equal(p.Lost, edges) {
		t.Errorf("Lost = %v, want %v", p.Lost, edges)
	}
	if len(p.Found) != 0 {
		t.Errorf("Found = %v, want empty", p.Found)
	}
}

func TestDrawOff(t *testing.T) {
	edges := []topology.Edge{ab, cd, ba, b2c}

	tests := []struct {
		name      string
		criterion Criterion
		wantLost  []topology.Edge
		wantFound []topology.Edge
	}{
		{
			name:      "all interfaces of node",
			criterion: Criterion{Node: "B"},
			wantLost:  []topology.Edge{ab, ba, b2c},
			wantFound: []topology.Edge{cd},
		},
		{
			name:      "hostname case-insensitive",
			criterion: Criterion{Node: "b", Pattern: "eth2"},
			wantLost:  []topology.Edge{b2c},
			wantFound: []topology.Edge{ab, cd, ba},
		},
		{
			name:      "pattern case-insensitive",
			criterion: Criterion{Node: "C", Pattern: "ETH2"},
			wantLost:  []topology.Edge{cd},
			wantFound: []topology.Edge{ab, ba, b2c},
		},
		{
			name:      "whole-string match only",
			criterion: Criterion{Node: "B", Pattern: "eth"},
			wantLost:  []topology.Edge{},
			wantFound: []topology.Edge{ab, cd, ba, b2c},
		},
		{
			name:      "alternation anchored as a whole",
			criterion: Criterion{Node: "A", Pattern: "xx|eth1"},
			wantLost:  []topology.Edge{ab, ba},
			wantFound: []topology.Edge{cd, b2c},
		},
		{
			name:      "interface matched on node side only",
			criterion: Criterion{Node: "C", Pattern: "eth1"},
			wantLost:  []topology.Edge{b2c},
			wantFound: []topology.Edge{ab, cd, ba},
		},
		{
			name:      "unknown node is a no-op",
			criterion: Criterion{Node: "Z"},
			wantLost:  []topology.Edge{},
			wantFound: []topology.Edge{ab, cd, ba, b2c},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DrawOff(edges, tt.criterion)
			if err != nil {
				t.Fatalf("DrawOff() error: %v", err)
			}
			if !slices.Equal(p.Lost, tt.wantLost) {
				t.Errorf("Lost = %v, want %v", p.Lost, tt.wantLost)
			}
			if !slices.Equal(p.Found, tt.wantFound) {
				t.Errorf("Found = %v, want %v", p.Found, tt.wantFound)
			}
		})
	}
}

func TestDrawOffPartitionComplete(t *testing.T) {
	edges := []topology.Edge{ab, cd, ba, b2c, dc}
	criteria := []Criterion{
		{Node: "A"},
		{Node: "B", Pattern: "eth2"},
		{Node: "D", Pattern: ".*"},
		{Node: "nobody"},
	}

	for _, c := range criteria {
		p, err := DrawOff(edges, c)
		if err != nil {
			t.Fatalf("DrawOff(%v) error: %v", c, err)
		}
		if p.Len() != len(edges) {
			t.Errorf("%v: len(lost)+len(found) = %d, want %d", c, p.Len(), len(edges))
		}

		// Merging both halves back by original position must restore the input.
		var merged []topology.Edge
		li, fi := 0, 0
		m, _ := c.Compile()
		for _, e := range edges {
			if m.MatchEdge(e) {
				merged = append(merged, p.Lost[li])
				li++
			} else {
				merged = append(merged, p.Found[fi])
				fi++
			}
		}
		if !slices.Equal(merged, edges) {
			t.Errorf("%v: merged partition = %v, want %v", c, merged, edges)
		}
	}
}

func TestDrawOffErrors(t *testing.T) {
	tests := []struct {
		name      string
		criterion Criterion
		code      errors.Code
	}{
		{"empty node", Criterion{Pattern: "eth1"}, errors.ErrCodeInvalidInput},
		{"bad pattern", Criterion{Node: "A", Pattern: "eth[0"}, errors.ErrCodeInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DrawOff([]topology.Edge{ab}, tt.criterion)
			if !errors.Is(err, tt.code) {
				t.Errorf("DrawOff() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestWithout(t *testing.T) {
	edges := []topology.Edge{ab, cd, ba, b2c}
	p := Without(edges, ba)

	if !slices.Equal(p.Lost, []topology.Edge{ab, ba}) {
		t.Errorf("Lost = %v, want both orientations of A-B", p.Lost)
	}
	if !slices.Equal(p.Found, []topology.Edge{cd, b2c}) {
		t.Errorf("Found = %v, want %v", p.Found, []topology.Edge{cd, b2c})
	}
}

func TestWithoutIgnoresOtherLinksOfSameInterface(t *testing.T) {
	// A broken topology may list two cables on A[eth1]; only the exact link goes.
	other := topology.NewEdge("A", "eth1", "C", "eth9")
	p := Without([]topology.Edge{ab, other}, ab)
	if !slices.Equal(p.Found, []topology.Edge{other}) {
		t.Errorf("Found = %v, want %v", p.Found, []topology.Edge{other})
	}
}

func TestCriterionString(t *testing.T) {
	tests := []struct {
		c    Criterion
		want string
	}{
		{Criterion{Node: "pe01", Pattern: "ge-.*"}, "Draw-off node: pe01, link_pattern: ge-.*"},
		{Criterion{Node: "pe01"}, "Draw-off node: pe01, link_pattern: None"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
