package reduce

import (
	"slices"
	"testing"

	"github.com/matzehuels/linkdown/pkg/topology"
)

var (
	ab  = topology.NewEdge("A", "eth1", "B", "eth1")
	ba  = topology.NewEdge("B", "eth1", "A", "eth1")
	cd  = topology.NewEdge("C", "eth2", "D", "eth2")
	dc  = topology.NewEdge("D", "eth2", "C", "eth2")
	b2c = topology.NewEdge("B", "eth2", "C", "eth1")
)

func TestDeduplicateScenario(t *testing.T) {
	got := Deduplicate([]topology.Edge{ab, ba, cd})
	want := []topology.Edge{ab, cd}
	if !slices.Equal(got, want) {
		t.Errorf("Deduplicate() = %v, want %v", got, want)
	}
}

func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name  string
		input []topology.Edge
		want  []topology.Edge
	}{
		{"empty", []topology.Edge{}, []topology.Edge{}},
		{"nil", nil, []topology.Edge{}},
		{"no duplicates", []topology.Edge{ab, cd, b2c}, []topology.Edge{ab, cd, b2c}},
		{"exact duplicate", []topology.Edge{ab, ab}, []topology.Edge{ab}},
		{"reverse first kept", []topology.Edge{ba, cd, ab}, []topology.Edge{ba, cd}},
		{"interleaved", []topology.Edge{ab, cd, ba, dc, b2c}, []topology.Edge{ab, cd, b2c}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deduplicate(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Deduplicate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	inputs := [][]topology.Edge{
		{ab, ba, cd},
		{ba, ab, ba, dc, cd, b2c},
		{b2c},
		{},
	}
	for _, in := range inputs {
		once := Deduplicate(in)
		twice := Deduplicate(once)
		if !slices.Equal(once, twice) {
			t.Errorf("Deduplicate not idempotent: %v then %v", once, twice)
		}
	}
}

func TestDeduplicateCoverage(t *testing.T) {
	in := []topology.Edge{ab, cd, ba, dc, b2c, ab}
	out := Deduplicate(in)
	for _, e := range in {
		matches := 0
		for _, u := range out {
			if e.Equal(u) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("edge %v matches %d output edges, want exactly 1", e, matches)
		}
	}
}

func TestDeduplicateDoesNotModifyInput(t *testing.T) {
	in := []topology.Edge{ab, ba, cd}
	orig := slices.Clone(in)
	_ = Deduplicate(in)
	if !slices.Equal(in, orig) {
		t.Errorf("input modified: %v, want %v", in, orig)
	}
}

func TestDuplicates(t *testing.T) {
	got := Duplicates([]topology.Edge{ab, cd, ba, dc, b2c})
	want := []topology.Edge{ba, dc}
	if !slices.Equal(got, want) {
		t.Errorf("Duplicates() = %v, want %v", got, want)
	}
}
