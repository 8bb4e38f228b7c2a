package reduce

import (
	"fmt"

	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/topology"
)

// Mode selects how derivative snapshots are enumerated.
type Mode int

const (
	// ModeBulk builds one derivative per distinct edge, indexed from 1.
	ModeBulk Mode = iota
	// ModeTargeted builds a single derivative for an explicit criterion.
	ModeTargeted
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeBulk:
		return "bulk"
	case ModeTargeted:
		return "targeted"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// TargetedIndex is the metadata index recorded for targeted derivatives.
const TargetedIndex = 0

// Plan describes one derivative snapshot.
type Plan struct {
	// Index is 1-based in bulk mode and TargetedIndex in targeted mode.
	Index int
	Mode  Mode
	Partition
	Description string
}

// Suffixed reports whether the destination directory name carries the
// plan index.
func (p Plan) Suffixed() bool {
	return p.Mode == ModeBulk
}

// BulkDescription is the description recorded for the bulk derivative that
// removes e.
func BulkDescription(index int, e topology.Edge) string {
	return fmt.Sprintf("No.%02d: down %s[%s] <=> %s[%s] in layer1", index,
		e.Node1.Hostname, e.Node1.InterfaceName, e.Node2.Hostname, e.Node2.InterfaceName)
}

// Bulk returns one plan per distinct edge. Plan i removes exactly the
// edges equal to the i-th deduplicated edge from the full edge list.
func Bulk(edges []topology.Edge) []Plan {
	uniq := Deduplicate(edges)
	plans := make([]Plan, 0, len(uniq))
	for i, e := range uniq {
		index := i + 1
		plans = append(plans, Plan{
			Index:       index,
			Mode:        ModeBulk,
			Partition:   Without(edges, e),
			Description: BulkDescription(index, e),
		})
	}
	return plans
}

// Targeted returns the single plan drawing off c.
func Targeted(edges []topology.Edge, c Criterion) (Plan, error) {
	p, err := DrawOff(edges, c)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Index:       TargetedIndex,
		Mode:        ModeTargeted,
		Partition:   p,
		Description: c.String(),
	}, nil
}

// Reduce computes the derivative plans for mode. The criterion is ignored
// in bulk mode.
func Reduce(edges []topology.Edge, mode Mode, c Criterion) ([]Plan, error) {
	switch mode {
	case ModeBulk:
		return Bulk(edges), nil
	case ModeTargeted:
		p, err := Targeted(edges, c)
		if err != nil {
			return nil, err
		}
		return []Plan{p}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown reduce mode %v", mode)
	}
}
