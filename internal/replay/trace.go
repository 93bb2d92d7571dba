package replay

import (
	"github.com/pkg/errors"

	"github.com/born-ml/fuser/internal/ir"
)

// History is the producer-graph lookup the tracer walks. *ir.Fusion
// implements it.
type History interface {
	Origin(d ir.DomainID) (ir.Transform, bool)
}

// Trace walks d's producer graph back to its root domain.
//
// When record is true the traversed transforms are returned in application
// order (root first). Each transform on the path must have exactly one
// domain input, and no transform may be visited twice.
func Trace(h History, d ir.DomainID, record bool) (ir.DomainID, Record, error) {
	var rec Record
	visited := make(map[ir.Transform]struct{})

	root := d
	t, ok := h.Origin(root)
	for ok {
		if _, seen := visited[t]; seen {
			return 0, nil, errors.Wrapf(ErrCyclicHistory, "%s revisited while tracing domain %d", t, d)
		}
		visited[t] = struct{}{}

		inputs := t.Inputs()
		if len(inputs) != 1 {
			return 0, nil, errors.Wrapf(ErrAmbiguousHistory, "%s has %d domain inputs", t, len(inputs))
		}
		if record {
			rec = append(rec, t)
		}

		root = inputs[0]
		t, ok = h.Origin(root)
	}

	if record {
		rec = rec.Reversed()
	}
	return root, rec, nil
}
