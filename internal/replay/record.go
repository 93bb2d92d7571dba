package replay

import (
	"strings"

	"github.com/born-ml/fuser/internal/ir"
)

// Record is the ordered list of transforms that turned a root domain into a
// leaf domain, in application order (root first).
//
// Usage:
//
//	root, rec, err := replay.Trace(f, tv.DomainID(), true)
//	for _, t := range rec {
//	    // t applied to root, then to its output, ...
//	}
type Record []ir.Transform

// Len returns the number of recorded transforms.
func (r Record) Len() int {
	return len(r)
}

// Reversed returns a copy of the record in leaf-to-root order, the order
// influence is propagated in.
func (r Record) Reversed() Record {
	rev := make(Record, len(r))
	for i, t := range r {
		rev[len(r)-1-i] = t
	}
	return rev
}

// String renders the record as "split(axis=0, factor=2) -> merge(axis=1)".
func (r Record) String() string {
	parts := make([]string, len(r))
	for i, t := range r {
		parts[i] = t.String()
	}
	return strings.Join(parts, " -> ")
}
