package ir

import "fmt"

// Axis is one loop of an iteration domain.
//
// Axes are immutable and compared by identity: two domains share an axis
// only when they hold the same *Axis. Transforms never modify an axis in
// place, they create new ones.
type Axis struct {
	id        int
	extent    int
	reduction bool
}

// ID returns the fusion-wide number of the axis.
func (a *Axis) ID() int {
	return a.id
}

// Extent returns the static trip count of the axis.
func (a *Axis) Extent() int {
	return a.extent
}

// IsReduction reports whether the axis is a reduction axis.
func (a *Axis) IsReduction() bool {
	return a.reduction
}

// SameAs reports whether a and other are the same axis.
func (a *Axis) SameAs(other *Axis) bool {
	return a == other
}

// String renders the axis as i<id>{extent}, or r<id>{extent} for reductions.
func (a *Axis) String() string {
	prefix := "i"
	if a.reduction {
		prefix = "r"
	}
	return fmt.Sprintf("%s%d{%d}", prefix, a.id, a.extent)
}
