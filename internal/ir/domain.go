package ir

import "strings"

// DomainID is the arena handle of a Domain inside its Fusion.
type DomainID int

// Domain is an ordered sequence of axes describing an iteration space.
type Domain struct {
	id   DomainID
	axes []*Axis
}

// ID returns the arena handle of the domain.
func (d *Domain) ID() DomainID {
	return d.id
}

// Size returns the number of axes.
func (d *Domain) Size() int {
	return len(d.axes)
}

// Axis returns the axis at position i.
// Panics if i is out of range.
func (d *Domain) Axis(i int) *Axis {
	return d.axes[i]
}

// Axes returns a copy of the axis list.
func (d *Domain) Axes() []*Axis {
	axes := make([]*Axis, len(d.axes))
	copy(axes, d.axes)
	return axes
}

// Extents returns the extent of every axis in order.
func (d *Domain) Extents() Extents {
	ext := make(Extents, len(d.axes))
	for i, a := range d.axes {
		ext[i] = a.extent
	}
	return ext
}

// HasReduction reports whether any axis is a reduction axis.
func (d *Domain) HasReduction() bool {
	for _, a := range d.axes {
		if a.reduction {
			return true
		}
	}
	return false
}

// SameAs reports whether both domains hold the same axes in the same order.
func (d *Domain) SameAs(other *Domain) bool {
	if d == other {
		return true
	}
	if other == nil || len(d.axes) != len(other.axes) {
		return false
	}
	for i, a := range d.axes {
		if !a.SameAs(other.axes[i]) {
			return false
		}
	}
	return true
}

// String renders the domain as [i0{8}, i1{4}, r2{3}].
func (d *Domain) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, a := range d.axes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
