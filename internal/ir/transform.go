package ir

import "fmt"

// Transform is one recorded rewrite of a domain.
//
// The set of transforms is closed: only *Split, *Merge and *Reorder
// implement it. Consumers dispatch with a type switch.
type Transform interface {
	// Inputs returns the domains consumed by the transform.
	// A well-formed history has exactly one.
	Inputs() []DomainID

	// Output returns the domain produced by the transform.
	Output() DomainID

	String() string

	isTransform()
}

// Split divides axis Axis into an outer axis and an inner axis of extent
// Factor. An N-axis input becomes an (N+1)-axis output.
type Split struct {
	In     []DomainID
	Out    DomainID
	Axis   int
	Factor int
}

// Inputs returns the input domains.
func (s *Split) Inputs() []DomainID { return s.In }

// Output returns the output domain.
func (s *Split) Output() DomainID { return s.Out }

func (s *Split) String() string {
	return fmt.Sprintf("split(axis=%d, factor=%d)", s.Axis, s.Factor)
}

func (*Split) isTransform() {}

// Merge fuses axes Axis and Axis+1 into one. An N-axis input becomes an
// (N-1)-axis output.
type Merge struct {
	In   []DomainID
	Out  DomainID
	Axis int
}

// Inputs returns the input domains.
func (m *Merge) Inputs() []DomainID { return m.In }

// Output returns the output domain.
func (m *Merge) Output() DomainID { return m.Out }

func (m *Merge) String() string {
	return fmt.Sprintf("merge(axis=%d)", m.Axis)
}

func (*Merge) isTransform() {}

// Reorder permutes the axes of a domain.
// Pos2Axis[newPosition] = oldPosition.
type Reorder struct {
	In       []DomainID
	Out      DomainID
	Pos2Axis []int
}

// Inputs returns the input domains.
func (r *Reorder) Inputs() []DomainID { return r.In }

// Output returns the output domain.
func (r *Reorder) Output() DomainID { return r.Out }

func (r *Reorder) String() string {
	return fmt.Sprintf("reorder(pos2axis=%v)", r.Pos2Axis)
}

func (*Reorder) isTransform() {}
