package ir

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Fusion is the arena owning every axis, domain and transform of one fused
// kernel. It is not safe for concurrent mutation.
type Fusion struct {
	id         uuid.UUID
	domains    []*Domain
	transforms []Transform
	origin     map[DomainID]Transform // producer map: output domain -> transform
	nextAxis   int
}

// NewFusion creates an empty fusion.
func NewFusion() *Fusion {
	return &Fusion{
		id:     uuid.New(),
		origin: make(map[DomainID]Transform),
	}
}

// ID returns the unique identifier of the fusion.
func (f *Fusion) ID() uuid.UUID {
	return f.id
}

// NewAxis creates a fresh axis.
// Panics if extent is not positive.
func (f *Fusion) NewAxis(extent int, reduction bool) *Axis {
	if extent <= 0 {
		panic(fmt.Sprintf("ir: axis extent must be > 0, got %d", extent))
	}
	a := &Axis{id: f.nextAxis, extent: extent, reduction: reduction}
	f.nextAxis++
	return a
}

// NewDomain registers a domain holding the given axes.
func (f *Fusion) NewDomain(axes ...*Axis) DomainID {
	id := DomainID(len(f.domains))
	held := make([]*Axis, len(axes))
	copy(held, axes)
	f.domains = append(f.domains, &Domain{id: id, axes: held})
	return id
}

// Domain returns the domain with the given handle, or nil if unknown.
func (f *Fusion) Domain(id DomainID) *Domain {
	if id < 0 || int(id) >= len(f.domains) {
		return nil
	}
	return f.domains[id]
}

// NumDomains returns the number of domains in the arena.
func (f *Fusion) NumDomains() int {
	return len(f.domains)
}

// NumTransforms returns the number of transforms in the arena.
func (f *Fusion) NumTransforms() int {
	return len(f.transforms)
}

// Origin returns the transform that produced d.
// The second result is false for root domains.
func (f *Fusion) Origin(d DomainID) (Transform, bool) {
	t, ok := f.origin[d]
	return t, ok
}

// Link registers t in the arena as the producer of t.Output().
// Every domain t references must already exist.
func (f *Fusion) Link(t Transform) error {
	if f.Domain(t.Output()) == nil {
		return errors.Wrapf(ErrUnknownDomain, "%s output %d", t, t.Output())
	}
	for _, in := range t.Inputs() {
		if f.Domain(in) == nil {
			return errors.Wrapf(ErrUnknownDomain, "%s input %d", t, in)
		}
	}
	f.transforms = append(f.transforms, t)
	f.origin[t.Output()] = t
	return nil
}

// NewTensor creates a tensor view over a fresh root domain with one
// iteration axis per extent.
func (f *Fusion) NewTensor(name string, ext Extents) (*TensorView, error) {
	if err := ext.Validate(); err != nil {
		return nil, errors.Wrapf(err, "tensor %q", name)
	}
	axes := make([]*Axis, len(ext))
	for i, e := range ext {
		axes[i] = f.NewAxis(e, false)
	}
	return f.NewTensorView(name, f.NewDomain(axes...))
}

// NewTensorView binds a new tensor view to an existing domain.
func (f *Fusion) NewTensorView(name string, d DomainID) (*TensorView, error) {
	if f.Domain(d) == nil {
		return nil, errors.Wrapf(ErrUnknownDomain, "tensor %q domain %d", name, d)
	}
	return &TensorView{name: name, fusion: f, domain: d}, nil
}
