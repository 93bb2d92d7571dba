package ir

import "github.com/pkg/errors"

// Split divides axis of tv's domain by factor. The outer axis has extent
// ceil(extent/factor) and the inner axis has extent factor; both inherit the
// reduction flag. tv is rebound to the new domain and returned.
func (f *Fusion) Split(tv *TensorView, axis, factor int) (*TensorView, error) {
	in, err := f.viewDomain(tv)
	if err != nil {
		return nil, err
	}
	if axis < 0 || axis >= in.Size() {
		return nil, errors.Wrapf(ErrAxisOutOfRange, "split axis %d of %s", axis, tv)
	}
	if factor <= 0 {
		return nil, errors.Wrapf(ErrInvalidFactor, "split %s by %d", tv, factor)
	}

	src := in.axes[axis]
	outer := f.NewAxis(ceilDiv(src.extent, factor), src.reduction)
	inner := f.NewAxis(factor, src.reduction)

	axes := make([]*Axis, 0, in.Size()+1)
	axes = append(axes, in.axes[:axis]...)
	axes = append(axes, outer, inner)
	axes = append(axes, in.axes[axis+1:]...)

	return f.rebind(tv, &Split{In: []DomainID{in.id}, Out: f.NewDomain(axes...), Axis: axis, Factor: factor})
}

// Merge fuses axes axis and axis+1 of tv's domain into one axis whose extent
// is their product. tv is rebound to the new domain and returned.
func (f *Fusion) Merge(tv *TensorView, axis int) (*TensorView, error) {
	in, err := f.viewDomain(tv)
	if err != nil {
		return nil, err
	}
	if axis < 0 || axis+1 >= in.Size() {
		return nil, errors.Wrapf(ErrAxisOutOfRange, "merge axis %d of %s", axis, tv)
	}

	first, second := in.axes[axis], in.axes[axis+1]
	if first.reduction != second.reduction {
		return nil, errors.Wrapf(ErrMixedMerge, "merge %s with %s in %s", first, second, tv)
	}
	merged := f.NewAxis(first.extent*second.extent, first.reduction)

	axes := make([]*Axis, 0, in.Size()-1)
	axes = append(axes, in.axes[:axis]...)
	axes = append(axes, merged)
	axes = append(axes, in.axes[axis+2:]...)

	return f.rebind(tv, &Merge{In: []DomainID{in.id}, Out: f.NewDomain(axes...), Axis: axis})
}

// Reorder permutes the axes of tv's domain. axis2pos maps an old position to
// its new position; axes missing from the map fill the remaining positions in
// their original order. tv is rebound to the new domain and returned.
func (f *Fusion) Reorder(tv *TensorView, axis2pos map[int]int) (*TensorView, error) {
	in, err := f.viewDomain(tv)
	if err != nil {
		return nil, err
	}
	pos2axis, err := completePermutation(in.Size(), axis2pos)
	if err != nil {
		return nil, errors.Wrapf(err, "reorder %s", tv)
	}

	axes := make([]*Axis, in.Size())
	for newPos, oldPos := range pos2axis {
		axes[newPos] = in.axes[oldPos]
	}

	return f.rebind(tv, &Reorder{In: []DomainID{in.id}, Out: f.NewDomain(axes...), Pos2Axis: pos2axis})
}

// completePermutation turns a partial old->new map into a full pos2axis
// permutation over n axes.
func completePermutation(n int, axis2pos map[int]int) ([]int, error) {
	pos2axis := make([]int, n)
	for i := range pos2axis {
		pos2axis[i] = -1
	}
	placed := make([]bool, n)
	for oldPos, newPos := range axis2pos {
		if oldPos < 0 || oldPos >= n || newPos < 0 || newPos >= n {
			return nil, errors.Wrapf(ErrInvalidPermutation, "entry %d->%d outside %d axes", oldPos, newPos, n)
		}
		if pos2axis[newPos] != -1 {
			return nil, errors.Wrapf(ErrInvalidPermutation, "position %d assigned twice", newPos)
		}
		pos2axis[newPos] = oldPos
		placed[oldPos] = true
	}

	// Unlisted axes keep their relative order in the free slots.
	next := 0
	for oldPos := 0; oldPos < n; oldPos++ {
		if placed[oldPos] {
			continue
		}
		for pos2axis[next] != -1 {
			next++
		}
		pos2axis[next] = oldPos
	}
	return pos2axis, nil
}

// IsPermutation reports whether p is a permutation of 0..len(p)-1.
func IsPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func (f *Fusion) viewDomain(tv *TensorView) (*Domain, error) {
	if tv.fusion != f {
		return nil, errors.Wrapf(ErrForeignView, "tensor %q", tv.name)
	}
	d := f.Domain(tv.domain)
	if d == nil {
		return nil, errors.Wrapf(ErrUnknownDomain, "tensor %q domain %d", tv.name, tv.domain)
	}
	return d, nil
}

func (f *Fusion) rebind(tv *TensorView, t Transform) (*TensorView, error) {
	if err := f.Link(t); err != nil {
		return nil, err
	}
	tv.domain = t.Output()
	return tv, nil
}
