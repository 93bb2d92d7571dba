package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTensor(t *testing.T) {
	f := NewFusion()
	tv, err := f.NewTensor("tv0", Extents{8, 4})
	require.NoError(t, err)

	assert.Equal(t, "tv0", tv.Name())
	assert.Same(t, f, tv.Fusion())
	assert.Equal(t, "tv0[i0{8}, i1{4}]", tv.String())
	assert.False(t, tv.Domain().HasReduction())
	assert.Equal(t, 1, f.NumDomains())
}

func TestNewTensor_InvalidExtents(t *testing.T) {
	f := NewFusion()
	_, err := f.NewTensor("tv0", Extents{8, 0})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tv0")
}

func TestNewAxis_PanicsOnNonPositiveExtent(t *testing.T) {
	f := NewFusion()
	assert.Panics(t, func() { f.NewAxis(0, false) })
}

func TestFusion_IDsAreUnique(t *testing.T) {
	assert.NotEqual(t, NewFusion().ID(), NewFusion().ID())
}

func TestLink_UnknownDomain(t *testing.T) {
	f := NewFusion()
	d := f.NewDomain(f.NewAxis(4, false))

	err := f.Link(&Merge{In: []DomainID{d}, Out: 7, Axis: 0})
	assert.ErrorIs(t, err, ErrUnknownDomain)

	err = f.Link(&Merge{In: []DomainID{9}, Out: d, Axis: 0})
	assert.ErrorIs(t, err, ErrUnknownDomain)
	assert.Equal(t, 0, f.NumTransforms())
}

func TestSetDomain(t *testing.T) {
	f, tv := newTestTensor(t, Extents{8, 4})
	root := tv.DomainID()

	_, err := f.Split(tv, 0, 4)
	require.NoError(t, err)
	require.NotEqual(t, root, tv.DomainID())

	require.NoError(t, tv.SetDomain(root))
	assert.Equal(t, root, tv.DomainID())

	assert.ErrorIs(t, tv.SetDomain(42), ErrUnknownDomain)
}

func TestDomain_SameAs(t *testing.T) {
	f := NewFusion()
	a, b := f.NewAxis(2, false), f.NewAxis(3, false)
	c := f.NewAxis(2, false)

	d1 := f.Domain(f.NewDomain(a, b))
	d2 := f.Domain(f.NewDomain(a, b))
	d3 := f.Domain(f.NewDomain(c, b))

	assert.True(t, d1.SameAs(d2), "same axes in same order")
	assert.False(t, d1.SameAs(d3), "equal extents are not the same axis")
	assert.False(t, d1.SameAs(f.Domain(f.NewDomain(b, a))))
	assert.False(t, d1.SameAs(nil))
}

func TestDomain_AxesIsCopy(t *testing.T) {
	_, tv := newTestTensor(t, Extents{2, 3})
	axes := tv.Domain().Axes()
	axes[0] = nil
	assert.NotNil(t, tv.Domain().Axis(0))
}

func TestAxis_String(t *testing.T) {
	f := NewFusion()
	assert.Equal(t, "i0{4}", f.NewAxis(4, false).String())
	assert.Equal(t, "r1{3}", f.NewAxis(3, true).String())
}

func TestExtents(t *testing.T) {
	assert.Equal(t, 1, Extents{}.NumIterations())
	assert.Equal(t, 24, Extents{2, 3, 4}.NumIterations())
	assert.NoError(t, Extents{1, 2}.Validate())
	assert.Error(t, Extents{1, -2}.Validate())
}
