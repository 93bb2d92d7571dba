package schedule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fuser/internal/ir"
	"github.com/born-ml/fuser/internal/replay"
)

func TestLoadFile_SplitOuter(t *testing.T) {
	doc, err := LoadFile("testdata/split_outer.yaml")
	require.NoError(t, err)
	assert.Equal(t, "split-outer", doc.Name)
	require.Len(t, doc.Tensors, 2)
	assert.Equal(t, []AxisSpec{{Extent: 8}, {Extent: 4}, {Extent: 3}}, doc.Tensors[0].Axes)
	assert.Equal(t, "tv0", doc.Tensors[1].Like)

	p, err := Build(doc)
	require.NoError(t, err)

	reports, err := p.Run(replay.New())
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "[i0{8}, i1{4}, i2{3}]", r.Before)
	assert.Equal(t, "[i5{4}, i6{2}, i1{4}, i2{3}]", r.After)
	assert.Equal(t, []string{"split(axis=0, factor=2)"}, r.Applied)
	assert.Equal(t, []int{0, 1, 2, 3}, r.AxisMap)
}

func TestLoadFile_ReductionConsumer(t *testing.T) {
	doc, err := LoadFile("testdata/reduction.yaml")
	require.NoError(t, err)
	assert.Equal(t, []AxisSpec{{Extent: 5, Reduction: true}}, doc.Tensors[1].Append)

	p, err := Build(doc)
	require.NoError(t, err)

	reports, err := p.Run(replay.New())
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "[i5{96}, r2{5}]", r.Before, "target's own merge is discarded by the replay")
	assert.Equal(t, "[i7{3}, i6{2}, i0{16}, r2{5}]", r.After)
	assert.Equal(t, []string{"split(axis=1, factor=3)", "reorder(pos2axis=[2 1 0 3])"}, r.Applied)
	assert.Equal(t, []int{0, 1, 2}, r.AxisMap)
	assert.Contains(t, r.String(), "tv0 -> tv1 @ 1")
}

func TestLoad_NameIsOptional(t *testing.T) {
	doc, err := Load(strings.NewReader("tensors: [{name: a, axes: [2]}]"))
	require.NoError(t, err)
	assert.Empty(t, doc.Name)

	_, err = LoadFile("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad axis", "tensors: [{name: a, axes: [x]}]"},
		{"zero extent", "tensors: [{name: a, axes: [0]}]"},
		{"unnamed tensor", "tensors: [{axes: [2]}]"},
		{"duplicate tensor", "tensors: [{name: a, axes: [2]}, {name: a, axes: [2]}]"},
		{"like undeclared", "tensors: [{name: a, like: b}]"},
		{"like and axes", "tensors: [{name: a, axes: [2]}, {name: b, like: a, axes: [3]}]"},
		{"transform on undeclared", "tensors: [{name: a, axes: [2]}]\ntransforms: [{tensor: b, merge: {axis: 0}}]"},
		{"transform with two ops", "tensors: [{name: a, axes: [2, 2]}]\ntransforms: [{tensor: a, merge: {axis: 0}, split: {axis: 0, factor: 2}}]"},
		{"transform with no op", "tensors: [{name: a, axes: [2]}]\ntransforms: [{tensor: a}]"},
		{"computeAt undeclared", "tensors: [{name: a, axes: [2]}]\ncomputeAt: [{reference: a, target: b, axis: 0}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("tensors: [{name: a, axes: [2], shape: [3]}]"))
	assert.Error(t, err)
}

func TestBuild_TransformError(t *testing.T) {
	doc, err := Load(strings.NewReader("tensors: [{name: a, axes: [2]}]\ntransforms: [{tensor: a, merge: {axis: 0}}]"))
	require.NoError(t, err)

	_, err = Build(doc)
	assert.ErrorIs(t, err, ir.ErrAxisOutOfRange)
	assert.Contains(t, err.Error(), "transform #0")
}

func TestRun_ReplayError(t *testing.T) {
	doc, err := Load(strings.NewReader(`
tensors:
  - {name: a, axes: [4, 4]}
  - {name: b, axes: [4, 4]}
computeAt:
  - {reference: a, target: b, axis: 1}
`))
	require.NoError(t, err)
	p, err := Build(doc)
	require.NoError(t, err)

	reports, err := p.Run(replay.New())
	assert.ErrorIs(t, err, replay.ErrRootMismatch)
	assert.Empty(t, reports)
}

func TestProgram_History(t *testing.T) {
	doc, err := LoadFile("testdata/reduction.yaml")
	require.NoError(t, err)
	p, err := Build(doc)
	require.NoError(t, err)

	root, rec, err := p.History("tv0")
	require.NoError(t, err)
	assert.Equal(t, "[i0{16}, i1{6}]", root.String())
	assert.Equal(t, "split(axis=1, factor=3) -> reorder(pos2axis=[2 1 0])", rec.String())

	tv, ok := p.View("tv1")
	require.True(t, ok)
	assert.Equal(t, "tv1", tv.Name())

	_, _, err = p.History("nope")
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestAxisSpec_RoundTrip(t *testing.T) {
	a, err := ParseAxis(" r12 ")
	require.NoError(t, err)
	assert.Equal(t, AxisSpec{Extent: 12, Reduction: true}, a)
	assert.Equal(t, "r12", a.String())

	out, err := a.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "r12", out)
}
