package replay

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fuser/internal/ir"
)

func TestComputeInfluence(t *testing.T) {
	tests := []struct {
		name      string
		rec       Record
		size      int
		computeAt int
		want      []bool
	}{
		{
			name:      "empty record",
			size:      3,
			computeAt: 2,
			want:      []bool{true, true, false},
		},
		{
			name:      "split folds both halves",
			rec:       Record{&ir.Split{Axis: 0, Factor: 2}},
			size:      4,
			computeAt: 2,
			want:      []bool{true, false, false},
		},
		{
			name:      "split of an uninfluenced axis",
			rec:       Record{&ir.Split{Axis: 1, Factor: 2}},
			size:      4,
			computeAt: 1,
			want:      []bool{true, false, false},
		},
		{
			name:      "merge copies to both inputs",
			rec:       Record{&ir.Merge{Axis: 0}},
			size:      2,
			computeAt: 1,
			want:      []bool{true, true, false},
		},
		{
			name:      "merge with zero cutoff",
			rec:       Record{&ir.Merge{Axis: 0}},
			size:      2,
			computeAt: 0,
			want:      []bool{false, false, false},
		},
		{
			name:      "reorder maps back to old positions",
			rec:       Record{&ir.Reorder{Pos2Axis: []int{2, 0, 1}}},
			size:      3,
			computeAt: 1,
			want:      []bool{false, false, true},
		},
		{
			name: "split then reorder",
			rec: Record{
				&ir.Split{Axis: 0, Factor: 2},
				&ir.Reorder{Pos2Axis: []int{3, 1, 0, 2}},
			},
			size:      4,
			computeAt: 1,
			want:      []bool{false, false, true},
		},
		{
			name:      "full cutoff",
			rec:       Record{&ir.Split{Axis: 2, Factor: 3}, &ir.Merge{Axis: 0}},
			size:      3,
			computeAt: 3,
			want:      []bool{true, true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeInfluence(tt.rec, tt.size, tt.computeAt)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("influence mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeInfluence_Errors(t *testing.T) {
	_, err := ComputeInfluence(Record{nil}, 2, 1)
	assert.ErrorIs(t, err, ErrUnknownTransform)

	_, err = ComputeInfluence(Record{&ir.Split{Axis: 3, Factor: 2}}, 4, 1)
	assert.ErrorIs(t, err, ErrAxisOutOfRange)

	_, err = ComputeInfluence(Record{&ir.Merge{Axis: 2}}, 2, 1)
	assert.ErrorIs(t, err, ErrAxisOutOfRange)

	_, err = ComputeInfluence(Record{&ir.Reorder{Pos2Axis: []int{0, 0}}}, 2, 1)
	assert.ErrorIs(t, err, ir.ErrInvalidPermutation)
	assert.NotErrorIs(t, err, ErrAxisOutOfRange)

	_, err = ComputeInfluence(Record{&ir.Reorder{Pos2Axis: []int{1, 0}}}, 3, 1)
	assert.ErrorIs(t, err, ir.ErrInvalidPermutation)
}
