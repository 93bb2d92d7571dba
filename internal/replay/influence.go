package replay

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/born-ml/fuser/internal/ir"
)

// ComputeInfluence marks which axes of the record's root domain are needed
// to produce the first computeAt axes of its leaf domain.
//
// size is the number of axes of the leaf domain. The vector starts with
// positions < computeAt set and is propagated backward through rec:
//   - split: the two outputs fold into their input (OR)
//   - merge: the output is copied to both inputs
//   - reorder: each new position is mapped back to its old position
//
// The result has one entry per axis of the root domain.
func ComputeInfluence(rec Record, size, computeAt int) ([]bool, error) {
	influence := make([]bool, size)
	for i := 0; i < computeAt && i < size; i++ {
		influence[i] = true
	}

	for i := len(rec) - 1; i >= 0; i-- {
		var err error
		influence, err = backward(rec[i], influence)
		if err != nil {
			return nil, err
		}
	}
	return influence, nil
}

// backward propagates influence from the output of t to its input.
func backward(t ir.Transform, influence []bool) ([]bool, error) {
	switch t := t.(type) {
	case *ir.Split:
		if t.Axis < 0 || t.Axis+1 >= len(influence) {
			return nil, errors.Wrapf(ErrAxisOutOfRange, "%s over %d axes", t, len(influence))
		}
		influence[t.Axis] = influence[t.Axis] || influence[t.Axis+1]
		return slices.Delete(influence, t.Axis+1, t.Axis+2), nil

	case *ir.Merge:
		if t.Axis < 0 || t.Axis >= len(influence) {
			return nil, errors.Wrapf(ErrAxisOutOfRange, "%s over %d axes", t, len(influence))
		}
		return slices.Insert(influence, t.Axis+1, influence[t.Axis]), nil

	case *ir.Reorder:
		if len(t.Pos2Axis) != len(influence) || !ir.IsPermutation(t.Pos2Axis) {
			return nil, errors.Wrapf(ir.ErrInvalidPermutation, "%s over %d axes", t, len(influence))
		}
		reordered := make([]bool, len(influence))
		for newPos, oldPos := range t.Pos2Axis {
			reordered[oldPos] = influence[newPos]
		}
		return reordered, nil

	default:
		return nil, errors.Wrapf(ErrUnknownTransform, "%T in influence propagation", t)
	}
}
