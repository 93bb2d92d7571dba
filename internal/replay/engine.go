package replay

import (
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/born-ml/fuser/internal/ir"
)

// NoAxis marks a virtual axis with no real counterpart in the target,
// because the transform that would have produced it was skipped.
const NoAxis = -1

// state is the per-call replay state. Virtual positions index influence and
// axisMap; real positions index the target's current domain.
type state struct {
	fusion    *ir.Fusion
	target    *ir.TensorView
	influence []bool
	axisMap   []int // virtual position -> real position or NoAxis
	applied   []ir.Transform
	log       *zap.Logger
}

// run replays every transform of rec onto the target in order.
func (s *state) run(rec Record) error {
	for _, t := range rec {
		if err := s.apply(t); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) apply(t ir.Transform) error {
	switch t := t.(type) {
	case *ir.Split:
		return s.split(t)
	case *ir.Merge:
		return s.merge(t)
	case *ir.Reorder:
		return s.reorder(t)
	default:
		return errors.Wrapf(ErrUnknownTransform, "%T in replay", t)
	}
}

func (s *state) split(t *ir.Split) error {
	axis := t.Axis
	if axis < 0 || axis >= len(s.axisMap) {
		return errors.Wrapf(ErrAxisOutOfRange, "%s over %d virtual axes", t, len(s.axisMap))
	}

	if s.influence[axis] {
		realAxis := s.axisMap[axis]
		if realAxis == NoAxis {
			return errors.Wrapf(ErrMissingRealAxis, "%s: virtual axis %d", t, axis)
		}
		if err := s.mutate(func() (*ir.TensorView, error) {
			return s.fusion.Split(s.target, realAxis, t.Factor)
		}); err != nil {
			return err
		}
		// A real axis was inserted after realAxis; shift everything past it.
		for i, r := range s.axisMap {
			if r > realAxis {
				s.axisMap[i] = r + 1
			}
		}
		s.axisMap = slices.Insert(s.axisMap, axis+1, realAxis+1)
		s.log.Debug("replayed split",
			zap.Int("virtual", axis), zap.Int("real", realAxis), zap.Int("factor", t.Factor))
	} else {
		s.axisMap = slices.Insert(s.axisMap, axis+1, NoAxis)
		s.log.Debug("skipped split", zap.Int("virtual", axis))
	}

	s.influence = slices.Insert(s.influence, axis+1, s.influence[axis])
	return nil
}

func (s *state) merge(t *ir.Merge) error {
	axis := t.Axis
	if axis < 0 || axis+1 >= len(s.axisMap) {
		return errors.Wrapf(ErrAxisOutOfRange, "%s over %d virtual axes", t, len(s.axisMap))
	}

	removed := NoAxis
	if s.influence[axis] || s.influence[axis+1] {
		first, second := s.axisMap[axis], s.axisMap[axis+1]
		if first == NoAxis || second == NoAxis {
			return errors.Wrapf(ErrMissingRealAxis, "%s: virtual axes %d,%d map to %d,%d",
				t, axis, axis+1, first, second)
		}
		if err := s.mutate(func() (*ir.TensorView, error) {
			return s.fusion.Merge(s.target, first)
		}); err != nil {
			return err
		}
		removed = first + 1
		s.log.Debug("replayed merge", zap.Int("virtual", axis), zap.Int("real", first))
	} else {
		// The second input normally comes from a skipped split. When it is
		// real it simply stays where it is in the target.
		if s.axisMap[axis+1] != NoAxis {
			s.log.Debug("skipped merge over a real axis",
				zap.Int("virtual", axis+1), zap.Int("real", s.axisMap[axis+1]))
		} else {
			s.log.Debug("skipped merge", zap.Int("virtual", axis))
		}
	}

	s.axisMap = slices.Delete(s.axisMap, axis+1, axis+2)
	if removed != NoAxis {
		// Shift by real position: an earlier reorder may have left real axes
		// past the merged pair at any virtual position.
		for i, r := range s.axisMap {
			if r > removed {
				s.axisMap[i] = r - 1
			}
		}
	}

	s.influence[axis] = s.influence[axis] || s.influence[axis+1]
	s.influence = slices.Delete(s.influence, axis+1, axis+2)
	return nil
}

// realMove pairs a real axis with the virtual position it must move to.
type realMove struct {
	realAxis int
	virtual  int
}

// reorder only moves axes that are both real and influenced; every other
// real axis follows in its current order. The permutation applied to the
// target is total over its real axes, so uninfluenced axes may move too.
func (s *state) reorder(t *ir.Reorder) error {
	pos2axis := t.Pos2Axis
	if len(pos2axis) != len(s.axisMap) || !ir.IsPermutation(pos2axis) {
		return errors.Wrapf(ir.ErrInvalidPermutation, "%s over %d virtual axes", t, len(s.axisMap))
	}
	size := s.target.Domain().Size()
	for v, realAxis := range s.axisMap {
		if realAxis != NoAxis && (realAxis < 0 || realAxis >= size) {
			return errors.Wrapf(ErrMissingRealAxis, "%s: virtual axis %d maps to real %d of %d",
				t, v, realAxis, size)
		}
	}

	var moves []realMove
	for newPos, oldPos := range pos2axis {
		if realAxis := s.axisMap[oldPos]; realAxis != NoAxis && s.influence[oldPos] {
			moves = append(moves, realMove{realAxis: realAxis, virtual: newPos})
		}
	}
	slices.SortStableFunc(moves, func(a, b realMove) int {
		return a.virtual - b.virtual
	})

	axis2pos := make(map[int]int, size)
	next := 0
	for _, m := range moves {
		if _, taken := axis2pos[m.realAxis]; taken {
			continue
		}
		axis2pos[m.realAxis] = next
		next++
	}
	for realAxis := 0; realAxis < size; realAxis++ {
		if _, taken := axis2pos[realAxis]; !taken {
			axis2pos[realAxis] = next
			next++
		}
	}

	if err := s.mutate(func() (*ir.TensorView, error) {
		return s.fusion.Reorder(s.target, axis2pos)
	}); err != nil {
		return err
	}
	s.log.Debug("replayed reorder", zap.Int("moved", len(moves)), zap.Ints("pos2axis", pos2axis))

	axisMap := make([]int, len(pos2axis))
	influence := make([]bool, len(pos2axis))
	for newPos, oldPos := range pos2axis {
		influence[newPos] = s.influence[oldPos]
		axisMap[newPos] = NoAxis
		if realAxis := s.axisMap[oldPos]; realAxis != NoAxis {
			pos, ok := axis2pos[realAxis]
			if !ok {
				return errors.Wrapf(ErrMissingRealAxis, "%s: real axis %d not in permutation", t, realAxis)
			}
			axisMap[newPos] = pos
		}
	}
	s.axisMap = axisMap
	s.influence = influence
	return nil
}

// mutate runs one mutator primitive on the target and remembers the
// transform it recorded.
func (s *state) mutate(fn func() (*ir.TensorView, error)) error {
	if _, err := fn(); err != nil {
		return errors.Wrapf(err, "replaying onto %s", s.target.Name())
	}
	if t, ok := s.fusion.Origin(s.target.DomainID()); ok {
		s.applied = append(s.applied, t)
	}
	return nil
}
