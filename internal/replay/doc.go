// Package replay makes one tensor view's loop nest consistent with another's
// up to a compute-at axis.
//
// The reference view's domain history (a Record of split, merge and reorder
// transforms) is traced back to its root. Influence marks which root axes
// feed the first computeAt axes of the reference. The record is then replayed
// onto the target view, starting from the target's root, applying only the
// transforms influence requires.
//
// Two numberings are tracked during replay:
//   - virtual axes: positions the reference would have after every transform
//   - real axes: positions in the target domain actually being built
//
// The axis map links them; NoAxis marks a virtual axis whose producing
// transform was skipped.
//
// Example:
//
//	f := ir.NewFusion()
//	ref, _ := f.NewTensor("tv0", ir.Extents{8, 4, 3})
//	target, _ := f.NewTensorView("tv1", ref.DomainID())
//	f.Split(ref, 0, 2)
//
//	if _, err := replay.Replay(ref, target, 2); err != nil {
//	    return err
//	}
//	// target now has 4 axes, the first two split like ref.
package replay
