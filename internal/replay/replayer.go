package replay

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/born-ml/fuser/internal/ir"
)

// Replayer replays the transform history of a reference tensor view onto a
// target view so both can be computed at the same loop nest.
//
// A Replayer holds no state between calls; every Run starts from scratch.
type Replayer struct {
	logger *zap.Logger
}

// Option configures a Replayer.
type Option func(*Replayer)

// WithLogger sets the logger used for per-transform debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Replayer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Replayer.
func New(opts ...Option) *Replayer {
	r := &Replayer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result describes one replay run.
type Result struct {
	// View is the target view, now bound to the replayed domain.
	View *ir.TensorView

	// Record is the reference history that was replayed.
	Record Record

	// RootInfluence marks the reference root axes needed below the cutoff.
	RootInfluence []bool

	// AxisMap maps each virtual axis of the reference leaf domain to a real
	// axis of the replayed target domain, or NoAxis.
	AxisMap []int

	// Influence is the forward-propagated influence over virtual axes.
	Influence []bool

	// Applied lists the transforms actually recorded on the target.
	Applied []ir.Transform
}

// Run replays ref's history onto target for the given compute-at cutoff and
// returns target.
func (r *Replayer) Run(ref, target *ir.TensorView, computeAt int) (*ir.TensorView, error) {
	res, err := r.RunDetailed(ref, target, computeAt)
	if err != nil {
		return nil, err
	}
	return res.View, nil
}

// RunDetailed is Run that also reports the influence and axis-map state.
//
// Algorithm:
//  1. Trace target back to its root and rebind target to that root.
//  2. Trace ref back to its root, recording the transforms on the way.
//  3. Propagate influence of the first computeAt axes back to ref's root.
//  4. Map every non-reduction target root axis to a virtual root position
//     and check it is the same axis as ref's root at that position.
//  5. Replay the record onto target, skipping what influence does not need.
//  6. Reject results that place a reduction axis below the cutoff.
//
// On failure target may be left partially replayed.
func (r *Replayer) RunDetailed(ref, target *ir.TensorView, computeAt int) (*Result, error) {
	if ref == target {
		return nil, errors.Wrapf(ErrSelfReplay, "tensor %q", ref.Name())
	}
	f := ref.Fusion()
	if target.Fusion() != f {
		return nil, errors.Wrapf(ErrFusionMismatch, "reference %q, target %q", ref.Name(), target.Name())
	}
	refSize := ref.Domain().Size()
	if computeAt < 0 || computeAt > refSize {
		return nil, errors.Wrapf(ErrInvalidComputeAt, "%d not in [0, %d] for %s", computeAt, refSize, ref)
	}

	logger := r.logger.With(
		zap.Stringer("fusion", f.ID()),
		zap.String("reference", ref.Name()),
		zap.String("target", target.Name()),
		zap.Int("compute_at", computeAt),
	)

	targetRoot, _, err := Trace(f, target.DomainID(), false)
	if err != nil {
		return nil, errors.Wrapf(err, "tracing target %q", target.Name())
	}
	if err := target.SetDomain(targetRoot); err != nil {
		return nil, err
	}

	refRoot, rec, err := Trace(f, ref.DomainID(), true)
	if err != nil {
		return nil, errors.Wrapf(err, "tracing reference %q", ref.Name())
	}

	rootInfluence, err := ComputeInfluence(rec, refSize, computeAt)
	if err != nil {
		return nil, errors.Wrapf(err, "influence of %q", ref.Name())
	}

	axisMap, err := rootAxisMap(f.Domain(refRoot), f.Domain(targetRoot))
	if err != nil {
		return nil, err
	}

	s := &state{
		fusion:    f,
		target:    target,
		influence: append([]bool(nil), rootInfluence...),
		axisMap:   axisMap,
		log:       logger,
	}
	logger.Debug("replaying", zap.Stringer("record", rec), zap.Bools("root_influence", rootInfluence))
	if err := s.run(rec); err != nil {
		return nil, err
	}

	replayed := target.Domain()
	if replayed.HasReduction() {
		for i := 0; i < min(computeAt, replayed.Size()); i++ {
			if replayed.Axis(i).IsReduction() {
				return nil, errors.Wrapf(ErrReductionBeforeComputeAt, "axis %d of %s", i, target)
			}
		}
	}

	logger.Debug("replayed", zap.Stringer("domain", replayed), zap.Int("applied", len(s.applied)))
	return &Result{
		View:          target,
		Record:        rec,
		RootInfluence: rootInfluence,
		AxisMap:       s.axisMap,
		Influence:     s.influence,
		Applied:       s.applied,
	}, nil
}

// rootAxisMap maps each virtual root position to the target root position
// holding the same axis. Reduction axes of the target are owned by the
// consumer side and never take part in the match.
func rootAxisMap(refRoot, targetRoot *ir.Domain) ([]int, error) {
	axisMap := make([]int, 0, targetRoot.Size())
	for i := 0; i < targetRoot.Size(); i++ {
		if !targetRoot.Axis(i).IsReduction() {
			axisMap = append(axisMap, i)
		}
	}

	if len(axisMap) != refRoot.Size() {
		return nil, errors.Wrapf(ErrRootMismatch, "target root %s has %d iteration axes, reference root %s has %d",
			targetRoot, len(axisMap), refRoot, refRoot.Size())
	}
	for i, realAxis := range axisMap {
		if !refRoot.Axis(i).SameAs(targetRoot.Axis(realAxis)) {
			return nil, errors.Wrapf(ErrRootMismatch, "reference root axis %s is not target root axis %s",
				refRoot.Axis(i), targetRoot.Axis(realAxis))
		}
	}
	return axisMap, nil
}

// Replay runs a fresh Replayer and returns target, now carrying the
// replayed domain.
func Replay(ref, target *ir.TensorView, computeAt int, opts ...Option) (*ir.TensorView, error) {
	if _, err := New(opts...).Run(ref, target, computeAt); err != nil {
		return nil, err
	}
	return target, nil
}
