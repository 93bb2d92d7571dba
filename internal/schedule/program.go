package schedule

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/fuser/internal/ir"
	"github.com/born-ml/fuser/internal/replay"
)

// Program is a schedule instantiated in its own fusion.
type Program struct {
	Doc    *Document
	Fusion *ir.Fusion
	views  map[string]*ir.TensorView
}

// Report describes one executed compute-at entry.
type Report struct {
	Reference string
	Target    string
	Axis      int
	Before    string // target domain before replay
	After     string // target domain after replay
	Applied   []string
	AxisMap   []int
}

func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s -> %s @ %d\n", r.Reference, r.Target, r.Axis)
	fmt.Fprintf(&sb, "  before:  %s\n", r.Before)
	fmt.Fprintf(&sb, "  after:   %s\n", r.After)
	fmt.Fprintf(&sb, "  axisMap: %v\n", r.AxisMap)
	if len(r.Applied) == 0 {
		sb.WriteString("  applied: none\n")
	} else {
		fmt.Fprintf(&sb, "  applied: %s\n", strings.Join(r.Applied, " -> "))
	}
	return sb.String()
}

// Build creates the fusion, declares every tensor and applies every
// transform of doc in order.
func Build(doc *Document) (*Program, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	p := &Program{
		Doc:    doc,
		Fusion: ir.NewFusion(),
		views:  make(map[string]*ir.TensorView, len(doc.Tensors)),
	}
	for _, ts := range doc.Tensors {
		if err := p.declare(ts); err != nil {
			return nil, err
		}
	}
	for i, st := range doc.Transforms {
		if err := p.apply(st); err != nil {
			return nil, errors.Wrapf(err, "transform #%d", i)
		}
	}
	return p, nil
}

func (p *Program) declare(ts TensorSpec) error {
	var axes []*ir.Axis
	if ts.Like != "" {
		root, _, err := replay.Trace(p.Fusion, p.views[ts.Like].DomainID(), false)
		if err != nil {
			return errors.Wrapf(err, "tensor %q", ts.Name)
		}
		axes = p.Fusion.Domain(root).Axes()
	}
	for _, a := range ts.Axes {
		axes = append(axes, p.Fusion.NewAxis(a.Extent, a.Reduction))
	}
	for _, a := range ts.Append {
		axes = append(axes, p.Fusion.NewAxis(a.Extent, a.Reduction))
	}

	tv, err := p.Fusion.NewTensorView(ts.Name, p.Fusion.NewDomain(axes...))
	if err != nil {
		return err
	}
	p.views[ts.Name] = tv
	return nil
}

func (p *Program) apply(st StepSpec) error {
	tv := p.views[st.Tensor]
	var err error
	switch {
	case st.Split != nil:
		_, err = p.Fusion.Split(tv, st.Split.Axis, st.Split.Factor)
	case st.Merge != nil:
		_, err = p.Fusion.Merge(tv, st.Merge.Axis)
	default:
		_, err = p.Fusion.Reorder(tv, st.Reorder)
	}
	return err
}

// View returns the tensor view declared under name.
func (p *Program) View(name string) (*ir.TensorView, bool) {
	tv, ok := p.views[name]
	return tv, ok
}

// History returns the root domain and transform record of a tensor.
func (p *Program) History(name string) (*ir.Domain, replay.Record, error) {
	tv, ok := p.views[name]
	if !ok {
		return nil, nil, errors.Wrapf(ErrInvalidDocument, "unknown tensor %q", name)
	}
	root, rec, err := replay.Trace(p.Fusion, tv.DomainID(), true)
	if err != nil {
		return nil, nil, err
	}
	return p.Fusion.Domain(root), rec, nil
}

// Run executes every compute-at entry in order with r.
func (p *Program) Run(r *replay.Replayer) ([]Report, error) {
	reports := make([]Report, 0, len(p.Doc.ComputeAt))
	for i, ca := range p.Doc.ComputeAt {
		ref, target := p.views[ca.Reference], p.views[ca.Target]
		before := target.Domain().String()

		res, err := r.RunDetailed(ref, target, ca.Axis)
		if err != nil {
			return reports, errors.Wrapf(err, "computeAt #%d (%s -> %s)", i, ca.Reference, ca.Target)
		}

		applied := make([]string, len(res.Applied))
		for j, t := range res.Applied {
			applied[j] = t.String()
		}
		reports = append(reports, Report{
			Reference: ca.Reference,
			Target:    ca.Target,
			Axis:      ca.Axis,
			Before:    before,
			After:     target.Domain().String(),
			Applied:   applied,
			AxisMap:   res.AxisMap,
		})
	}
	return reports, nil
}
