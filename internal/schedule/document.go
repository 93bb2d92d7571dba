// Package schedule loads fusion schedules from YAML and runs their
// compute-at requests through the replay engine.
//
// A schedule declares tensors, the transforms applied to them, and the
// compute-at pairs to replay:
//
//	name: split-outer
//	tensors:
//	  - name: tv0
//	    axes: [8, 4, 3]
//	  - name: tv1
//	    like: tv0
//	    append: [r5]
//	transforms:
//	  - tensor: tv0
//	    split: {axis: 0, factor: 2}
//	computeAt:
//	  - reference: tv0
//	    target: tv1
//	    axis: 2
//
// An axis entry is an extent; an "r" prefix marks a reduction axis.
package schedule

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned for schedules that fail validation.
var ErrInvalidDocument = errors.New("invalid schedule")

// Document is a parsed schedule file.
type Document struct {
	Name       string          `yaml:"name"`
	Tensors    []TensorSpec    `yaml:"tensors"`
	Transforms []StepSpec      `yaml:"transforms"`
	ComputeAt  []ComputeAtSpec `yaml:"computeAt"`
}

// TensorSpec declares a tensor view.
//
// A tensor either lists its own root axes, or is declared Like another
// tensor and shares that tensor's root axes. Append adds fresh axes after
// the shared ones.
type TensorSpec struct {
	Name   string     `yaml:"name"`
	Axes   []AxisSpec `yaml:"axes,omitempty"`
	Like   string     `yaml:"like,omitempty"`
	Append []AxisSpec `yaml:"append,omitempty"`
}

// AxisSpec is one axis literal such as 8 or r3.
type AxisSpec struct {
	Extent    int
	Reduction bool
}

// UnmarshalYAML parses "8" or "r8".
func (a *AxisSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: axis must be a scalar", node.Line)
	}
	parsed, err := ParseAxis(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*a = parsed
	return nil
}

// MarshalYAML renders the axis back to its literal form.
func (a AxisSpec) MarshalYAML() (any, error) {
	return a.String(), nil
}

func (a AxisSpec) String() string {
	if a.Reduction {
		return "r" + strconv.Itoa(a.Extent)
	}
	return strconv.Itoa(a.Extent)
}

// ParseAxis parses an axis literal.
func ParseAxis(s string) (AxisSpec, error) {
	s = strings.TrimSpace(s)
	var a AxisSpec
	if rest, ok := strings.CutPrefix(s, "r"); ok {
		a.Reduction = true
		s = rest
	}
	extent, err := strconv.Atoi(s)
	if err != nil || extent <= 0 {
		return AxisSpec{}, errors.Wrapf(ErrInvalidDocument, "axis %q: extent must be a positive integer", s)
	}
	a.Extent = extent
	return a, nil
}

// StepSpec applies exactly one transform to a tensor.
type StepSpec struct {
	Tensor  string      `yaml:"tensor"`
	Split   *SplitSpec  `yaml:"split,omitempty"`
	Merge   *MergeSpec  `yaml:"merge,omitempty"`
	Reorder map[int]int `yaml:"reorder,omitempty"`
}

// SplitSpec holds split parameters.
type SplitSpec struct {
	Axis   int `yaml:"axis"`
	Factor int `yaml:"factor"`
}

// MergeSpec holds merge parameters.
type MergeSpec struct {
	Axis int `yaml:"axis"`
}

// ComputeAtSpec asks for target to be replayed after reference up to Axis.
type ComputeAtSpec struct {
	Reference string `yaml:"reference"`
	Target    string `yaml:"target"`
	Axis      int    `yaml:"axis"`
}

// Load decodes and validates a schedule.
func Load(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding schedule")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads a schedule from path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	if doc.Name == "" {
		doc.Name = path
	}
	return doc, nil
}

// Validate checks references between tensors, steps and compute-at entries.
// Axis indices are checked later, when the transforms are applied.
func (d *Document) Validate() error {
	declared := make(map[string]bool, len(d.Tensors))
	for i, ts := range d.Tensors {
		switch {
		case ts.Name == "":
			return errors.Wrapf(ErrInvalidDocument, "tensor #%d has no name", i)
		case declared[ts.Name]:
			return errors.Wrapf(ErrInvalidDocument, "tensor %q declared twice", ts.Name)
		case ts.Like != "" && len(ts.Axes) > 0:
			return errors.Wrapf(ErrInvalidDocument, "tensor %q sets both axes and like", ts.Name)
		case ts.Like != "" && !declared[ts.Like]:
			return errors.Wrapf(ErrInvalidDocument, "tensor %q is like undeclared tensor %q", ts.Name, ts.Like)
		}
		for _, a := range append(append([]AxisSpec(nil), ts.Axes...), ts.Append...) {
			if a.Extent <= 0 {
				return errors.Wrapf(ErrInvalidDocument, "tensor %q has axis extent %d", ts.Name, a.Extent)
			}
		}
		declared[ts.Name] = true
	}

	for i, st := range d.Transforms {
		if !declared[st.Tensor] {
			return errors.Wrapf(ErrInvalidDocument, "transform #%d targets undeclared tensor %q", i, st.Tensor)
		}
		n := 0
		if st.Split != nil {
			n++
		}
		if st.Merge != nil {
			n++
		}
		if st.Reorder != nil {
			n++
		}
		if n != 1 {
			return errors.Wrapf(ErrInvalidDocument, "transform #%d must set exactly one of split, merge, reorder", i)
		}
	}

	for i, ca := range d.ComputeAt {
		if !declared[ca.Reference] || !declared[ca.Target] {
			return errors.Wrapf(ErrInvalidDocument, "computeAt #%d references undeclared tensors %q, %q",
				i, ca.Reference, ca.Target)
		}
	}
	return nil
}
