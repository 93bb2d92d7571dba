package ir

import "github.com/pkg/errors"

// Extents lists the static trip counts of a domain's axes.
type Extents []int

// NumIterations returns the total number of points in the iteration space.
func (e Extents) NumIterations() int {
	if len(e) == 0 {
		return 1 // A zero-dimensional domain still runs once
	}
	n := 1
	for _, ext := range e {
		n *= ext
	}
	return n
}

// Validate checks that every extent is positive.
func (e Extents) Validate() error {
	for i, ext := range e {
		if ext <= 0 {
			return errors.Errorf("invalid extent at axis %d: %d (must be > 0)", i, ext)
		}
	}
	return nil
}

// ceilDiv returns ceil(a/b) for positive operands.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
