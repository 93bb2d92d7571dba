package ir

import "github.com/pkg/errors"

// Errors returned by the mutator primitives and the arena.
var (
	ErrAxisOutOfRange     = errors.New("axis out of range")
	ErrInvalidFactor      = errors.New("invalid split factor")
	ErrInvalidPermutation = errors.New("invalid permutation")
	ErrMixedMerge         = errors.New("cannot merge a reduction axis with an iteration axis")
	ErrForeignView        = errors.New("tensor view belongs to another fusion")
	ErrUnknownDomain      = errors.New("unknown domain")
)
