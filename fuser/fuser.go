// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package fuser

import (
	"github.com/born-ml/fuser/internal/ir"
	"github.com/born-ml/fuser/internal/replay"
)

// Version is the fuser release.
const Version = "v0.1.0-dev"

// NoAxis marks a virtual axis the target never materialized.
const NoAxis = replay.NoAxis

// Fusion is the arena owning domains, axes and transforms.
type Fusion = ir.Fusion

// NewFusion creates an empty fusion.
func NewFusion() *Fusion {
	return ir.NewFusion()
}

// TensorView binds a name to the current domain of a tensor.
type TensorView = ir.TensorView

// Domain is an ordered list of axes.
type Domain = ir.Domain

// DomainID is the handle of a domain inside its fusion.
type DomainID = ir.DomainID

// Axis is one loop of an iteration domain.
type Axis = ir.Axis

// Extents lists root axis extents.
type Extents = ir.Extents

// Transform is a recorded split, merge or reorder.
type Transform = ir.Transform

// Split, Merge and Reorder are the transform variants.
type (
	Split   = ir.Split
	Merge   = ir.Merge
	Reorder = ir.Reorder
)

// Record is an ordered transform history, root to leaf.
type Record = replay.Record

// Replayer replays reference histories onto target views.
type Replayer = replay.Replayer

// Option configures a Replayer.
type Option = replay.Option

// Result describes one replay run.
type Result = replay.Result

// NewReplayer creates a Replayer.
//
// Example:
//
//	r := fuser.NewReplayer(fuser.WithLogger(logger))
//	res, err := r.RunDetailed(ref, target, 1)
func NewReplayer(opts ...Option) *Replayer {
	return replay.New(opts...)
}

// WithLogger is the logging option for NewReplayer and Replay.
var WithLogger = replay.WithLogger

// Replay replays ref's history onto target up to computeAt and returns target.
func Replay(ref, target *TensorView, computeAt int, opts ...Option) (*TensorView, error) {
	return replay.Replay(ref, target, computeAt, opts...)
}

// Trace walks d back to its root domain, optionally recording the
// transforms on the way.
func Trace(f *Fusion, d DomainID, record bool) (DomainID, Record, error) {
	return replay.Trace(f, d, record)
}

// ComputeInfluence marks which root axes the first computeAt leaf axes of
// a history depend on.
func ComputeInfluence(rec Record, size, computeAt int) ([]bool, error) {
	return replay.ComputeInfluence(rec, size, computeAt)
}

// Errors, comparable with errors.Is.
var (
	ErrAmbiguousHistory         = replay.ErrAmbiguousHistory
	ErrCyclicHistory            = replay.ErrCyclicHistory
	ErrUnknownTransform         = replay.ErrUnknownTransform
	ErrRootMismatch             = replay.ErrRootMismatch
	ErrMissingRealAxis          = replay.ErrMissingRealAxis
	ErrReductionBeforeComputeAt = replay.ErrReductionBeforeComputeAt
	ErrInvalidComputeAt         = replay.ErrInvalidComputeAt
	ErrFusionMismatch           = replay.ErrFusionMismatch
	ErrSelfReplay               = replay.ErrSelfReplay

	ErrAxisOutOfRange     = ir.ErrAxisOutOfRange
	ErrInvalidFactor      = ir.ErrInvalidFactor
	ErrInvalidPermutation = ir.ErrInvalidPermutation
	ErrMixedMerge         = ir.ErrMixedMerge
)
