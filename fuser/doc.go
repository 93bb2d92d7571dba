// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package fuser replays loop-nest transforms between tensors of a fusion.
//
// # Overview
//
// A Fusion owns iteration domains and the transforms (split, merge,
// reorder) that produced them. When one tensor must be computed inside the
// loop nest of another, the target's domain is rebuilt by replaying only
// the part of the reference history that the outer compute-at axes depend
// on.
//
// # Basic Usage
//
//	import (
//	    "fmt"
//
//	    "github.com/born-ml/fuser/fuser"
//	)
//
//	func main() {
//	    f := fuser.NewFusion()
//	    ref, _ := f.NewTensor("tv0", fuser.Extents{8, 4, 3})
//	    target, _ := f.NewTensorView("tv1", ref.DomainID())
//
//	    // Tile the outer loop of the reference.
//	    f.Split(ref, 0, 2)
//
//	    // Compute tv1 at tv0's first two loops.
//	    fuser.Replay(ref, target, 2)
//	    fmt.Println(target.Domain()) // [i5{4}, i6{2}, i1{4}, i2{3}]
//	}
//
// Transforms that only touch axes past the compute-at cutoff are not
// replayed, and a domain that would consume a reduction axis before the
// cutoff is rejected.
package fuser
