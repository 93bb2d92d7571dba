// Package ir provides the iteration-domain IR used by the loop-fusion scheduler.
//
// A TensorView owns a Domain: an ordered list of Axis values describing the
// loop nest that computes the tensor. Domains are rewritten by three
// primitive transforms:
//   - Split: axis i of extent e becomes (i, i+1) with extents (ceil(e/f), f)
//   - Merge: axes (i, i+1) collapse into a single axis i
//   - Reorder: permutes axes, recorded as pos2axis[new] = old
//
// Every domain and transform lives in a Fusion arena and is addressed by an
// integer handle. The Fusion keeps a producer map from each domain to the
// transform that created it, so a domain's history can be walked backward to
// its root without back-pointers.
//
// Example:
//
//	f := ir.NewFusion()
//	tv, err := f.NewTensor("tv0", ir.Extents{8, 4, 3})
//	if err != nil {
//	    return err
//	}
//	if _, err := f.Split(tv, 0, 2); err != nil {
//	    return err
//	}
//	fmt.Println(tv.Domain()) // [i3{4}, i4{2}, i1{4}, i2{3}]
package ir
