package memory

import (
	"math"

	"github.com/holiman/uint256"
)

// GEP implements spec §4.3: given a base type t, a starting address, and an
// ordered list of index dvalues, compute the new (block, offset) pointer.
//
// The first index strides over "arrays of t" reachable through the base
// pointer (off + sizeof(t)*i0); every subsequent index recurses into the
// popped element/field type. All indices are interpreted as unsigned, and
// the index*stride multiplication is carried out in 256-bit space (the same
// idiom the teacher uses for EVM word arithmetic): unlike plain uint64
// arithmetic, this lets an implausibly large index be caught as a genuine
// overflow and rejected rather than silently wrapping mod 2^64.
func GEP(base Address, t DType, indices []DValue) (Address, error) {
	if len(indices) == 0 {
		return base, nil
	}

	i0, err := topLevelIndex(indices[0])
	if err != nil {
		return Address{}, err
	}
	stride, err := mulStride(i0, Sizeof(t))
	if err != nil {
		return Address{}, err
	}
	off, err := addOffset(base.Offset, stride)
	if err != nil {
		return Address{}, err
	}
	cur := t

	for _, idx := range indices[1:] {
		k, err := innerIndex(idx)
		if err != nil {
			return Address{}, err
		}
		next, delta, err := stepInto(cur, k)
		if err != nil {
			return Address{}, err
		}
		off, err = addOffset(off, delta)
		if err != nil {
			return Address{}, err
		}
		cur = next
	}

	return Address{Block: base.Block, Offset: off}, nil
}

// stepInto pops one index into the current type, returning the element/
// field type to recurse into and the byte delta to add to the running
// offset.
func stepInto(t DType, k uint64) (DType, int64, error) {
	switch t.Kind {
	case TArray, TVector:
		if t.Elem == nil {
			return DType{}, 0, failf("gep", "%w: type has no element", ErrNonIndexable)
		}
		delta, err := mulStride(k, Sizeof(*t.Elem))
		if err != nil {
			return DType{}, 0, err
		}
		return *t.Elem, delta, nil
	case TStruct, TPacked:
		if k >= uint64(len(t.Fields)) {
			return DType{}, 0, failf("gep", "%w: field %d out of range (%d fields)", ErrOverflow, k, len(t.Fields))
		}
		var off int64
		for i := uint64(0); i < k; i++ {
			off += Sizeof(t.Fields[i])
		}
		return t.Fields[k], off, nil
	default:
		return DType{}, 0, failf("gep", "%w: %s", ErrNonIndexable, t)
	}
}

// topLevelIndex accepts i32 or i64 for the first GEP index (spec §4.3
// point 3).
func topLevelIndex(v DValue) (uint64, error) {
	switch v.Kind {
	case KI32, KI64:
		return v.I, nil
	default:
		return 0, failf("gep", "%w: top-level index must be i32 or i64", ErrNonIntegerIndex)
	}
}

// innerIndex accepts i8, i32, or i64 for every GEP index after the first.
func innerIndex(v DValue) (uint64, error) {
	switch v.Kind {
	case KI8, KI32, KI64:
		return v.I, nil
	default:
		return 0, failf("gep", "%w: index must be i8, i32, or i64", ErrNonIntegerIndex)
	}
}

// mulStride computes k*stride in 256-bit space, the same idiom the teacher
// uses for EVM word arithmetic, so that a product too large to fit an int64
// offset is caught as ErrOverflow rather than silently wrapping.
func mulStride(k uint64, stride int64) (int64, error) {
	a := uint256.NewInt(k)
	b := uint256.NewInt(uint64(stride))
	a.Mul(a, b)
	if !a.IsUint64() || a.Uint64() > math.MaxInt64 {
		return 0, failf("gep", "%w: index*stride overflows a 64-bit offset", ErrOverflow)
	}
	return int64(a.Uint64()), nil
}

// addOffset computes off+delta in 256-bit space for the same reason.
func addOffset(off, delta int64) (int64, error) {
	a := uint256.NewInt(uint64(off))
	b := uint256.NewInt(uint64(delta))
	a.Add(a, b)
	if !a.IsUint64() || a.Uint64() > math.MaxInt64 {
		return 0, failf("gep", "%w: offset overflows a 64-bit offset", ErrOverflow)
	}
	return int64(a.Uint64()), nil
}
