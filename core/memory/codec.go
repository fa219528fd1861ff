package memory

import (
	"encoding/binary"
	"math"
)

// Serialize encodes a DValue as a little-endian sequence of symbolic bytes
// per spec §4.1. Any dvalue shape the codec does not know how to pack
// serializes to the empty sequence — producers must not attempt it.
func Serialize(v DValue) []SByte {
	switch v.Kind {
	case KAddr:
		out := make([]SByte, 8)
		out[0] = PtrByte(v.Addr)
		for i := 1; i < 8; i++ {
			out[i] = PtrFragByte()
		}
		return out
	case KI1, KI8, KI32, KI64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], v.I)
		out := make([]SByte, 8)
		for i, b := range buf {
			out[i] = ByteOf(b)
		}
		return out
	case KF32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v.F32))
		out := make([]SByte, 4)
		for i, b := range buf {
			out[i] = ByteOf(b)
		}
		return out
	case KF64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.F64))
		out := make([]SByte, 8)
		for i, b := range buf {
			out[i] = ByteOf(b)
		}
		return out
	case KStruct:
		return serializeSeq(v.Fields)
	case KArray:
		return serializeSeq(v.Elems)
	default:
		return nil
	}
}

// serializeSeq right-folds the serialization of an ordered sequence of
// dvalues so that index 0 lands at the lowest offset.
func serializeSeq(vs []DValue) []SByte {
	var out []SByte
	for i := len(vs) - 1; i >= 0; i-- {
		out = append(Serialize(vs[i]), out...)
	}
	return out
}

// Deserialize reconstructs a UValue of type t from a symbolic byte slice,
// per spec §4.1. If any consumed byte is Ptr/PtrFrag/Undef the whole result
// is Undef(t), except for the Pointer case, which succeeds iff the first
// byte is Ptr(a).
func Deserialize(bytes []SByte, t DType) UValue {
	switch t.Kind {
	case TPtr:
		if len(bytes) == 0 || bytes[0].Kind != SPtr {
			return Undef(t)
		}
		return UAddr(bytes[0].Addr)
	case TInt:
		kind, ok := kindForWidth(t.Width)
		if !ok {
			return Undef(t)
		}
		if anyTagged(bytes, 8) {
			return Undef(t)
		}
		var buf [8]byte
		for i := 0; i < 8 && i < len(bytes); i++ {
			buf[i] = bytes[i].B
		}
		v := binary.LittleEndian.Uint64(buf[:])
		return UInt(kind, maskWidth(v, t.Width))
	case TFloat:
		if anyTagged(bytes, 4) {
			return Undef(t)
		}
		var buf [4]byte
		for i := 0; i < 4 && i < len(bytes); i++ {
			buf[i] = bytes[i].B
		}
		return UF32(math.Float32frombits(binary.LittleEndian.Uint32(buf[:])))
	case TDouble:
		if anyTagged(bytes, 8) {
			return Undef(t)
		}
		var buf [8]byte
		for i := 0; i < 8 && i < len(bytes); i++ {
			buf[i] = bytes[i].B
		}
		return UF64(math.Float64frombits(binary.LittleEndian.Uint64(buf[:])))
	case TArray, TVector:
		if t.Elem == nil {
			return Undef(t)
		}
		elemSize := Sizeof(*t.Elem)
		elems := make([]UValue, t.Count)
		for i := 0; i < t.Count; i++ {
			chunk := sliceOrPad(bytes, int64(i)*elemSize, elemSize)
			elems[i] = Deserialize(chunk, *t.Elem)
		}
		return UValue{Kind: KArray, Elems: elems}
	case TStruct, TPacked:
		fields := make([]UValue, len(t.Fields))
		var off int64
		for i, f := range t.Fields {
			sz := Sizeof(f)
			chunk := sliceOrPad(bytes, off, sz)
			fields[i] = Deserialize(chunk, f)
			off += sz
		}
		return UValue{Kind: KStruct, Fields: fields}
	default:
		return Undef(t)
	}
}

// anyTagged reports whether any of the first n bytes (or fewer if the slice
// is short — a short read is implicitly padded with Undef) is Ptr, PtrFrag,
// or Undef.
func anyTagged(bytes []SByte, n int) bool {
	for i := 0; i < n; i++ {
		if i >= len(bytes) || bytes[i].Kind != SByteConcrete {
			return true
		}
	}
	return false
}

// sliceOrPad returns bytes[off:off+n], padding with Undef bytes for any
// index beyond the end of the input.
func sliceOrPad(bytes []SByte, off, n int64) []SByte {
	out := make([]SByte, n)
	for i := int64(0); i < n; i++ {
		idx := off + i
		if idx >= 0 && idx < int64(len(bytes)) {
			out[i] = bytes[idx]
		} else {
			out[i] = UndefByte()
		}
	}
	return out
}
