package memory

import "fmt"

// TypeKind tags a DType the way evmByteCode.go tags opcodes: a small closed
// enum with an explicit iota block per category.
type TypeKind int

const (
	TInt    TypeKind = iota // width-bounded integer
	TPtr                    // pointer
	TFloat                  // f32
	TDouble                 // f64
	TArray                  // n x T
	TStruct                 // ordered fields, natural packing
	TPacked                 // ordered fields, no padding (same packing as TStruct here)
	TVector                 // n x T, SIMD-shaped
	TVoid                   // void
)

// DType is the statically-known type of a dynamic value (dtyp in spec
// terms). Only the fields relevant to Kind are populated.
type DType struct {
	Kind   TypeKind
	Width  int     // TInt: bit width (1, 8, 32, or 64)
	Count  int     // TArray, TVector: element count
	Elem   *DType  // TArray, TVector: element type
	Fields []DType // TStruct, TPacked: ordered field types
}

func IntType(width int) DType    { return DType{Kind: TInt, Width: width} }
func PointerType() DType         { return DType{Kind: TPtr} }
func FloatType() DType           { return DType{Kind: TFloat} }
func DoubleType() DType          { return DType{Kind: TDouble} }
func VoidType() DType            { return DType{Kind: TVoid} }
func ArrayType(n int, t DType) DType  { return DType{Kind: TArray, Count: n, Elem: &t} }
func VectorType(n int, t DType) DType { return DType{Kind: TVector, Count: n, Elem: &t} }
func StructType(fields ...DType) DType {
	return DType{Kind: TStruct, Fields: fields}
}
func PackedStructType(fields ...DType) DType {
	return DType{Kind: TPacked, Fields: fields}
}

func (t DType) String() string {
	switch t.Kind {
	case TInt:
		return fmt.Sprintf("i%d", t.Width)
	case TPtr:
		return "ptr"
	case TFloat:
		return "f32"
	case TDouble:
		return "f64"
	case TArray:
		return fmt.Sprintf("[%d x %s]", t.Count, t.Elem)
	case TVector:
		return fmt.Sprintf("<%d x %s>", t.Count, t.Elem)
	case TStruct:
		return fmt.Sprintf("struct%v", t.Fields)
	case TPacked:
		return fmt.Sprintf("<struct%v>", t.Fields)
	case TVoid:
		return "void"
	default:
		return "?"
	}
}

// Address is the symbolic pointer (block id, byte offset) used throughout
// the memory core.
type Address struct {
	Block  int64
	Offset int64
}

func (a Address) String() string { return fmt.Sprintf("(%d,%d)", a.Block, a.Offset) }

// DKind tags a DValue/UValue payload.
type DKind int

const (
	KAddr DKind = iota
	KI1
	KI8
	KI32
	KI64
	KF32
	KF64
	KStruct
	KArray
	KUnit
	KUndef // UValue only: any source byte was undefined
)

// DValue is a fully-defined dynamic value (spec §3's dvalue).
type DValue struct {
	Kind   DKind
	Addr   Address
	I      uint64 // I1/I8/I32/I64 payload; DInt stores it unmasked, Deserialize masks it to width
	F32    float32
	F64    float64
	Fields []DValue // Struct
	Elems  []DValue // Array
}

// UValue is a possibly-undefined dynamic value (spec §3's uvalue): the same
// shape as DValue plus an Undef(type) variant.
type UValue struct {
	Kind       DKind // may be KUndef
	Addr       Address
	I          uint64
	F32        float32
	F64        float64
	Fields     []UValue
	Elems      []UValue
	UndefType  DType // populated iff Kind == KUndef
}

func Undef(t DType) UValue { return UValue{Kind: KUndef, UndefType: t} }

func UAddr(a Address) UValue   { return UValue{Kind: KAddr, Addr: a} }
func UInt(kind DKind, v uint64) UValue { return UValue{Kind: kind, I: v} }
func UF32(v float32) UValue    { return UValue{Kind: KF32, F32: v} }
func UF64(v float64) UValue    { return UValue{Kind: KF64, F64: v} }

// IsUndef reports whether the value is the Undef(t) variant.
func (v UValue) IsUndef() bool { return v.Kind == KUndef }

func DAddr(a Address) DValue { return DValue{Kind: KAddr, Addr: a} }
func DInt(kind DKind, v uint64) DValue { return DValue{Kind: kind, I: v} }
func DF32(v float32) DValue { return DValue{Kind: KF32, F32: v} }
func DF64(v float64) DValue { return DValue{Kind: KF64, F64: v} }

// maskWidth truncates v to the low w bits (w in {1,8,32,64}).
func maskWidth(v uint64, w int) uint64 {
	if w >= 64 {
		return v
	}
	return v & ((uint64(1) << uint(w)) - 1)
}

// kindForWidth maps an integer bit width to its DKind tag.
func kindForWidth(w int) (DKind, bool) {
	switch w {
	case 1:
		return KI1, true
	case 8:
		return KI8, true
	case 32:
		return KI32, true
	case 64:
		return KI64, true
	default:
		return 0, false
	}
}
