package memory

// SByteKind tags a symbolic byte slot (spec §3's sbyte).
type SByteKind int

const (
	SByteConcrete SByteKind = iota // a concrete byte value
	SPtr                           // the head of a serialized pointer
	SPtrFrag                       // filler occupying slots 1..7 of a serialized pointer
	SUndef                         // an undefined byte
)

// SByte is one symbolic byte slot in a LogicalBlock's sparse byte map.
type SByte struct {
	Kind SByteKind
	B    byte    // valid iff Kind == SByteConcrete
	Addr Address // valid iff Kind == SPtr
}

func ByteOf(b byte) SByte    { return SByte{Kind: SByteConcrete, B: b} }
func PtrByte(a Address) SByte { return SByte{Kind: SPtr, Addr: a} }
func PtrFragByte() SByte     { return SByte{Kind: SPtrFrag} }
func UndefByte() SByte       { return SByte{Kind: SUndef} }

func (s SByte) String() string {
	switch s.Kind {
	case SByteConcrete:
		return "byte"
	case SPtr:
		return "ptr"
	case SPtrFrag:
		return "frag"
	default:
		return "undef"
	}
}
