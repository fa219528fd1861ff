package memory

import "math"

// Intrinsic is a pure function over dynamic values, per spec §4.8.
type Intrinsic func(args []DValue) (DValue, error)

// IntrinsicTable is a registry mapping a declared name to its pure
// implementation, the same "table of function pointers keyed by a name"
// idiom the teacher uses for its opcode-indexed gas table, generalized from
// an array indexed by opcode byte to a map indexed by LLVM symbol name.
type IntrinsicTable struct {
	fns map[string]Intrinsic
}

// NewIntrinsicTable returns a table pre-populated with the built-ins from
// spec §4.8. If cfg.StrictIntrinsicNames is set, "llvm.minimum.f32" is
// registered in addition to the source-faithful "minimum.f32" (see the
// note on the minimum.f32 registration below); it is never registered in
// place of it.
func NewIntrinsicTable(cfg Config) *IntrinsicTable {
	t := &IntrinsicTable{fns: make(map[string]Intrinsic)}

	t.Register("llvm.fabs.f32", fabs32)
	t.Register("llvm.fabs.f64", fabs64)
	t.Register("llvm.maxnum.f32", maxnum32)
	t.Register("llvm.maxnum.f64", maxnum64)

	// minimum.f32 is registered without the "llvm." prefix, matching the
	// source's minimum_32_decl. This looks like a typo upstream but is
	// mirrored deliberately rather than silently corrected; see DESIGN.md.
	t.Register("minimum.f32", minimum32)
	t.Register("llvm.minimum.f64", minimum64)
	if cfg.StrictIntrinsicNames {
		t.Register("llvm.minimum.f32", minimum32)
	}

	return t
}

// Register adds or replaces the implementation for name.
func (t *IntrinsicTable) Register(name string, fn Intrinsic) {
	t.fns[name] = fn
}

// Lookup returns the implementation registered for name.
func (t *IntrinsicTable) Lookup(name string) (Intrinsic, bool) {
	fn, ok := t.fns[name]
	return fn, ok
}

// Call dispatches to the named intrinsic, failing with ErrUnknownIntrinsic
// if it is not registered.
func (t *IntrinsicTable) Call(name string, args []DValue) (DValue, error) {
	fn, ok := t.Lookup(name)
	if !ok {
		return DValue{}, failf("intrinsic", "%w: %q", ErrUnknownIntrinsic, name)
	}
	return fn(args)
}

func unaryF32(args []DValue, f func(float32) float32) (DValue, error) {
	if len(args) != 1 || args[0].Kind != KF32 {
		return DValue{}, failf("intrinsic", "%w: expected one f32 argument", ErrIntrinsicArgType)
	}
	return DF32(f(args[0].F32)), nil
}

func unaryF64(args []DValue, f func(float64) float64) (DValue, error) {
	if len(args) != 1 || args[0].Kind != KF64 {
		return DValue{}, failf("intrinsic", "%w: expected one f64 argument", ErrIntrinsicArgType)
	}
	return DF64(f(args[0].F64)), nil
}

func fabs32(args []DValue) (DValue, error) {
	return unaryF32(args, func(v float32) float32 { return math.Float32frombits(math.Float32bits(v) &^ (1 << 31)) })
}

func fabs64(args []DValue) (DValue, error) {
	return unaryF64(args, math.Abs)
}

func binaryF32(args []DValue) (float32, float32, error) {
	if len(args) != 2 || args[0].Kind != KF32 || args[1].Kind != KF32 {
		return 0, 0, failf("intrinsic", "%w: expected two f32 arguments", ErrIntrinsicArgType)
	}
	return args[0].F32, args[1].F32, nil
}

func binaryF64(args []DValue) (float64, float64, error) {
	if len(args) != 2 || args[0].Kind != KF64 || args[1].Kind != KF64 {
		return 0, 0, failf("intrinsic", "%w: expected two f64 arguments", ErrIntrinsicArgType)
	}
	return args[0].F64, args[1].F64, nil
}

// maxnum32/64 and minimum32/64 implement spec §4.8: if either operand is
// NaN, return a NaN built from the operand's own NaN payload; otherwise
// compare by IEEE '<' — maxnum returns b when a < b else a, minimum returns
// a when a < b else b.
func maxnum32(args []DValue) (DValue, error) {
	a, b, err := binaryF32(args)
	if err != nil {
		return DValue{}, err
	}
	if r, ok := nanPayload32(a, b); ok {
		return DF32(r), nil
	}
	if a < b {
		return DF32(b), nil
	}
	return DF32(a), nil
}

func maxnum64(args []DValue) (DValue, error) {
	a, b, err := binaryF64(args)
	if err != nil {
		return DValue{}, err
	}
	if r, ok := nanPayload64(a, b); ok {
		return DF64(r), nil
	}
	if a < b {
		return DF64(b), nil
	}
	return DF64(a), nil
}

func minimum32(args []DValue) (DValue, error) {
	a, b, err := binaryF32(args)
	if err != nil {
		return DValue{}, err
	}
	if r, ok := nanPayload32(a, b); ok {
		return DF32(r), nil
	}
	if a < b {
		return DF32(a), nil
	}
	return DF32(b), nil
}

func minimum64(args []DValue) (DValue, error) {
	a, b, err := binaryF64(args)
	if err != nil {
		return DValue{}, err
	}
	if r, ok := nanPayload64(a, b); ok {
		return DF64(r), nil
	}
	if a < b {
		return DF64(a), nil
	}
	return DF64(b), nil
}

// nanPayload32/64 return (nan, true) built from whichever operand is NaN
// (preferring a) when either operand is NaN, else (0, false).
func nanPayload32(a, b float32) (float32, bool) {
	if math.IsNaN(float64(a)) {
		return a, true
	}
	if math.IsNaN(float64(b)) {
		return b, true
	}
	return 0, false
}

func nanPayload64(a, b float64) (float64, bool) {
	if math.IsNaN(a) {
		return a, true
	}
	if math.IsNaN(b) {
		return b, true
	}
	return 0, false
}
