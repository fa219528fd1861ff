package memory

import "github.com/ethereum/go-ethereum/log"

// EventKind tags a memory event accepted by the Handler (spec §4.9).
type EventKind int

const (
	EvMemPush EventKind = iota
	EvMemPop
	EvAlloca
	EvLoad
	EvStore
	EvGEP
	EvItoP
	EvPtoI
	EvIntrinsic
)

// Event is the tagged union of memory operations the Handler dispatches.
// Only the fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	Type    DType    // Alloca, Load, GEP, PtoI
	Addr    Address  // Load, Store, GEP base
	Value   DValue   // Store, ItoP, PtoI
	Indices []DValue // GEP
	Name    string   // Intrinsic
	Args    []DValue // Intrinsic
}

// ResultKind tags a Handler result.
type ResultKind int

const (
	RUnit ResultKind = iota
	RAddr
	RUValue
	RDValue
)

// Result is the tagged union a Handler call returns alongside the updated
// State.
type Result struct {
	Kind   ResultKind
	Addr   Address
	UValue UValue
	DValue DValue
}

func unit() Result          { return Result{Kind: RUnit} }
func addrResult(a Address) Result  { return Result{Kind: RAddr, Addr: a} }
func uResult(v UValue) Result      { return Result{Kind: RUValue, UValue: v} }
func dResult(v DValue) Result      { return Result{Kind: RDValue, DValue: v} }

// Handler dispatches memory events against a State, per spec §4.9. It
// holds no state of its own beyond the intrinsics table and config — the
// State it operates on is always passed in and returned, matching §5's
// "state is moved, not shared" model.
type Handler struct {
	Intrinsics *IntrinsicTable
	Config     Config
}

// NewHandler returns a Handler wired with the built-in intrinsics table.
func NewHandler(cfg Config) *Handler {
	return &Handler{Intrinsics: NewIntrinsicTable(cfg), Config: cfg}
}

// Dispatch is the sole entry point described in §4.9: it consumes a typed
// event and returns the updated state alongside a result, or an error.
// Fatal errors are *Failure; undefined-behavior signals are *UB, and per
// §7 the state returned alongside a *UB is always the pre-event state.
func (h *Handler) Dispatch(s State, ev Event) (State, Result, error) {
	switch ev.Kind {
	case EvMemPush:
		return h.memPush(s, ev)
	case EvMemPop:
		return h.memPop(s, ev)
	case EvAlloca:
		return h.alloca(s, ev)
	case EvLoad:
		return h.load(s, ev)
	case EvStore:
		return h.store(s, ev)
	case EvGEP:
		return h.gep(s, ev)
	case EvItoP:
		return h.itoP(s, ev)
	case EvPtoI:
		return h.ptoI(s, ev)
	case EvIntrinsic:
		return h.intrinsic(s, ev)
	default:
		return s, Result{}, failf("dispatch", "unknown event kind %d", ev.Kind)
	}
}

func (h *Handler) memPush(s State, _ Event) (State, Result, error) {
	s = PushFreshFrame(s)
	log.Debug("mem: push frame", "depth", len(s.Frames))
	return s, unit(), nil
}

func (h *Handler) memPop(s State, _ Event) (State, Result, error) {
	next, err := FreeFrame(s)
	if err != nil {
		return s, Result{}, fail("mempop", err)
	}
	log.Debug("mem: pop frame", "depth", len(next.Frames))
	return next, unit(), nil
}

func (h *Handler) alloca(s State, ev Event) (State, Result, error) {
	next, id, err := Allocate(s, ev.Type)
	if err != nil {
		return s, Result{}, fail("alloca", err)
	}
	log.Debug("mem: alloca", "block", id, "type", ev.Type.String(), "size", Sizeof(ev.Type))
	return next, addrResult(Address{Block: id, Offset: 0}), nil
}

func (h *Handler) load(s State, ev Event) (State, Result, error) {
	v, err := Read(s, ev.Addr, ev.Type)
	if err != nil {
		log.Warn("mem: load from unallocated address", "addr", ev.Addr)
		return s, Result{}, ub("load", err)
	}
	return s, uResult(v), nil
}

func (h *Handler) store(s State, ev Event) (State, Result, error) {
	next, err := Write(s, ev.Addr, ev.Value)
	if err != nil {
		return s, Result{}, fail("store", err)
	}
	return next, unit(), nil
}

func (h *Handler) gep(s State, ev Event) (State, Result, error) {
	addr, err := GEP(ev.Addr, ev.Type, ev.Indices)
	if err != nil {
		return s, Result{}, err
	}
	return s, addrResult(addr), nil
}

func (h *Handler) itoP(s State, ev Event) (State, Result, error) {
	if ev.Value.Kind != KI1 && ev.Value.Kind != KI8 && ev.Value.Kind != KI32 && ev.Value.Kind != KI64 {
		return s, Result{}, failf("itop", "%w: ItoP requires an integer", ErrTypeError)
	}
	addr, ok := ConcreteToLogical(s, int64(ev.Value.I))
	if !ok {
		log.Warn("mem: itop of invalid concrete address", "addr", ev.Value.I)
		return s, Result{}, ub("itop", ErrInvalidConcreteAddr)
	}
	return s, dResult(DAddr(addr)), nil
}

func (h *Handler) ptoI(s State, ev Event) (State, Result, error) {
	if ev.Type.Kind != TInt {
		return s, Result{}, failf("ptoi", "%w: PtoI requires an integer target type", ErrTypeError)
	}
	if ev.Value.Kind != KAddr {
		return s, Result{}, failf("ptoi", "%w: PtoI requires an address operand", ErrTypeError)
	}
	next, c, err := ConcretizeBlock(s, ev.Value.Addr.Block)
	if err != nil {
		return s, Result{}, fail("ptoi", err)
	}
	kind, ok := kindForWidth(ev.Type.Width)
	if !ok {
		return s, Result{}, failf("ptoi", "%w: unsupported width i%d", ErrTypeError, ev.Type.Width)
	}
	sum := c + ev.Value.Addr.Offset
	return next, dResult(DInt(kind, maskWidth(uint64(sum), ev.Type.Width))), nil
}

func (h *Handler) intrinsic(s State, ev Event) (State, Result, error) {
	if ev.Name == memcpyName {
		next, err := h.memcpy(s, ev.Args)
		if err != nil {
			return s, Result{}, err
		}
		return next, unit(), nil
	}
	v, err := h.Intrinsics.Call(ev.Name, ev.Args)
	if err != nil {
		return s, Result{}, err
	}
	return s, dResult(v), nil
}

// memcpyName is the exact LLVM symbol for the special-cased memcpy
// intrinsic (spec §4.8); it is handled by the memory core directly rather
// than through IntrinsicTable since it needs block-store access.
const memcpyName = "llvm.memcpy.p0i8.p0i8.i32"

// memcpy implements spec §4.8's llvm.memcpy.p0i8.p0i8.i32(dst, src, len,
// align, volatile): align and volatile are ignored, and the len lowest
// bytes of src's logical block (at its address offset) are read with Undef
// default and written starting at dst's address offset.
func (h *Handler) memcpy(s State, args []DValue) (State, error) {
	if len(args) != 5 {
		return s, failf("memcpy", "%w: expected 5 arguments, got %d", ErrIntrinsicArity, len(args))
	}
	dst, src, length := args[0], args[1], args[2]
	if dst.Kind != KAddr || src.Kind != KAddr {
		return s, failf("memcpy", "%w: dst and src must be addresses", ErrIntrinsicArgType)
	}
	n := int64(length.I)

	srcBlock, srcOK := s.Mem.getLogical(src.Addr.Block)
	dstBlock, dstOK := s.Mem.getLogical(dst.Addr.Block)
	if !srcOK || !dstOK {
		if !h.Config.MemcpyFailsOnMissingBlock {
			return s, nil
		}
		return s, fail("memcpy", ErrMissingBlock)
	}

	raw := lookupAllIndex(src.Addr.Offset, n, srcBlock.Bytes, UndefByte())
	addAllIndex(raw, dst.Addr.Offset, dstBlock.Bytes)
	s.Mem = s.Mem.addLogical(dst.Addr.Block, dstBlock)
	return s, nil
}
