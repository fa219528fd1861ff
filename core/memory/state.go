package memory

// State is the sole mutable value threaded through event handling: a
// Memory paired with a FrameStack (spec §3's "memory state").
type State struct {
	Mem    Memory
	Frames FrameStack
}

// NewState returns the empty-memory state: no blocks, a single empty frame.
func NewState() State {
	return State{Mem: EmptyMemory(), Frames: EmptyFrameStack()}
}

// Clone deep-enough-copies the state for snapshotting before a mutation the
// caller wants to be able to roll back.
func (s State) Clone() State {
	frames := make(FrameStack, len(s.Frames))
	for i, f := range s.Frames {
		frames[i] = append([]int64(nil), f...)
	}
	return State{Mem: s.Mem.Clone(), Frames: frames}
}

// Allocate implements spec §4.5: compute n = sizeof(t), build a logical
// block of n Undef bytes, bind it to a fresh id, and record it in the
// current frame.
func Allocate(s State, t DType) (State, int64, error) {
	n := Sizeof(t)
	block := newLogicalBlock(n)
	if n > 0 {
		for i := int64(0); i < n; i++ {
			block.Bytes[i] = UndefByte()
		}
	}
	id := nextLogicalKey(s.Mem)
	s.Mem = s.Mem.addLogical(id, block)

	frames, err := addToFrame(s.Frames, id)
	if err != nil {
		return s, 0, err
	}
	s.Frames = frames
	return s, id, nil
}

// Read implements spec §4.6: look up the logical block, pull sizeof(t)
// bytes starting at the pointer's offset (Undef-padded past the end), and
// deserialize.
func Read(s State, ptr Address, t DType) (UValue, error) {
	block, ok := s.Mem.getLogical(ptr.Block)
	if !ok {
		return UValue{}, ErrReadUnallocated
	}
	n := Sizeof(t)
	raw := lookupAllIndex(ptr.Offset, n, block.Bytes, UndefByte())
	return Deserialize(raw, t), nil
}

// Write implements spec §4.6: look up the logical block, serialize v, and
// splice the bytes into the block's sparse map at ptr.Offset. Out-of-range
// writes extend the sparse map without updating the block's declared size.
func Write(s State, ptr Address, v DValue) (State, error) {
	block, ok := s.Mem.getLogical(ptr.Block)
	if !ok {
		return s, ErrWriteUnallocated
	}
	addAllIndex(Serialize(v), ptr.Offset, block.Bytes)
	s.Mem = s.Mem.addLogical(ptr.Block, block)
	return s, nil
}

// PushFreshFrame implements spec §4.4.
func PushFreshFrame(s State) State {
	s.Frames = pushFreshFrame(s.Frames)
	return s
}

// FreeFrame implements spec §4.4: pop the top frame and release every
// logical id it owned, along with any concrete block shadowing it.
func FreeFrame(s State) (State, error) {
	frames, ids, err := freeFrame(s.Frames)
	if err != nil {
		return s, err
	}
	s.Frames = frames
	for _, id := range ids {
		block, ok := s.Mem.getLogical(id)
		if !ok {
			continue
		}
		delete(s.Mem.Logical, id)
		if block.ConcreteID >= 0 {
			delete(s.Mem.Concrete, block.ConcreteID)
		}
	}
	return s, nil
}

// ConcretizeBlock implements spec §4.7: bind logical block b to a concrete
// address region, creating one lazily on first use. A reference to an
// absent logical block is a defensive no-op that returns b unchanged.
func ConcretizeBlock(s State, b int64) (State, int64, error) {
	block, ok := s.Mem.getLogical(b)
	if !ok {
		return s, b, nil
	}
	if block.ConcreteID >= 0 {
		return s, block.ConcreteID, nil
	}
	c := nextConcreteKey(s.Mem)
	s.Mem = s.Mem.addConcrete(c, ConcreteBlock{Size: block.Size, LogicalID: b})
	block.ConcreteID = c
	s.Mem = s.Mem.addLogical(b, block)
	return s, c, nil
}

// ConcreteToLogical implements spec §4.7: scan the concrete store for the
// region containing address c and translate it back to a (logical id,
// offset) pair.
func ConcreteToLogical(s State, c int64) (Address, bool) {
	for base, blk := range s.Mem.Concrete {
		if c >= base && c < base+blk.Size {
			return Address{Block: blk.LogicalID, Offset: c - base}, true
		}
	}
	return Address{}, false
}
