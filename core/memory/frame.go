package memory

// FrameStack is the non-empty stack of activation-record block-id lists
// described in spec §3/§4.4. The top element is the currently active frame.
type FrameStack [][]int64

// EmptyFrameStack returns the empty-memory frame stack value [[]].
func EmptyFrameStack() FrameStack {
	return FrameStack{{}}
}

// pushFreshFrame pushes an empty frame atop the stack.
func pushFreshFrame(fs FrameStack) FrameStack {
	return append(fs, []int64{})
}

// freeFrame pops the top frame, returning its block ids so the caller can
// release them from the block store. Fails with ErrEmptyFrameStack if the
// stack is empty.
func freeFrame(fs FrameStack) (FrameStack, []int64, error) {
	if len(fs) == 0 {
		return fs, nil, ErrEmptyFrameStack
	}
	top := fs[len(fs)-1]
	return fs[:len(fs)-1], top, nil
}

// addToFrame prepends id to the top frame. Fails with ErrEmptyFrameStack if
// the stack is empty.
func addToFrame(fs FrameStack, id int64) (FrameStack, error) {
	if len(fs) == 0 {
		return fs, ErrEmptyFrameStack
	}
	top := len(fs) - 1
	fs[top] = append([]int64{id}, fs[top]...)
	return fs, nil
}
