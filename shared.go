package refcount

// Shared is an owning handle on a heap-allocated T. All Shared handles
// attached to the same control block co-own the value; the value is
// destroyed when the last of them releases. The zero value is an empty
// handle. Share with Clone or Move, never by copying the struct value.
type Shared[T any] struct {
	ptr   *T
	block *controlBlock
}

// NewShared takes exclusive ownership of ptr and returns an owning handle
// with a fresh control block (strong count 1). A nil ptr yields an empty
// handle. The caller must not use or free ptr after the transfer.
func NewShared[T any](ptr *T) *Shared[T] {
	s := &Shared[T]{}
	if ptr != nil {
		s.ptr = ptr
		s.block = newControlBlock()
	}
	return s
}

// Clone returns a new handle sharing the value, bumping the strong count.
// Cloning an empty handle yields an empty handle.
func (s *Shared[T]) Clone() *Shared[T] {
	if s.block != nil {
		s.block.acquireStrong("Shared.Clone")
	}
	return &Shared[T]{ptr: s.ptr, block: s.block}
}

// Assign makes s share other's value, releasing whatever s held before.
// Self-assignment is a no-op.
func (s *Shared[T]) Assign(other *Shared[T]) {
	if s == other {
		return
	}
	s.release("Shared.Assign")
	s.ptr, s.block = other.ptr, other.block
	if s.block != nil {
		s.block.acquireStrong("Shared.Assign")
	}
}

// Move transfers ownership out of s into a new handle; s becomes empty.
// The strong count is unchanged.
func (s *Shared[T]) Move() *Shared[T] {
	moved := &Shared[T]{ptr: s.ptr, block: s.block}
	s.ptr, s.block = nil, nil
	return moved
}

// MoveAssign releases s's current value and transfers other's ownership
// into s; other becomes empty. Self-move is a no-op.
func (s *Shared[T]) MoveAssign(other *Shared[T]) {
	if s == other {
		return
	}
	s.release("Shared.MoveAssign")
	s.ptr, s.block = other.ptr, other.block
	other.ptr, other.block = nil, nil
}

// Get returns the raw pointer without transferring ownership. Nil for an
// empty handle. The pointer must not outlive the handle group's ownership.
func (s *Shared[T]) Get() *T {
	return s.ptr
}

// Deref returns the owned value. Calling Deref on an empty handle is a
// contract violation; no check is performed, so it panics on the nil
// dereference.
func (s *Shared[T]) Deref() T {
	return *s.ptr
}

// Reset releases current ownership, then takes exclusive ownership of ptr
// under a fresh control block (strong count 1). Reset(nil) leaves the
// handle empty.
func (s *Shared[T]) Reset(ptr *T) {
	s.release("Shared.Reset")
	if ptr != nil {
		s.ptr = ptr
		s.block = newControlBlock()
	}
}

// Release drops s's strong reference and empties the handle. On the last
// strong reference the value is destroyed (Drop hook, if implemented), and
// the control block is reclaimed unless observers remain. Release on an
// empty handle is a no-op, so releasing twice through one handle is
// harmless.
func (s *Shared[T]) Release() {
	s.release("Shared.Release")
}

// UseCount returns the current strong count, 0 for an empty handle. The
// count is a diagnostic; it is stale the moment another handle operates on
// the block.
func (s *Shared[T]) UseCount() uint {
	if s.block == nil {
		return 0
	}
	return s.block.strong
}

func (s *Shared[T]) release(op string) {
	if s.block == nil {
		return
	}
	valueDead, blockDead := s.block.releaseStrong(op)
	if valueDead {
		destroyValue(s.block, s.ptr)
	}
	if blockDead {
		s.block.free()
	}
	s.ptr, s.block = nil, nil
}
