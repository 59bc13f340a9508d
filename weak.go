package refcount

// Weak is an observing handle: it tracks a value owned by Shared handles
// without extending its lifetime. A Weak handle never implies the value is
// alive; check Expired or upgrade with Lock before use. The zero value is
// an empty observer. Share with Clone or Move, never by copying the struct
// value.
//
// Weak handles are created from an existing Shared handle (Downgrade) or
// from another Weak handle (Clone). There is deliberately no constructor
// from a raw pointer: without an accompanying control block such an
// observer could neither upgrade nor report expiry truthfully.
type Weak[T any] struct {
	ptr   *T
	block *controlBlock
}

// NewWeak returns an empty observer.
func NewWeak[T any]() *Weak[T] {
	return &Weak[T]{}
}

// Downgrade returns an observer on s's value, bumping the weak count.
// Downgrading an empty handle yields an empty observer.
func (s *Shared[T]) Downgrade() *Weak[T] {
	if s.block != nil {
		s.block.acquireWeak("Shared.Downgrade")
	}
	return &Weak[T]{ptr: s.ptr, block: s.block}
}

// Clone returns a new observer on the same block, bumping the weak count.
// Cloning an expired observer is valid; the clone is expired too.
func (w *Weak[T]) Clone() *Weak[T] {
	if w.block != nil {
		w.block.acquireWeak("Weak.Clone")
	}
	return &Weak[T]{ptr: w.ptr, block: w.block}
}

// Assign makes w observe other's block, releasing w's current weak
// reference. Self-assignment is a no-op.
func (w *Weak[T]) Assign(other *Weak[T]) {
	if w == other {
		return
	}
	w.release("Weak.Assign")
	w.ptr, w.block = other.ptr, other.block
	if w.block != nil {
		w.block.acquireWeak("Weak.Assign")
	}
}

// Move transfers the weak reference into a new observer; w becomes empty.
func (w *Weak[T]) Move() *Weak[T] {
	moved := &Weak[T]{ptr: w.ptr, block: w.block}
	w.ptr, w.block = nil, nil
	return moved
}

// MoveAssign releases w's weak reference and transfers other's into w;
// other becomes empty. Self-move is a no-op.
func (w *Weak[T]) MoveAssign(other *Weak[T]) {
	if w == other {
		return
	}
	w.release("Weak.MoveAssign")
	w.ptr, w.block = other.ptr, other.block
	other.ptr, other.block = nil, nil
}

// Lock upgrades the observer to an owning handle. If the value is still
// alive the result shares it and the strong count is bumped; otherwise the
// result is an empty handle and nothing changes. The check and the
// increment are not atomic - see the package doc's concurrency contract.
func (w *Weak[T]) Lock() *Shared[T] {
	if w.block != nil && w.block.strong > 0 {
		w.block.acquireStrong("Weak.Lock")
		return &Shared[T]{ptr: w.ptr, block: w.block}
	}
	return &Shared[T]{}
}

// Expired reports whether the value is gone: no block, or no remaining
// strong references. Pure query.
func (w *Weak[T]) Expired() bool {
	return w.block == nil || w.block.strong == 0
}

// Release drops w's weak reference and empties the observer. The block is
// reclaimed when the weak count hits zero with the strong count already
// zero; the value itself is never touched from this path. Release on an
// empty observer is a no-op.
func (w *Weak[T]) Release() {
	w.release("Weak.Release")
}

// UseCount returns the strong count observed through the block, 0 when
// empty or expired.
func (w *Weak[T]) UseCount() uint {
	if w.block == nil {
		return 0
	}
	return w.block.strong
}

func (w *Weak[T]) release(op string) {
	if w.block == nil {
		return
	}
	if w.block.releaseWeak(op) {
		w.block.free()
	}
	w.ptr, w.block = nil, nil
}
