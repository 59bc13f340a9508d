package refcount

// Dropper is optionally implemented by owned values that need cleanup.
// Drop is called exactly once, when the last Shared handle releases.
type Dropper interface {
	Drop()
}

// controlBlock is the record shared by every handle attached to one value.
// strong counts live Shared handles, weak counts live Weak handles. The
// value is alive iff strong > 0; the block is reclaimed once both counters
// are zero. Counters are plain integers - see the package doc for the
// single-threaded contract.
type controlBlock struct {
	id     BlockID
	strong uint
	weak   uint
}

// lastBlockID tags blocks for lifecycle events. Plain counter, same
// single-threaded contract as the blocks it numbers.
var lastBlockID BlockID

func newControlBlock() *controlBlock {
	lastBlockID++
	b := &controlBlock{id: lastBlockID, strong: 1}
	notify(Event{Kind: EventBlockAllocated, Block: b.id, Strong: b.strong})
	return b
}

func (b *controlBlock) acquireStrong(op string) {
	if b.strong == 0 {
		panic(&StateError{Op: op, Kind: KindUseAfterFree, Detail: "strong count already zero"})
	}
	b.strong++
}

// releaseStrong decrements the strong count. valueDead reports that the
// value must be destroyed (strong hit zero); blockDead that the block is
// unreferenced and must be reclaimed as well.
func (b *controlBlock) releaseStrong(op string) (valueDead, blockDead bool) {
	if b.strong == 0 {
		panic(&StateError{Op: op, Kind: KindUnderflow, Detail: "strong count underflow"})
	}
	b.strong--
	if b.strong > 0 {
		return false, false
	}
	return true, b.weak == 0
}

func (b *controlBlock) acquireWeak(op string) {
	if b.strong == 0 && b.weak == 0 {
		panic(&StateError{Op: op, Kind: KindUseAfterFree, Detail: "control block already reclaimed"})
	}
	b.weak++
}

// releaseWeak decrements the weak count and reports whether the block is
// now unreferenced. The value is never touched from the weak side.
func (b *controlBlock) releaseWeak(op string) (blockDead bool) {
	if b.weak == 0 {
		panic(&StateError{Op: op, Kind: KindUnderflow, Detail: "weak count underflow"})
	}
	b.weak--
	return b.weak == 0 && b.strong == 0
}

// free marks the block reclaimed. The memory itself is garbage collected;
// the event is the observable "delete".
func (b *controlBlock) free() {
	notify(Event{Kind: EventBlockFreed, Block: b.id})
}

// destroyValue runs the value's Drop hook, if any, and records the
// destruction. Called exactly once per block, on the strong 1->0 edge.
func destroyValue[T any](b *controlBlock, ptr *T) {
	if d, ok := any(ptr).(Dropper); ok {
		d.Drop()
	}
	notify(Event{Kind: EventValueDestroyed, Block: b.id, Weak: b.weak})
}
