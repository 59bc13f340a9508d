// Package refcount provides reference-counted ownership handles for
// heap-allocated Go values.
//
// Two handle kinds cooperate over one shared control block:
//
//   - Shared[T] owns the value. Every Shared handle attached to the same
//     control block shares responsibility for destroying the value; the
//     value is destroyed exactly once, when the last of them releases.
//   - Weak[T] observes the value without keeping it alive. It can report
//     whether the value has expired and can be upgraded back to a Shared
//     handle with Lock, which succeeds only while the value is still alive.
//
// The control block carries two counters: the strong count (live Shared
// handles) and the weak count (live Weak handles). The value is alive iff
// the strong count is positive. The block itself outlives the value when
// observers remain: it is reclaimed only once both counters reach zero,
// from whichever release path gets there last.
//
// # Architecture Overview
//
//	refcount/            Shared[T], Weak[T], control block, lifecycle events
//	├── track/           Ready-made observers: live counters, recorders, zap logging
//	└── cmd/rcdemo/      Terminal demo of the handle lifecycle
//
// # Quick Start
//
//	s := refcount.NewShared(&Buffer{Name: "scratch"})
//	defer s.Release()
//
//	w := s.Downgrade()
//	defer w.Release()
//
//	if t := w.Lock(); t.Get() != nil {
//	    use(t.Deref())
//	    t.Release()
//	}
//
// # Ownership Contract
//
// NewShared and Reset take exclusive ownership of the pointer passed in:
// the caller must not retain it, free it, or hand it to a second handle.
// Handles are released explicitly with Release; Go has no destructors, so
// forgetting Release leaks the strong reference (the track package can
// surface this). Values that need teardown implement Dropper; Drop is
// invoked exactly once, when the strong count falls to zero.
//
// Handles must be shared via Clone (or moved via Move and MoveAssign),
// never by copying the struct value. A by-value copy bypasses the counting
// protocol; the counters panic with a *StateError if such a copy is later
// released or cloned.
//
// # Concurrency
//
// This package is single-threaded by design: the counters are plain
// integers and no locking is performed. Handles that share a control block
// must be confined to one goroutine or synchronized externally. A
// thread-safe variant would need atomic counters, and Lock's
// check-then-increment would have to become a single compare-and-increment
// so the value cannot be destroyed between the liveness check and the
// strong-count bump.
package refcount
