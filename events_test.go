package refcount

import (
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnLifecycleEvent(e Event) {
	o.events = append(o.events, e)
}

func (o *testObserver) count(kind EventKind, block BlockID) int {
	n := 0
	for _, e := range o.events {
		if e.Kind == kind && e.Block == block {
			n++
		}
	}
	return n
}

func TestEvents_SharedLifecycle(t *testing.T) {
	obs := &testObserver{}
	Subscribe(obs)
	defer Unsubscribe(obs)

	a := NewShared(&testValue{name: "a"})
	if len(obs.events) != 1 || obs.events[0].Kind != EventBlockAllocated {
		t.Fatal("Expected a single block_allocated event")
	}
	block := obs.events[0].Block

	b := a.Clone()
	if len(obs.events) != 1 {
		t.Fatal("Clone should not emit events")
	}

	a.Release()
	if len(obs.events) != 1 {
		t.Fatal("Release with a remaining owner should not emit events")
	}

	b.Release()
	if obs.count(EventValueDestroyed, block) != 1 {
		t.Fatal("Expected exactly one value_destroyed event")
	}
	if obs.count(EventBlockFreed, block) != 1 {
		t.Fatal("Expected exactly one block_freed event")
	}
	if last := obs.events[len(obs.events)-1]; last.Kind != EventBlockFreed {
		t.Fatal("block_freed should be the final event")
	}
}

func TestEvents_BlockOutlivesValue(t *testing.T) {
	obs := &testObserver{}
	Subscribe(obs)
	defer Unsubscribe(obs)

	a := NewShared(&testValue{name: "a"})
	block := obs.events[0].Block
	w := a.Downgrade()

	a.Release()
	if obs.count(EventValueDestroyed, block) != 1 {
		t.Fatal("Value should be destroyed when the last owner releases")
	}
	if obs.count(EventBlockFreed, block) != 0 {
		t.Fatal("Block freed while an observer remains")
	}

	w.Release()
	if obs.count(EventBlockFreed, block) != 1 {
		t.Fatal("Block should be freed when the last observer releases")
	}
}

func TestEvents_WeakReleasedFirst(t *testing.T) {
	obs := &testObserver{}
	Subscribe(obs)
	defer Unsubscribe(obs)

	a := NewShared(&testValue{name: "a"})
	block := obs.events[0].Block
	w := a.Downgrade()

	// Opposite release order: the joint check fires from the strong side.
	w.Release()
	if obs.count(EventBlockFreed, block) != 0 {
		t.Fatal("Block freed while an owner remains")
	}

	a.Release()
	if obs.count(EventValueDestroyed, block) != 1 {
		t.Fatal("Expected exactly one value_destroyed event")
	}
	if obs.count(EventBlockFreed, block) != 1 {
		t.Fatal("Expected exactly one block_freed event")
	}
}

func TestEvents_Unsubscribe(t *testing.T) {
	obs := &testObserver{}
	Subscribe(obs)

	a := NewShared(&testValue{name: "a"})
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}

	Unsubscribe(obs)
	a.Release()
	if len(obs.events) != 1 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestEvents_ResetEmitsFreshBlock(t *testing.T) {
	obs := &testObserver{}
	Subscribe(obs)
	defer Unsubscribe(obs)

	s := NewShared(&testValue{name: "a"})
	first := obs.events[0].Block

	s.Reset(&testValue{name: "b"})
	if obs.count(EventValueDestroyed, first) != 1 || obs.count(EventBlockFreed, first) != 1 {
		t.Fatal("Reset should fully release the previous block")
	}

	var second BlockID
	for _, e := range obs.events {
		if e.Kind == EventBlockAllocated && e.Block != first {
			second = e.Block
		}
	}
	if second == 0 {
		t.Fatal("Reset should allocate a fresh block")
	}
	if second == first {
		t.Fatal("Block IDs must not be reused")
	}

	s.Release()
	if obs.count(EventBlockFreed, second) != 1 {
		t.Fatal("Expected the fresh block to be freed")
	}
}
