package refcount

// BlockID identifies a control block in lifecycle events. IDs are assigned
// sequentially and never reused.
type BlockID uint64

// EventKind classifies lifecycle events.
type EventKind uint8

const (
	// EventBlockAllocated fires when a fresh control block is created for a
	// newly owned value.
	EventBlockAllocated EventKind = iota
	// EventValueDestroyed fires when the strong count reaches zero and the
	// owned value is destroyed. Emitted exactly once per block.
	EventValueDestroyed
	// EventBlockFreed fires when both counts reach zero and the block is
	// reclaimed. Emitted exactly once per block.
	EventBlockFreed
)

func (k EventKind) String() string {
	switch k {
	case EventBlockAllocated:
		return "block_allocated"
	case EventValueDestroyed:
		return "value_destroyed"
	case EventBlockFreed:
		return "block_freed"
	default:
		return "unknown"
	}
}

// Event describes a control block lifecycle transition. Strong and Weak
// are the counter values after the transition.
type Event struct {
	Kind   EventKind
	Block  BlockID
	Strong uint
	Weak   uint
}

// Observer receives lifecycle events. Notification is synchronous, on the
// goroutine performing the handle operation.
type Observer interface {
	OnLifecycleEvent(Event)
}

// observers is package-global; same single-threaded contract as the
// counters themselves.
var observers []Observer

// Subscribe registers an observer for lifecycle events.
func Subscribe(o Observer) {
	observers = append(observers, o)
}

// Unsubscribe removes a previously registered observer.
func Unsubscribe(o Observer) {
	for i, obs := range observers {
		if obs == o {
			observers = append(observers[:i], observers[i+1:]...)
			return
		}
	}
}

func notify(e Event) {
	debugf("%s block=%d strong=%d weak=%d", e.Kind, e.Block, e.Strong, e.Weak)
	for _, o := range observers {
		o.OnLifecycleEvent(e)
	}
}
