package track

import (
	"go.uber.org/zap"

	"github.com/wippyai/refcount"
)

// Counter tallies live control blocks and live values from lifecycle
// events. When every handle has been released both tallies are zero;
// anything else is a leaked reference.
type Counter struct {
	liveBlocks int
	liveValues int
}

// NewCounter creates a counter. Subscribe it before the first handle is
// created or the tallies will start mid-stream.
func NewCounter() *Counter {
	return &Counter{}
}

// OnLifecycleEvent implements refcount.Observer.
func (c *Counter) OnLifecycleEvent(e refcount.Event) {
	switch e.Kind {
	case refcount.EventBlockAllocated:
		c.liveBlocks++
		c.liveValues++
	case refcount.EventValueDestroyed:
		c.liveValues--
	case refcount.EventBlockFreed:
		c.liveBlocks--
	}
}

// LiveBlocks returns the number of control blocks not yet freed.
func (c *Counter) LiveBlocks() int {
	return c.liveBlocks
}

// LiveValues returns the number of owned values not yet destroyed.
func (c *Counter) LiveValues() int {
	return c.liveValues
}

// Report logs the tallies: a warning when references are outstanding,
// an info entry otherwise.
func (c *Counter) Report(logger *zap.Logger) {
	if c.liveBlocks == 0 && c.liveValues == 0 {
		logger.Info("no outstanding references")
		return
	}
	logger.Warn("outstanding references",
		zap.Int("live_blocks", c.liveBlocks),
		zap.Int("live_values", c.liveValues),
	)
}

// Recorder captures lifecycle events in order.
type Recorder struct {
	events []refcount.Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OnLifecycleEvent implements refcount.Observer.
func (r *Recorder) OnLifecycleEvent(e refcount.Event) {
	r.events = append(r.events, e)
}

// Events returns the captured trace in emission order.
func (r *Recorder) Events() []refcount.Event {
	return r.events
}

// Tail returns the last n captured events (fewer if the trace is shorter).
func (r *Recorder) Tail(n int) []refcount.Event {
	if len(r.events) <= n {
		return r.events
	}
	return r.events[len(r.events)-n:]
}

// Reset discards the captured trace.
func (r *Recorder) Reset() {
	r.events = nil
}
