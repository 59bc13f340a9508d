package track

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/refcount"
)

type resource struct {
	dropped bool
}

func (r *resource) Drop() {
	r.dropped = true
}

func TestCounter_Lifecycle(t *testing.T) {
	c := NewCounter()
	refcount.Subscribe(c)
	defer refcount.Unsubscribe(c)

	a := refcount.NewShared(&resource{})
	w := a.Downgrade()
	if c.LiveBlocks() != 1 || c.LiveValues() != 1 {
		t.Fatalf("Expected 1/1 live, got %d/%d", c.LiveBlocks(), c.LiveValues())
	}

	a.Release()
	if c.LiveValues() != 0 {
		t.Fatalf("Expected 0 live values, got %d", c.LiveValues())
	}
	if c.LiveBlocks() != 1 {
		t.Fatal("Block should remain live while the observer holds it")
	}

	w.Release()
	if c.LiveBlocks() != 0 {
		t.Fatalf("Expected 0 live blocks, got %d", c.LiveBlocks())
	}
}

func TestCounter_Report(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	c := NewCounter()
	refcount.Subscribe(c)
	defer refcount.Unsubscribe(c)

	s := refcount.NewShared(&resource{})
	c.Report(logger)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatal("Outstanding references should log a warning")
	}
	if entries[0].ContextMap()["live_blocks"] != int64(1) {
		t.Fatalf("Expected live_blocks=1, got %v", entries[0].ContextMap()["live_blocks"])
	}

	s.Release()
	c.Report(logger)
	entries = logs.All()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[1].Level != zapcore.InfoLevel {
		t.Fatal("A clean counter should log at info")
	}
}

func TestRecorder_Trace(t *testing.T) {
	r := NewRecorder()
	refcount.Subscribe(r)
	defer refcount.Unsubscribe(r)

	a := refcount.NewShared(&resource{})
	a.Release()

	events := r.Events()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	want := []refcount.EventKind{
		refcount.EventBlockAllocated,
		refcount.EventValueDestroyed,
		refcount.EventBlockFreed,
	}
	for i, k := range want {
		if events[i].Kind != k {
			t.Fatalf("Event %d: expected %s, got %s", i, k, events[i].Kind)
		}
	}

	if tail := r.Tail(2); len(tail) != 2 || tail[1].Kind != refcount.EventBlockFreed {
		t.Fatal("Tail should return the trailing events")
	}
	if tail := r.Tail(10); len(tail) != 3 {
		t.Fatal("Tail larger than the trace should return everything")
	}

	r.Reset()
	if len(r.Events()) != 0 {
		t.Fatal("Reset should discard the trace")
	}
}

func TestLogObserver_Entries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	o := NewLogObserver(zap.New(core))
	refcount.Subscribe(o)
	defer refcount.Unsubscribe(o)

	a := refcount.NewShared(&resource{})
	a.Release()

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 log entries, got %d", len(entries))
	}
	if entries[0].ContextMap()["kind"] != "block_allocated" {
		t.Fatalf("Expected block_allocated, got %v", entries[0].ContextMap()["kind"])
	}
	if entries[2].ContextMap()["kind"] != "block_freed" {
		t.Fatalf("Expected block_freed, got %v", entries[2].ContextMap()["kind"])
	}
}

func TestLogObserver_NilLoggerFallback(t *testing.T) {
	refcount.SetLogger(zaptest.NewLogger(t))
	defer refcount.SetLogger(zap.NewNop())

	o := NewLogObserver(nil)
	refcount.Subscribe(o)
	defer refcount.Unsubscribe(o)

	s := refcount.NewShared(&resource{})
	s.Release()
}
