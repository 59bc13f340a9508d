package track

import (
	"go.uber.org/zap"

	"github.com/wippyai/refcount"
)

// LogObserver forwards lifecycle events to a zap logger as structured
// debug entries.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an observer logging through l. A nil l falls back
// to the refcount package logger.
func NewLogObserver(l *zap.Logger) *LogObserver {
	if l == nil {
		l = refcount.Logger()
	}
	return &LogObserver{logger: l}
}

// OnLifecycleEvent implements refcount.Observer.
func (o *LogObserver) OnLifecycleEvent(e refcount.Event) {
	o.logger.Debug("lifecycle event",
		zap.Stringer("kind", e.Kind),
		zap.Uint64("block", uint64(e.Block)),
		zap.Uint("strong", e.Strong),
		zap.Uint("weak", e.Weak),
	)
}
