// Package track provides ready-made observers for refcount lifecycle
// events.
//
// Observers plug into refcount.Subscribe and run synchronously on the
// goroutine performing the handle operation, under the same
// single-threaded contract as the handles themselves.
//
//	counter := track.NewCounter()
//	refcount.Subscribe(counter)
//	defer refcount.Unsubscribe(counter)
//
//	// ... handle operations ...
//
//	counter.Report(logger) // warns if blocks or values are still live
//
// Counter is the package's leak detector: every control block that was
// allocated but never freed, and every value never destroyed, shows up in
// its tallies. Recorder captures an ordered event trace, and LogObserver
// forwards each event to a zap logger.
package track
