package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/refcount"
	"github.com/wippyai/refcount/track"
)

// buffer is the demo's owned value kind.
type buffer struct {
	name string
	data []byte
}

func (b *buffer) Drop() {
	b.data = nil
}

func main() {
	var (
		verbose     = flag.Bool("v", false, "Log lifecycle events")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run walks through the handle lifecycle, printing counts at each step.
func run(verbose bool) error {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer logger.Sync()
		refcount.SetLogger(logger)

		logObs := track.NewLogObserver(logger)
		refcount.Subscribe(logObs)
		defer refcount.Unsubscribe(logObs)
	}

	counter := track.NewCounter()
	refcount.Subscribe(counter)
	defer refcount.Unsubscribe(counter)

	fmt.Println("-- shared ownership --")
	a := refcount.NewShared(&buffer{name: "frame", data: make([]byte, 64)})
	fmt.Printf("new a        use=%d\n", a.UseCount())
	b := a.Clone()
	fmt.Printf("clone a -> b use=%d\n", b.UseCount())
	a.Release()
	fmt.Printf("release a    use=%d live_values=%d\n", b.UseCount(), counter.LiveValues())
	b.Release()
	fmt.Printf("release b    live_values=%d\n", counter.LiveValues())

	fmt.Println("\n-- weak observation --")
	s := refcount.NewShared(&buffer{name: "cache", data: make([]byte, 32)})
	w := s.Downgrade()
	fmt.Printf("downgrade    use=%d expired=%v\n", w.UseCount(), w.Expired())
	if c := w.Lock(); c.Get() != nil {
		fmt.Printf("lock ok      use=%d value=%s\n", c.UseCount(), c.Deref().name)
		c.Release()
	}
	s.Release()
	fmt.Printf("release s    expired=%v live_blocks=%d\n", w.Expired(), counter.LiveBlocks())
	if c := w.Lock(); c.Get() == nil {
		fmt.Println("lock fails   value is gone")
	}
	w.Release()
	fmt.Printf("release w    live_blocks=%d\n", counter.LiveBlocks())

	fmt.Println("\n-- reset --")
	r := refcount.NewShared(&buffer{name: "old", data: make([]byte, 8)})
	r.Reset(&buffer{name: "new", data: make([]byte, 8)})
	fmt.Printf("reset        value=%s use=%d\n", r.Deref().name, r.UseCount())
	r.Release()

	fmt.Println()
	counter.Report(refcount.Logger())
	if counter.LiveBlocks() != 0 || counter.LiveValues() != 0 {
		return fmt.Errorf("leaked references: %d blocks, %d values",
			counter.LiveBlocks(), counter.LiveValues())
	}
	fmt.Println("all references released")
	return nil
}
