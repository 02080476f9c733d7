// Package progress reports how many files of a scan have completed.
package progress

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	bubbles "github.com/charmbracelet/bubbles/progress"
)

// Reporter receives scan progress. Advance is called from several workers at once.
type Reporter interface {
	Start(total int)
	Advance()
	Finish()
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(int) {}
func (Nop) Advance()  {}
func (Nop) Finish()   {}

// Counter records progress in memory.
type Counter struct {
	total    atomic.Int64
	done     atomic.Int64
	finished atomic.Bool
}

func (c *Counter) Start(total int) { c.total.Store(int64(total)) }
func (c *Counter) Advance()        { c.done.Add(1) }
func (c *Counter) Finish()         { c.finished.Store(true) }

// Done returns the number of completed files.
func (c *Counter) Done() int { return int(c.done.Load()) }

// Total returns the total passed to Start.
func (c *Counter) Total() int { return int(c.total.Load()) }

// Finished reports whether Finish was called.
func (c *Counter) Finished() bool { return c.finished.Load() }

// Bar draws a single-line progress bar, redrawn in place with a carriage return.
type Bar struct {
	w     io.Writer
	model bubbles.Model

	mu    sync.Mutex
	total int
	done  int
}

// NewBar creates a Bar writing to w, typically stderr.
func NewBar(w io.Writer) *Bar {
	return &Bar{
		w: w,
		model: bubbles.New(
			bubbles.WithDefaultGradient(),
			bubbles.WithWidth(40),
			bubbles.WithoutPercentage(),
		),
	}
}

func (b *Bar) Start(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total = total
	b.done = 0
	b.draw()
}

func (b *Bar) Advance() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done++
	b.draw()
}

func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draw()
	fmt.Fprintln(b.w)
}

// draw must be called with mu held.
func (b *Bar) draw() {
	percent := 1.0
	if b.total > 0 {
		percent = float64(b.done) / float64(b.total)
	}
	fmt.Fprintf(b.w, "\r%s %d/%d files", b.model.ViewAs(percent), b.done, b.total)
}

var (
	_ Reporter = Nop{}
	_ Reporter = (*Counter)(nil)
	_ Reporter = (*Bar)(nil)
)
