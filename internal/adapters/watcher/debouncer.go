package watcher

import (
	"slices"
	"time"
	"unique"
)

// Debouncer coalesces rapid file system events into one batch. It is owned by a
// single event loop and is not safe for concurrent use.
type Debouncer struct {
	pending map[unique.Handle[string]]struct{}
	timer   *time.Timer
	window  time.Duration
}

// NewDebouncer creates a new debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		pending: make(map[unique.Handle[string]]struct{}),
		window:  window,
	}
}

// Add records path and restarts the quiet window.
func (d *Debouncer) Add(path string) {
	d.pending[unique.Make(path)] = struct{}{}

	if d.timer == nil {
		d.timer = time.NewTimer(d.window)
		return
	}
	d.timer.Reset(d.window)
}

// C fires once the window has elapsed without new paths. It is nil while nothing is pending.
func (d *Debouncer) C() <-chan time.Time {
	if d.timer == nil {
		return nil
	}
	return d.timer.C
}

// Pending reports the number of distinct paths waiting to be drained.
func (d *Debouncer) Pending() int {
	return len(d.pending)
}

// Drain returns the pending paths, sorted, and resets the debouncer.
func (d *Debouncer) Drain() []string {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	paths := make([]string, 0, len(d.pending))
	for handle := range d.pending {
		paths = append(paths, handle.Value())
	}
	clear(d.pending)
	slices.Sort(paths)
	return paths
}
