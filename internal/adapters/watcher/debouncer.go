package watcher

import (
	"maps"
	"slices"
	"sync"
	"time"
	"unique"
)

// Debouncer coalesces bursts of change notifications into one callback.
// Editors typically write a file through several events (truncate, write,
// rename over), and only the settled state should be re-checked.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a new debouncer with the given quiet window and callback.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records a change to path and restarts the quiet window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(path)] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	paths := d.drain()
	if len(paths) > 0 && d.callback != nil {
		go d.callback(paths)
	}
}

// Flush runs the callback for pending paths now and waits for it to return.
// It does nothing when the window already expired.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil && !d.timer.Stop() {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	paths := d.drain()
	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

// drain empties the pending set and returns its paths sorted.
func (d *Debouncer) drain() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	paths := make([]string, 0, len(d.pending))
	for h := range maps.Keys(d.pending) {
		paths = append(paths, h.Value())
	}
	slices.Sort(paths)
	clear(d.pending)
	d.timer = nil
	return paths
}
