package hub

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the quiet period for search-as-you-type refreshes.
const DefaultDebounceDelay = 300 * time.Millisecond

// Debouncer coalesces rapid successive calls into a single execution after a
// quiet period. Only the last submitted function runs; intermediate
// invocations are discarded.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a trailing-edge debouncer. A non-positive delay falls
// back to the default.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Do schedules fn to run after the quiet period, replacing any previously
// scheduled function that has not fired yet.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending execution. Used on teardown so a dead session
// never fires a stale refresh.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
