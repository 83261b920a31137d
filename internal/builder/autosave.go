package builder

import (
	"sync"
	"time"
)

// DefaultAutosaveDelay matches the builder's 2-second quiet period.
const DefaultAutosaveDelay = 2 * time.Second

// Autosaver debounces edits: each Edit call resets the timer, and only
// after the delay elapses with no further edits does the save function
// fire, with the most recent value. Last write wins; intermediate values
// are never persisted.
type Autosaver struct {
	delay time.Duration
	save  func(value any)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending any
	dirty   bool
	closed  bool
}

func NewAutosaver(delay time.Duration, save func(value any)) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{delay: delay, save: save}
}

// Edit records a new value and restarts the quiet-period timer.
func (a *Autosaver) Edit(value any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.pending = value
	a.dirty = true
	a.gen++

	if a.timer != nil {
		a.timer.Stop()
	}
	// Stop cannot cancel a timer whose callback is already blocked on
	// the mutex; the generation check makes such a callback a no-op.
	gen := a.gen
	a.timer = time.AfterFunc(a.delay, func() { a.fire(gen) })
}

func (a *Autosaver) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || !a.dirty || a.closed {
		a.mu.Unlock()
		return
	}
	value := a.pending
	a.dirty = false
	a.mu.Unlock()

	a.save(value)
}

// Flush persists any pending edit immediately and cancels the timer.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
	}
	if !a.dirty || a.closed {
		a.mu.Unlock()
		return
	}
	value := a.pending
	a.dirty = false
	a.mu.Unlock()

	a.save(value)
}

// Stop discards pending work and rejects further edits.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.dirty = false
	if a.timer != nil {
		a.timer.Stop()
	}
}

// Close flushes pending work and rejects further edits.
func (a *Autosaver) Close() {
	a.Flush()
	a.mu.Lock()
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.mu.Unlock()
}
