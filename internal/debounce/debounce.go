// Package debounce implements the save-on-settle pattern: per logical
// target, a single pending timer is cancelled and rescheduled on every
// trigger, so the callback runs once after input goes quiet.
package debounce

import (
	"sync"
	"time"

	"github.com/slshults/gpra-web-sub001/internal/browser"
)

// Debouncer holds one pending timer per key
type Debouncer struct {
	env   browser.Env
	delay time.Duration

	mu      sync.Mutex
	pending map[string]browser.Timer
	stopped bool
}

// New creates a debouncer firing delay after the last trigger for a key
func New(env browser.Env, delay time.Duration) *Debouncer {
	return &Debouncer{
		env:     env,
		delay:   delay,
		pending: make(map[string]browser.Timer),
	}
}

// Trigger schedules fn for key, replacing any pending callback for the
// same key. Only the closure from the latest trigger runs.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if timer, ok := d.pending[key]; ok {
		timer.Stop()
	}
	d.pending[key] = d.env.SetTimer(d.delay, func() {
		d.mu.Lock()
		delete(d.pending, key)
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			fn()
		}
	})
}

// Cancel drops the pending callback for key, if any
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if timer, ok := d.pending[key]; ok {
		timer.Stop()
		delete(d.pending, key)
	}
}

// Stop cancels every pending callback. The debouncer is unusable afterwards;
// call it when the owning component is torn down.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for key, timer := range d.pending {
		timer.Stop()
		delete(d.pending, key)
	}
}
