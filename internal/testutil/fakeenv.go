package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/slshults/gpra-web-sub001/internal/browser"
)

// FakeEnv is a deterministic browser.Env for tests: manual clock, manually
// fired timers, recorded navigations and in-memory storage.
type FakeEnv struct {
	mu       sync.Mutex
	now      time.Time
	seq      int
	timers   []*fakeTimer
	fragment string
	history  []string
	storage  map[string]string
	flags    map[string]bool
	navs     []string
}

// NewFakeEnv creates a fake environment with the clock at a fixed instant
func NewFakeEnv() *FakeEnv {
	return &FakeEnv{
		now:     time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC),
		storage: make(map[string]string),
		flags:   make(map[string]bool),
	}
}

type fakeTimer struct {
	env      *FakeEnv
	deadline time.Time
	seq      int
	fn       func()
	stopped  bool
	fired    bool
}

func (t *fakeTimer) Stop() bool {
	t.env.mu.Lock()
	defer t.env.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (e *FakeEnv) Now() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

func (e *FakeEnv) SetTimer(d time.Duration, fn func()) browser.Timer {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	t := &fakeTimer{env: e, deadline: e.now.Add(d), seq: e.seq, fn: fn}
	e.timers = append(e.timers, t)
	return t
}

// Advance moves the clock forward and fires due timers in deadline order
func (e *FakeEnv) Advance(d time.Duration) {
	e.mu.Lock()
	e.now = e.now.Add(d)
	now := e.now

	var due []*fakeTimer
	for _, t := range e.timers {
		if !t.stopped && !t.fired && !t.deadline.After(now) {
			t.fired = true
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	e.mu.Unlock()

	// Fire outside the lock: callbacks may schedule new timers
	for _, t := range due {
		t.fn()
	}
}

// PendingTimers counts timers that are scheduled but not yet fired or stopped
func (e *FakeEnv) PendingTimers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, t := range e.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (e *FakeEnv) NavigateTo(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.navs = append(e.navs, url)
}

func (e *FakeEnv) ReadFragment() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fragment
}

func (e *FakeEnv) WriteFragment(fragment string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fragment = fragment
}

func (e *FakeEnv) PushHistory(fragment string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fragment = fragment
	e.history = append(e.history, fragment)
}

func (e *FakeEnv) SessionGet(key string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.storage[key]
	return v, ok
}

func (e *FakeEnv) SessionSet(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.storage[key] = value
}

func (e *FakeEnv) SessionRemove(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.storage, key)
}

func (e *FakeEnv) SetDocumentFlag(name string, on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flags[name] = on
}

// SetFragment seeds the fragment without touching history, as if the page
// loaded with that fragment in the URL
func (e *FakeEnv) SetFragment(fragment string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fragment = fragment
}

// HistoryLen returns how many history entries were pushed
func (e *FakeEnv) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history)
}

// Navigations returns every URL handed to NavigateTo, oldest first
func (e *FakeEnv) Navigations() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.navs))
	copy(out, e.navs)
	return out
}

// DocumentFlag reports the current value of a document flag
func (e *FakeEnv) DocumentFlag(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flags[name]
}
