package browser

import (
	"sync"
	"time"
)

// Memory is an in-process Env backed by real timers and in-memory state.
// It stands in for the document when the coordinator runs headless.
type Memory struct {
	mu       sync.RWMutex
	fragment string
	history  []string
	storage  map[string]string
	flags    map[string]bool
	navs     []string
}

// NewMemory creates an empty in-memory environment
func NewMemory() *Memory {
	return &Memory{
		storage: make(map[string]string),
		flags:   make(map[string]bool),
	}
}

func (m *Memory) Now() time.Time {
	return time.Now()
}

type realTimer struct {
	t *time.Timer
}

func (r realTimer) Stop() bool {
	return r.t.Stop()
}

func (m *Memory) SetTimer(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

func (m *Memory) NavigateTo(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navs = append(m.navs, url)
}

func (m *Memory) ReadFragment() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fragment
}

func (m *Memory) WriteFragment(fragment string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fragment = fragment
}

func (m *Memory) PushHistory(fragment string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fragment = fragment
	m.history = append(m.history, fragment)
}

func (m *Memory) SessionGet(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.storage[key]
	return value, ok
}

func (m *Memory) SessionSet(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storage[key] = value
}

func (m *Memory) SessionRemove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.storage, key)
}

func (m *Memory) SetDocumentFlag(name string, on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[name] = on
}

// HistoryLen returns the number of pushed history entries
func (m *Memory) HistoryLen() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.history)
}

// Navigations returns every URL handed to NavigateTo, oldest first
func (m *Memory) Navigations() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.navs))
	copy(out, m.navs)
	return out
}

// DocumentFlag reports the current value of a document flag
func (m *Memory) DocumentFlag(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[name]
}
