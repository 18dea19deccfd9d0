// Package browser abstracts the browser boundary: clock, timers, URL
// fragment, history, session-scoped storage and navigation. Controllers
// receive an Env instead of touching globals, so tests can drive them
// deterministically.
package browser

import "time"

// Timer is a pending callback that can be stopped before it fires
type Timer interface {
	Stop() bool
}

// Env is the environment capability injected into every controller
type Env interface {
	Now() time.Time
	SetTimer(d time.Duration, fn func()) Timer

	// NavigateTo leaves the current document for url. Anything scheduled
	// after a navigation may never run.
	NavigateTo(url string)

	// ReadFragment returns the URL fragment without the leading "#".
	ReadFragment() string
	// WriteFragment replaces the fragment in place without adding a
	// history entry.
	WriteFragment(fragment string)
	// PushHistory adds a new history entry for fragment.
	PushHistory(fragment string)

	SessionGet(key string) (string, bool)
	SessionSet(key, value string)
	SessionRemove(key string)

	// SetDocumentFlag toggles a document-level boolean flag by name
	SetDocumentFlag(name string, on bool)
}
