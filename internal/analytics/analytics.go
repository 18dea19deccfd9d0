// Package analytics defines the event-sink capability the coordinator emits
// semantic events into. The core never assumes a concrete sink is present.
package analytics

import "time"

// Sink receives semantic events from the coordinator
type Sink interface {
	// Emit records a named event with attributes. Implementations must not
	// block; delivery is best-effort.
	Emit(event string, attrs map[string]any)

	// Reset drops the identity the sink is keyed by (logout path)
	Reset()

	// Flush gives the sink up to grace to deliver buffered events.
	// Returns when delivery finished or the grace elapsed.
	Flush(grace time.Duration)
}

// NopSink discards everything. Used when no analytics layer is wired.
type NopSink struct{}

func (NopSink) Emit(string, map[string]any) {}
func (NopSink) Reset()                      {}
func (NopSink) Flush(time.Duration)         {}
