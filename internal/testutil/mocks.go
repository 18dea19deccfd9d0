package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/slshults/gpra-web-sub001/internal/backend"
	"github.com/slshults/gpra-web-sub001/internal/domain"
)

// MockStatusAPI is a mock for backend.StatusAPI
type MockStatusAPI struct {
	mock.Mock
}

func (m *MockStatusAPI) AuthStatus(ctx context.Context) (*backend.AuthStatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.AuthStatusResponse), args.Error(1)
}

// MockDeletionAPI is a mock for backend.DeletionAPI
type MockDeletionAPI struct {
	mock.Mock
}

func (m *MockDeletionAPI) RefundEstimate(ctx context.Context) (*backend.RefundEstimateResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.RefundEstimateResponse), args.Error(1)
}

func (m *MockDeletionAPI) ScheduleDeletion(ctx context.Context, req backend.DeletionSubmission) (*backend.ScheduleDeletionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.ScheduleDeletionResponse), args.Error(1)
}

func (m *MockDeletionAPI) DeleteImmediately(ctx context.Context, tier domain.Tier, req backend.DeletionSubmission) error {
	args := m.Called(ctx, tier, req)
	return args.Error(0)
}

func (m *MockDeletionAPI) CancelScheduledDeletion(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// RecordedEvent is one Emit call seen by RecordingSink
type RecordedEvent struct {
	Name  string
	Attrs map[string]any
}

// RecordingSink is an analytics.Sink that remembers everything for assertions
type RecordingSink struct {
	mu      sync.Mutex
	events  []RecordedEvent
	resets  int
	flushes int
}

func (s *RecordingSink) Emit(event string, attrs map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, RecordedEvent{Name: event, Attrs: attrs})
}

func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets++
}

func (s *RecordingSink) Flush(time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
}

// Events returns every recorded event, oldest first
func (s *RecordingSink) Events() []RecordedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedEvent, len(s.events))
	copy(out, s.events)
	return out
}

// EventNames returns just the event names, oldest first
func (s *RecordingSink) EventNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.events))
	for i, e := range s.events {
		names[i] = e.Name
	}
	return names
}

// Resets returns how many times Reset was called
func (s *RecordingSink) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets
}

// Flushes returns how many times Flush was called
func (s *RecordingSink) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// RecordingWidget records support-widget visibility calls
type RecordingWidget struct {
	mu    sync.Mutex
	calls []bool
}

func (w *RecordingWidget) SetVisible(visible bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, visible)
}

// Calls returns every SetVisible argument, oldest first
func (w *RecordingWidget) Calls() []bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]bool, len(w.calls))
	copy(out, w.calls)
	return out
}
