// Package session owns the authentication/entitlement/lifecycle snapshot and
// its refresh cadence. Every other component reads session state from here.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/slshults/gpra-web-sub001/internal/analytics"
	"github.com/slshults/gpra-web-sub001/internal/backend"
	"github.com/slshults/gpra-web-sub001/internal/browser"
	"github.com/slshults/gpra-web-sub001/internal/domain"
)

// Per-session dismissal flags cleared on logout
const (
	lapsedModalDismissedKey = "gpra_lapsed_modal_dismissed"
	noticeDismissedKey      = "gpra_deletion_notice_dismissed"
)

// Store is the single source of truth for session state. The snapshot is
// replaced wholesale on refresh, never patched, so readers always see a
// consistent value.
type Store struct {
	api       backend.StatusAPI
	env       browser.Env
	sink      analytics.Sink
	identity  *analytics.Identity
	logger    *zap.Logger
	loginURL  string
	logoutURL string
	grace     time.Duration

	mu         sync.RWMutex
	snapshot   domain.SessionSnapshot
	refreshErr error
	inFlight   bool

	cancelPolling context.CancelFunc
}

// NewStore creates a session store. The snapshot starts in the conservative
// (logged-out) state until the first refresh completes.
func NewStore(
	api backend.StatusAPI,
	env browser.Env,
	sink analytics.Sink,
	identity *analytics.Identity,
	loginURL, logoutURL string,
	flushGrace time.Duration,
	logger *zap.Logger,
) *Store {
	return &Store{
		api:       api,
		env:       env,
		sink:      sink,
		identity:  identity,
		logger:    logger,
		loginURL:  loginURL,
		logoutURL: logoutURL,
		grace:     flushGrace,
		snapshot:  domain.ConservativeSnapshot(time.Time{}),
	}
}

// Snapshot returns the latest known session state
func (s *Store) Snapshot() domain.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// RefreshErr returns the error from the most recent refresh, or nil.
// Consumers use it only to offer a retry affordance; gating decisions treat
// an errored refresh the same as a logged-out session.
func (s *Store) RefreshErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshErr
}

// Refresh issues one status request. A call while another refresh is in
// flight is a no-op: skipping rather than queueing keeps a late response
// from clobbering a newer snapshot.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil
	}
	s.inFlight = true
	s.mu.Unlock()

	resp, err := s.api.AuthStatus(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		// Fail closed: whatever the previous snapshot said, an
		// undeterminable session carries no entitlements.
		s.snapshot = domain.ConservativeSnapshot(s.env.Now())
		s.refreshErr = err
		s.logger.Warn("session refresh failed", zap.Error(err))
		return err
	}

	s.snapshot = resp.ToSnapshot(s.env.Now())
	s.refreshErr = nil
	return nil
}

// StartPolling refreshes immediately, then on every interval tick until the
// context is canceled or Dispose is called. Ticks that land while a refresh
// is still in flight are skipped.
func (s *Store) StartPolling(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancelPolling != nil {
		s.cancelPolling()
	}
	s.cancelPolling = cancel
	s.mu.Unlock()

	go func() {
		_ = s.Refresh(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("session polling stopped")
				return
			case <-ticker.C:
				_ = s.Refresh(ctx)
			}
		}
	}()
}

// Dispose stops the polling loop
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelPolling != nil {
		s.cancelPolling()
		s.cancelPolling = nil
	}
}

// Login navigates to the identity-provider entry point. No local state
// changes; the next page load refreshes from scratch.
func (s *Store) Login() {
	s.env.NavigateTo(s.loginURL)
}

// Logout clears per-session flags and the analytics identity, gives the
// sink a bounded grace period to flush, then navigates to sign-out. The
// ordering matters: navigating in the same tick as the identity reset can
// drop the flush.
func (s *Store) Logout() {
	s.env.SessionRemove(lapsedModalDismissedKey)
	s.env.SessionRemove(noticeDismissedKey)
	s.identity.Rotate()
	s.sink.Reset()
	s.sink.Flush(s.grace)
	s.env.NavigateTo(s.logoutURL)
}

// ApplyDeletionSchedule records a freshly scheduled deletion on the current
// snapshot so dependents pick it up without waiting for the next poll.
func (s *Store) ApplyDeletionSchedule(schedule *domain.DeletionSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot
	snap.DeletionSchedule = schedule
	s.snapshot = snap
}

// Invalidate resets the snapshot to the conservative state with a zero
// refresh time, forcing dependents to treat the session as unknown.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = domain.ConservativeSnapshot(time.Time{})
	s.refreshErr = nil
}

// DismissLapsedModal records that the lapsed-account modal was dismissed
// this browser session
func (s *Store) DismissLapsedModal() {
	s.env.SessionSet(lapsedModalDismissedKey, "1")
}

// LapsedModalDismissed reports whether the lapsed-account modal was already
// dismissed this browser session
func (s *Store) LapsedModalDismissed() bool {
	_, ok := s.env.SessionGet(lapsedModalDismissedKey)
	return ok
}
