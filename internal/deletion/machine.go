// Package deletion implements the three-path account-deletion flow: keep
// the account, schedule deletion at renewal, or delete immediately. Mutating
// the backend is gated behind a typed confirmation phrase and an email.
package deletion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/slshults/gpra-web-sub001/internal/analytics"
	"github.com/slshults/gpra-web-sub001/internal/backend"
	"github.com/slshults/gpra-web-sub001/internal/browser"
	"github.com/slshults/gpra-web-sub001/internal/domain"
)

// SessionStore is the slice of the session store the deletion flow needs
type SessionStore interface {
	Snapshot() domain.SessionSnapshot
	ApplyDeletionSchedule(schedule *domain.DeletionSchedule)
	Invalidate()
}

// Machine drives the deletion state machine. All state is owned here;
// the durable record lives on the session snapshot.
type Machine struct {
	store     SessionStore
	api       backend.DeletionAPI
	env       browser.Env
	sink      analytics.Sink
	logger    *zap.Logger
	signInURL string
	exportURL string
	grace     time.Duration

	mu              sync.Mutex
	req             domain.DeletionRequest
	estimate        *domain.RefundEstimate
	estimateFetched bool
	submitErr       string
	redirectTimer   browser.Timer
}

// NewMachine creates a deletion machine in the initial state
func NewMachine(
	store SessionStore,
	api backend.DeletionAPI,
	env browser.Env,
	sink analytics.Sink,
	signInURL, exportURL string,
	grace time.Duration,
	logger *zap.Logger,
) *Machine {
	return &Machine{
		store:     store,
		api:       api,
		env:       env,
		sink:      sink,
		logger:    logger,
		signInURL: signInURL,
		exportURL: exportURL,
		grace:     grace,
		req:       domain.DeletionRequest{Path: domain.PathInitial, Submission: domain.SubmitIdle},
	}
}

// Request returns a copy of the in-flight deletion request
func (m *Machine) Request() domain.DeletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.req
}

// SubmitError returns the inline error from the last failed submission
func (m *Machine) SubmitError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitErr
}

// SelectPath moves between the initial state and the confirmation
// sub-states. Entering a confirmation sub-state does not call the backend,
// except the one-time lazy refund-estimate fetch for paid-tier users.
// The scheduled path is refused for free-tier accounts.
func (m *Machine) SelectPath(ctx context.Context, path domain.DeletionPath) error {
	tier := m.store.Snapshot().Tier

	if path == domain.PathScheduled && tier != domain.TierPaid {
		return errors.New("scheduled deletion requires a paid subscription")
	}

	m.mu.Lock()
	if path != m.req.Path {
		m.req = domain.DeletionRequest{Path: path, Submission: domain.SubmitIdle}
		m.submitErr = ""
	}
	needsEstimate := path != domain.PathInitial && tier == domain.TierPaid && !m.estimateFetched
	if needsEstimate {
		m.estimateFetched = true
	}
	m.mu.Unlock()

	if needsEstimate {
		m.fetchEstimate(ctx)
	}

	m.mu.Lock()
	m.req.RefundEstimate = m.estimate
	m.mu.Unlock()
	return nil
}

func (m *Machine) fetchEstimate(ctx context.Context) {
	resp, err := m.api.RefundEstimate(ctx)
	if err != nil {
		// Non-fatal: the flow proceeds without a refund preview
		m.logger.Warn("refund estimate fetch failed", zap.Error(err))
		return
	}
	est, err := resp.ToEstimate()
	if err != nil {
		m.logger.Warn("refund estimate unparseable", zap.Error(err))
		return
	}

	m.mu.Lock()
	m.estimate = est
	m.mu.Unlock()
}

// SetTypedPhrase updates the confirmation phrase input. The guard is
// re-evaluated from the raw input on every read; nothing is cached.
func (m *Machine) SetTypedPhrase(phrase string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.req.TypedPhrase = phrase
}

// SetEmail updates the email input
func (m *Machine) SetEmail(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.req.Email = email
}

// CanSubmit reports whether the current input satisfies the guard
func (m *Machine) CanSubmit() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.req.CanSubmit()
}

// PhraseMismatch reports whether the mismatch hint should show
func (m *Machine) PhraseMismatch() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.req.PhraseMismatch()
}

// Submit sends the deletion request for the active path. On the scheduled
// path success records the schedule on the session and resets the machine.
// On the immediate path success flushes analytics and redirects to sign-in
// after a short grace delay. Failure keeps the sub-state and input so the
// user can retry.
func (m *Machine) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.req.Submission == domain.SubmitInFlight {
		m.mu.Unlock()
		return errors.New("submission already in flight")
	}
	if !m.req.CanSubmit() {
		m.mu.Unlock()
		return errors.New("confirmation incomplete")
	}
	path := m.req.Path
	submission := backend.DeletionSubmission{
		ConfirmationPhrase: m.req.TypedPhrase,
		Email:              m.req.Email,
	}
	m.req.Submission = domain.SubmitInFlight
	m.submitErr = ""
	m.mu.Unlock()

	var err error
	switch path {
	case domain.PathScheduled:
		err = m.submitScheduled(ctx, submission)
	case domain.PathImmediate:
		err = m.submitImmediate(ctx, submission)
	}

	if err != nil {
		m.mu.Lock()
		m.req.Submission = domain.SubmitFailed
		m.submitErr = submitMessage(err)
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Machine) submitScheduled(ctx context.Context, submission backend.DeletionSubmission) error {
	resp, err := m.api.ScheduleDeletion(ctx, submission)
	if err != nil {
		return err
	}
	schedule, err := resp.ToSchedule()
	if err != nil {
		return fmt.Errorf("schedule response: %w", err)
	}

	m.store.ApplyDeletionSchedule(schedule)
	m.sink.Emit("account_deletion_scheduled", map[string]any{
		"deletion_date": resp.DeletionDate,
		"refund_amount": resp.RefundAmount,
	})
	m.logger.Info("account deletion scheduled",
		zap.String("deletion_date", resp.DeletionDate),
		zap.Float64("refund_amount", resp.RefundAmount),
	)

	m.mu.Lock()
	m.req = domain.DeletionRequest{Path: domain.PathInitial, Submission: domain.SubmitIdle}
	m.mu.Unlock()
	return nil
}

func (m *Machine) submitImmediate(ctx context.Context, submission backend.DeletionSubmission) error {
	if err := m.api.DeleteImmediately(ctx, m.store.Snapshot().Tier, submission); err != nil {
		return err
	}

	m.sink.Emit("account_deleted_immediately", nil)
	m.sink.Flush(m.grace)
	m.logger.Info("account deleted, redirecting to sign-in")

	m.mu.Lock()
	m.req.Submission = domain.SubmitSucceeded
	// The session is gone; after the grace delay nothing local matters
	m.redirectTimer = m.env.SetTimer(m.grace, func() {
		m.env.NavigateTo(m.signInURL)
	})
	m.mu.Unlock()
	return nil
}

// Cancel abandons the flow and returns to the initial state. The cached
// refund estimate survives for the rest of the session.
func (m *Machine) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.req = domain.DeletionRequest{Path: domain.PathInitial, Submission: domain.SubmitIdle}
	m.submitErr = ""
}

// DownloadData opens the practice-data export. It is independent of the
// machine state.
func (m *Machine) DownloadData() {
	m.sink.Emit("practice_data_export", nil)
	m.env.NavigateTo(m.exportURL)
}

// Dispose cancels the pending sign-in redirect timer
func (m *Machine) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redirectTimer != nil {
		m.redirectTimer.Stop()
		m.redirectTimer = nil
	}
}

// submitMessage extracts the user-facing message: backend rejections are
// surfaced verbatim, transport errors as-is
func submitMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
