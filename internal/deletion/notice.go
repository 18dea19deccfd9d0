package deletion

import (
	"context"

	"go.uber.org/zap"

	"github.com/slshults/gpra-web-sub001/internal/backend"
	"github.com/slshults/gpra-web-sub001/internal/browser"
	"github.com/slshults/gpra-web-sub001/internal/domain"
)

const noticeDismissedKey = "gpra_deletion_notice_dismissed"

// NoticeController backs the banner shown for an already-scheduled
// deletion. Cancelling hits the backend; dismissing is session-local only.
type NoticeController struct {
	store     SessionStore
	api       backend.DeletionAPI
	env       browser.Env
	logger    *zap.Logger
	reloadURL string
}

// NewNoticeController creates the controller. reloadURL is where the page
// reloads after a successful cancellation so every component re-reads the
// fresh session.
func NewNoticeController(
	store SessionStore,
	api backend.DeletionAPI,
	env browser.Env,
	reloadURL string,
	logger *zap.Logger,
) *NoticeController {
	return &NoticeController{
		store:     store,
		api:       api,
		env:       env,
		logger:    logger,
		reloadURL: reloadURL,
	}
}

// Schedule returns the active deletion schedule, or nil when none exists
func (n *NoticeController) Schedule() *domain.DeletionSchedule {
	return n.store.Snapshot().DeletionSchedule
}

// CancelDeletion cancels the scheduled deletion on the backend. On success
// the cached session is invalidated and the page reloads; a full reload is
// the simple way to guarantee every dependent re-reads the snapshot.
func (n *NoticeController) CancelDeletion(ctx context.Context) error {
	if err := n.api.CancelScheduledDeletion(ctx); err != nil {
		n.logger.Warn("cancel scheduled deletion failed", zap.Error(err))
		return err
	}

	n.logger.Info("scheduled deletion cancelled")
	n.store.Invalidate()
	n.env.NavigateTo(n.reloadURL)
	return nil
}

// Dismiss hides the notice for the rest of this browser session. The
// backend record is untouched; the next load shows the notice again.
func (n *NoticeController) Dismiss() {
	n.env.SessionSet(noticeDismissedKey, "1")
}

// Dismissed reports whether the notice was dismissed this session
func (n *NoticeController) Dismissed() bool {
	_, ok := n.env.SessionGet(noticeDismissedKey)
	return ok
}
