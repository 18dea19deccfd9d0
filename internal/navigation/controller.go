// Package navigation resolves the active page from its competing sources
// (URL fragment, stored redirect, user actions, history replay) and applies
// access gating on every transition.
package navigation

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/slshults/gpra-web-sub001/internal/analytics"
	"github.com/slshults/gpra-web-sub001/internal/browser"
	"github.com/slshults/gpra-web-sub001/internal/domain"
)

const redirectKey = "gpra_login_redirect_hash"

// SessionReader is the slice of the session store navigation needs
type SessionReader interface {
	Snapshot() domain.SessionSnapshot
}

// Widget is the embedded support widget's visibility API. It may initialize
// after the page is already visible, hence the deferred re-application.
type Widget interface {
	SetVisible(visible bool)
}

// Controller owns the navigation state and its synchronization with the
// URL fragment, the one-shot redirect slot and browser history.
type Controller struct {
	session      SessionReader
	env          browser.Env
	sink         analytics.Sink
	widget       Widget
	logger       *zap.Logger
	onRestricted func(domain.Page)
	reapplyDelay time.Duration

	mu          sync.Mutex
	state       domain.NavigationState
	widgetTimer browser.Timer
}

// NewController creates a navigation controller. onRestricted fires when a
// gated transition is refused; the caller surfaces the upgrade prompt.
func NewController(
	session SessionReader,
	env browser.Env,
	sink analytics.Sink,
	widget Widget,
	onRestricted func(domain.Page),
	reapplyDelay time.Duration,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		session:      session,
		env:          env,
		sink:         sink,
		widget:       widget,
		logger:       logger,
		onRestricted: onRestricted,
		reapplyDelay: reapplyDelay,
		state:        domain.NavigationState{ActivePage: domain.DefaultPage, Source: domain.SourceURLFragment},
	}
}

// Resolve derives the initial page, in priority order: URL fragment, then
// the one-shot stored redirect (consumed and written back to the fragment),
// then the default page.
func (c *Controller) Resolve() domain.NavigationState {
	page, source := c.resolveInitial()

	c.mu.Lock()
	c.state = domain.NavigationState{ActivePage: page, Source: source}
	c.mu.Unlock()

	c.emitVisit(page, "", source)
	c.applyWidgetVisibility(page)

	c.logger.Info("navigation resolved",
		zap.String("page", page.String()),
		zap.String("source", string(source)),
	)
	return c.State()
}

func (c *Controller) resolveInitial() (domain.Page, domain.NavSource) {
	if page, ok := domain.ParsePage(cleanFragment(c.env.ReadFragment())); ok {
		return page, domain.SourceURLFragment
	}

	if stored, ok := c.env.SessionGet(redirectKey); ok {
		// One-shot: the slot is consumed whether or not it is valid
		c.env.SessionRemove(redirectKey)
		if page, ok := domain.ParsePage(cleanFragment(stored)); ok {
			// Rewrite the fragment so bookmarks and back-button state
			// match the page actually shown
			c.env.WriteFragment(page.String())
			return page, domain.SourceStoredRedirect
		}
	}

	return domain.DefaultPage, domain.SourceURLFragment
}

// NavigateTo attempts a transition. It returns false when restricted mode
// blocks the page; the state is left unchanged and the restricted callback
// fires instead.
func (c *Controller) NavigateTo(page domain.Page, fromUserAction bool) bool {
	if c.session.Snapshot().RestrictedMode && page.Restricted() {
		c.sink.Emit("restricted_page_blocked", map[string]any{
			"page":      page.String(),
			"timestamp": c.env.Now(),
		})
		if c.onRestricted != nil {
			c.onRestricted(page)
		}
		return false
	}

	source := domain.SourceBrowserHistory
	if fromUserAction {
		source = domain.SourceUserAction
	}

	c.mu.Lock()
	previous := c.state.ActivePage
	c.state = domain.NavigationState{ActivePage: page, Source: source}
	c.mu.Unlock()

	c.emitVisit(page, previous.String(), source)

	// Replay, don't record: only user-initiated transitions may add a
	// history entry, or back/forward would grow the stack forever.
	if fromUserAction {
		c.env.PushHistory(page.String())
	}

	c.applyWidgetVisibility(page)
	return true
}

// HandlePopFragment re-enters navigation for a back/forward event. Unknown
// page names fall back to the default page rather than erroring.
func (c *Controller) HandlePopFragment(fragment string) {
	page, ok := domain.ParsePage(cleanFragment(fragment))
	if !ok {
		page = domain.DefaultPage
	}
	c.NavigateTo(page, false)
}

// StashRedirect stores the page in the one-shot redirect slot so it
// survives a login round trip that drops the fragment
func (c *Controller) StashRedirect(page domain.Page) {
	c.env.SessionSet(redirectKey, page.String())
}

// State returns the current navigation state
func (c *Controller) State() domain.NavigationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispose cancels the pending widget re-application timer
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.widgetTimer != nil {
		c.widgetTimer.Stop()
		c.widgetTimer = nil
	}
}

func (c *Controller) emitVisit(page domain.Page, previous string, source domain.NavSource) {
	c.sink.Emit("page_visit", map[string]any{
		"page":          page.String(),
		"previous_page": previous,
		"source":        string(source),
		"timestamp":     c.env.Now(),
	})
}

// applyWidgetVisibility pushes the derived visibility to the document flag
// immediately and to the widget API again after a delay, since the widget
// may initialize asynchronously after the page itself is visible.
func (c *Controller) applyWidgetVisibility(page domain.Page) {
	suppressed := page.SuppressesWidget()
	c.env.SetDocumentFlag("support-widget-hidden", suppressed)
	c.widget.SetVisible(!suppressed)

	c.mu.Lock()
	if c.widgetTimer != nil {
		c.widgetTimer.Stop()
	}
	c.widgetTimer = c.env.SetTimer(c.reapplyDelay, func() {
		c.widget.SetVisible(!suppressed)
	})
	c.mu.Unlock()
}

// cleanFragment strips the leading "#" and any trailing query string from
// a raw fragment value
func cleanFragment(fragment string) string {
	fragment = strings.TrimPrefix(fragment, "#")
	if i := strings.Index(fragment, "?"); i >= 0 {
		fragment = fragment[:i]
	}
	return fragment
}
