package domain

// Page identifies a top-level application page
type Page string

const (
	PagePractice Page = "Practice"
	PageRoutines Page = "Routines"
	PageItems    Page = "Items"
	PageAccount  Page = "Account"
	PageFAQ      Page = "FAQ"
	PageImports  Page = "Imports"
)

// DefaultPage is where navigation lands when nothing else resolves
const DefaultPage = PagePractice

var knownPages = map[Page]bool{
	PagePractice: true,
	PageRoutines: true,
	PageItems:    true,
	PageAccount:  true,
	PageFAQ:      true,
	PageImports:  true,
}

// Pages unavailable while the session is in restricted mode
var restrictedPages = map[Page]bool{
	PageRoutines: true,
	PageItems:    true,
	PageImports:  true,
}

// Pages that hide the embedded support widget
var widgetSuppressedPages = map[Page]bool{
	PagePractice: true,
	PageImports:  true,
}

// ParsePage converts a page name to a Page, reporting whether it is known
func ParsePage(name string) (Page, bool) {
	p := Page(name)
	return p, knownPages[p]
}

func (p Page) String() string {
	return string(p)
}

// Restricted reports whether restricted mode blocks navigation to this page
func (p Page) Restricted() bool {
	return restrictedPages[p]
}

// SuppressesWidget reports whether the support widget is hidden on this page
func (p Page) SuppressesWidget() bool {
	return widgetSuppressedPages[p]
}

// NavSource identifies which mechanism produced a navigation value
type NavSource string

const (
	SourceURLFragment    NavSource = "url_fragment"
	SourceStoredRedirect NavSource = "stored_redirect"
	SourceUserAction     NavSource = "user_action"
	SourceBrowserHistory NavSource = "browser_history"
)

// NavigationState records the active page together with how it was derived
type NavigationState struct {
	ActivePage Page
	Source     NavSource
}
