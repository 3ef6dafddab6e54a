// Package rod fetches pages through a headless Chrome browser, for pages
// that only render their answer list with JavaScript or behind a login.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/zhextract"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements zhextract.Fetcher at compile time.
var _ zhextract.Fetcher = (*Fetcher)(nil)

// DefaultWaitTimeout bounds how long Fetch waits for the wait selector.
const DefaultWaitTimeout = 5 * time.Second

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser      *browser
	maxPages     int
	cookie       string
	userAgent    string
	waitSelector string
	waitTimeout  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCookie sends the cookie header with every page load, e.g. a
// logged-in z_c0 session.
func WithCookie(cookie string) Option {
	return func(f *Fetcher) {
		f.cookie = cookie
	}
}

// WithUserAgent overrides the browser's user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithWaitSelector makes Fetch wait until an element matching selector is
// rendered, e.g. ".zm-item-answer". A page that never renders one is still
// returned once the wait timeout passes.
func WithWaitSelector(selector string, timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.waitSelector = selector
		f.waitTimeout = timeout
	}
}

// WithMaxPages sets how many pages a browser process renders before it is
// relaunched. Zero disables relaunching.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		maxPages:    DefaultMaxPages,
		waitTimeout: DefaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := newBrowser(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.browser = b
	return f, nil
}

// Fetch navigates to url and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b, err := f.browser.acquire()
	if err != nil {
		return "", err
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", err
		}
	}
	if f.cookie != "" {
		cleanup, err := page.SetExtraHeaders([]string{"Cookie", f.cookie})
		if err != nil {
			return "", err
		}
		defer cleanup()
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.waitSelector != "" {
		// Missing elements are reported by the extractors, not here.
		_, _ = page.Timeout(f.waitTimeout).Element(f.waitSelector)
	}

	return page.HTML()
}

// LauncherPID returns the process ID of the current browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.browser.close()
}
