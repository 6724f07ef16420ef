// Package rod renders documentation pages in headless Chrome, for sites whose
// HTML pages are assembled by JavaScript after load.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/navsearch"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// replaced with a fresh one.
const DefaultMaxPages = 75

// Ensure Fetcher implements navsearch.Fetcher at compile time.
var _ navsearch.Fetcher = (*Fetcher)(nil)

// Fetcher returns the rendered HTML of a URL.
//
// Chrome's memory grows with every page and never returns to its baseline,
// so the browser is relaunched once it has rendered the configured number of
// pages and no render is in flight. A Fetcher is safe for concurrent use.
type Fetcher struct {
	maxPages int

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	rendered int
	active   int
	closed   bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxPages sets how many pages are rendered before the browser is recycled.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxPages = n
		}
	}
}

// NewFetcher launches a headless browser. Close must be called to release it.
//
// Returns an error if Chrome or Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(f)
	}

	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	f.browser, f.launcher = browser, l
	return f, nil
}

// Fetch loads url in a new tab and returns the document's HTML once the
// load event has fired.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}
	defer f.release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", navsearch.Errorf(navsearch.EUNAVAILABLE, "open tab: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", renderError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", renderError(ctx, url, err)
	}
	html, err := page.HTML()
	if err != nil {
		return "", renderError(ctx, url, err)
	}
	return html, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	return f.shutdown()
}

// acquire returns the current browser, recycling it first when it has
// rendered maxPages pages and is idle. A failed relaunch keeps the old browser.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, navsearch.Errorf(navsearch.EUNAVAILABLE, "renderer is closed")
	}

	if f.rendered >= f.maxPages && f.active == 0 {
		if browser, l, err := launch(); err == nil {
			_ = f.shutdown()
			f.browser, f.launcher = browser, l
			f.rendered = 0
		}
	}
	f.rendered++
	f.active++
	return f.browser, nil
}

func (f *Fetcher) release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active--
}

// shutdown must be called with mu held.
func (f *Fetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}

func renderError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return navsearch.Errorf(navsearch.EUNAVAILABLE, "render %s: %v", url, err)
}
