// Package rod provides a browser-rendered implementation of
// wikiwalk.Fetcher using Chrome automation. It exists for wikis whose
// article bodies are assembled client-side; MediaWiki sites render
// server-side and are better served by the plain HTTP fetcher.
package rod

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wikiwalk"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultBaseURL is the wiki origin pages are fetched from.
const DefaultBaseURL = "https://en.wikipedia.org"

// DefaultFetchTimeout bounds a single page render.
// Kept consistent with http.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements wikiwalk.Fetcher at compile time.
var _ wikiwalk.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered article HTML using a headless Chrome
// browser. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	baseURL string
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBaseURL sets the wiki origin, e.g. "https://de.wikipedia.org".
// Defaults to DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(f *Fetcher) {
		f.baseURL = baseURL
	}
}

// WithTimeout sets the per-page render timeout.
// Defaults to DefaultFetchTimeout (10s).
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new browser-rendered Fetcher. Close must be
// called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		baseURL: DefaultBaseURL,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// BaseURL returns the wiki origin this fetcher reads from.
func (f *Fetcher) BaseURL() string {
	return f.baseURL
}

// FetchPage navigates to the article page and returns the rendered HTML.
func (f *Fetcher) FetchPage(ctx context.Context, title wikiwalk.Title) (*wikiwalk.Document, error) {
	canonical := title.Canonical()
	if canonical == "" {
		return nil, wikiwalk.Errorf(wikiwalk.EINVALID, "Title required.")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	pageURL := f.baseURL + "/wiki/" + url.PathEscape(string(canonical))

	html, err := f.render(ctx, pageURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, wikiwalk.Errorf(wikiwalk.EUNAVAILABLE, "rendering %q failed: %s", canonical.Display(), err)
	}

	f.manager.RecordVisit()

	return &wikiwalk.Document{
		Title:       canonical,
		HTML:        html,
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(html)),
		FetchedAt:   time.Now(),
	}, nil
}

// render loads the page in a fresh tab and returns its HTML.
func (f *Fetcher) render(ctx context.Context, pageURL string) (string, error) {
	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(pageURL); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
