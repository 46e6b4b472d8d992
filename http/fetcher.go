// Package http provides HTTP-based implementations of wikiwalk.Fetcher
// for retrieving wiki pages without JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wikiwalk"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the wiki origin pages are fetched from.
const DefaultBaseURL = "https://en.wikipedia.org"

// DefaultUserAgent identifies the client to the wiki, per the
// Wikimedia User-Agent policy.
const DefaultUserAgent = "wikiwalk/1.0 (https://github.com/fwojciec/wikiwalk)"

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultRequestsPerSecond is the default politeness limit on
// requests to the wiki.
const DefaultRequestsPerSecond = 1.0

// Ensure Fetcher implements wikiwalk.Fetcher at compile time.
var _ wikiwalk.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered article HTML from /wiki/{title} paths.
// Unlike rod.Fetcher, this does not execute JavaScript; server-rendered
// MediaWiki markup is complete enough for link traversal.
type Fetcher struct {
	client      *http.Client
	limiter     *rate.Limiter
	baseURL     string
	userAgent   string
	timeout     time.Duration
	retryDelays []time.Duration
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

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRequestsPerSecond sets the politeness limit. Burst is fixed at 1
// so requests are evenly spaced.
func WithRequestsPerSecond(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithRetryDelays overrides the backoff delays used for transient
// failures. Useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelays = delays
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL:     DefaultBaseURL,
		userAgent:   DefaultUserAgent,
		timeout:     DefaultFetchTimeout,
		limiter:     rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
		retryDelays: defaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// BaseURL returns the wiki origin this fetcher reads from.
func (f *Fetcher) BaseURL() string {
	return f.baseURL
}

// FetchPage retrieves the article page for the given title.
func (f *Fetcher) FetchPage(ctx context.Context, title wikiwalk.Title) (*wikiwalk.Document, error) {
	canonical := title.Canonical()
	if canonical == "" {
		return nil, wikiwalk.Errorf(wikiwalk.EINVALID, "Title required.")
	}

	pageURL := f.baseURL + "/wiki/" + url.PathEscape(string(canonical))

	html, err := fetchWithRetry(ctx, f.retryDelays, func(ctx context.Context) (string, error) {
		return f.fetch(ctx, pageURL, canonical)
	})
	if err != nil {
		return nil, err
	}

	return &wikiwalk.Document{
		Title:       canonical,
		HTML:        html,
		ContentHash: contentHash(html),
		FetchedAt:   time.Now(),
	}, nil
}

// contentHash returns a stable hex digest of the page HTML.
func contentHash(html string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(html))
}

// fetch performs a single rate-limited request.
func (f *Fetcher) fetch(ctx context.Context, pageURL string, title wikiwalk.Title) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", wikiwalk.Errorf(wikiwalk.EINVALID, "invalid page URL %q: %s", pageURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", wikiwalk.Errorf(wikiwalk.EUNAVAILABLE, "request to %q failed: %s", pageURL, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, title); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wikiwalk.Errorf(wikiwalk.EUNAVAILABLE, "reading response for %q failed: %s", title.Display(), err)
	}

	return string(body), nil
}

// statusError maps an HTTP status code to an application error.
func statusError(status int, title wikiwalk.Title) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound:
		return wikiwalk.Errorf(wikiwalk.ENOTFOUND, "page %q not found", title.Display())
	case status == http.StatusTooManyRequests || status >= 500:
		return wikiwalk.Errorf(wikiwalk.EUNAVAILABLE, "HTTP %d fetching %q", status, title.Display())
	default:
		return wikiwalk.Errorf(wikiwalk.EINTERNAL, "HTTP %d fetching %q", status, title.Display())
	}
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
