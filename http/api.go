package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/wikiwalk"
	"golang.org/x/time/rate"
)

// Ensure APIFetcher implements wikiwalk.Fetcher at compile time.
var _ wikiwalk.Fetcher = (*APIFetcher)(nil)

// APIFetcher retrieves article HTML through the MediaWiki action API
// (action=parse) instead of scraping /wiki/ pages. The API resolves
// redirects server-side and returns just the parsed content, which
// makes responses smaller and the resolved title explicit.
type APIFetcher struct {
	client      *http.Client
	limiter     *rate.Limiter
	baseURL     string
	userAgent   string
	timeout     time.Duration
	retryDelays []time.Duration
}

// APIOption configures an APIFetcher.
type APIOption func(*APIFetcher)

// WithAPIBaseURL sets the wiki origin. Defaults to DefaultBaseURL.
func WithAPIBaseURL(baseURL string) APIOption {
	return func(f *APIFetcher) {
		f.baseURL = baseURL
	}
}

// WithAPIUserAgent sets the User-Agent header sent with each request.
func WithAPIUserAgent(ua string) APIOption {
	return func(f *APIFetcher) {
		f.userAgent = ua
	}
}

// WithAPITimeout sets the timeout for API requests.
func WithAPITimeout(d time.Duration) APIOption {
	return func(f *APIFetcher) {
		f.timeout = d
	}
}

// WithAPIRequestsPerSecond sets the politeness limit.
func WithAPIRequestsPerSecond(rps float64) APIOption {
	return func(f *APIFetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithAPIRetryDelays overrides the backoff delays used for transient
// failures.
func WithAPIRetryDelays(delays []time.Duration) APIOption {
	return func(f *APIFetcher) {
		f.retryDelays = delays
	}
}

// NewAPIFetcher creates a new action-API-based Fetcher.
func NewAPIFetcher(opts ...APIOption) *APIFetcher {
	f := &APIFetcher{
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
func (f *APIFetcher) BaseURL() string {
	return f.baseURL
}

// FetchPage retrieves the parsed article content for the given title.
// Redirects are followed server-side; the returned document carries the
// resolved title.
func (f *APIFetcher) FetchPage(ctx context.Context, title wikiwalk.Title) (*wikiwalk.Document, error) {
	canonical := title.Canonical()
	if canonical == "" {
		return nil, wikiwalk.Errorf(wikiwalk.EINVALID, "Title required.")
	}

	query := url.Values{}
	query.Set("action", "parse")
	query.Set("page", string(canonical))
	query.Set("prop", "text")
	query.Set("format", "xml")
	query.Set("redirects", "1")
	query.Set("disableeditsection", "1")
	apiURL := f.baseURL + "/w/api.php?" + query.Encode()

	body, err := fetchWithRetry(ctx, f.retryDelays, func(ctx context.Context) (string, error) {
		return f.fetch(ctx, apiURL, canonical)
	})
	if err != nil {
		return nil, err
	}

	resolved, html, err := parseResponse(body, canonical)
	if err != nil {
		return nil, err
	}

	return &wikiwalk.Document{
		Title:       resolved,
		HTML:        html,
		ContentHash: contentHash(html),
		FetchedAt:   time.Now(),
	}, nil
}

// fetch performs a single rate-limited API request.
func (f *APIFetcher) fetch(ctx context.Context, apiURL string, title wikiwalk.Title) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", wikiwalk.Errorf(wikiwalk.EINVALID, "invalid API URL %q: %s", apiURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", wikiwalk.Errorf(wikiwalk.EUNAVAILABLE, "request to %q failed: %s", apiURL, err)
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

// parseResponse extracts the resolved title and content HTML from an
// action API XML response.
func parseResponse(body string, title wikiwalk.Title) (wikiwalk.Title, string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return "", "", wikiwalk.Errorf(wikiwalk.EINTERNAL, "malformed API response for %q: %s", title.Display(), err)
	}

	api := doc.SelectElement("api")
	if api == nil {
		return "", "", wikiwalk.Errorf(wikiwalk.EINTERNAL, "malformed API response for %q", title.Display())
	}

	if apiErr := api.SelectElement("error"); apiErr != nil {
		code := apiErr.SelectAttrValue("code", "")
		info := apiErr.SelectAttrValue("info", "")
		switch code {
		case "missingtitle", "invalidtitle", "pagecannotexist":
			return "", "", wikiwalk.Errorf(wikiwalk.ENOTFOUND, "page %q not found: %s", title.Display(), info)
		default:
			return "", "", wikiwalk.Errorf(wikiwalk.EINTERNAL, "API error %q fetching %q: %s", code, title.Display(), info)
		}
	}

	parse := api.SelectElement("parse")
	if parse == nil {
		return "", "", wikiwalk.Errorf(wikiwalk.EINTERNAL, "API response for %q has no parse result", title.Display())
	}

	resolved := wikiwalk.Title(parse.SelectAttrValue("title", string(title))).Canonical()

	text := parse.SelectElement("text")
	if text == nil || text.Text() == "" {
		return "", "", wikiwalk.Errorf(wikiwalk.ENOTFOUND, "page %q has no content", resolved.Display())
	}

	return resolved, text.Text(), nil
}

// Close releases resources. No-op for the API fetcher.
func (f *APIFetcher) Close() error {
	return nil
}
