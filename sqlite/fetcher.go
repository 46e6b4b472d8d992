package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/wikiwalk"
)

// DefaultCacheTTL is how long a cached page is served before it is
// fetched again. Article link structure changes slowly, so a week
// keeps repeat walks fast without going stale.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Ensure CachingFetcher implements wikiwalk.Fetcher at compile time.
var _ wikiwalk.Fetcher = (*CachingFetcher)(nil)

// CachingFetcher decorates a Fetcher with a read-through page cache.
// Cache failures are treated as misses so a broken cache degrades to
// plain network fetching instead of failing the walk.
type CachingFetcher struct {
	fetcher wikiwalk.Fetcher
	cache   wikiwalk.PageCache
	baseURL string
	ttl     time.Duration
	refresh bool
}

// CacheOption configures a CachingFetcher.
type CacheOption func(*CachingFetcher)

// WithTTL sets the maximum age of a served cache entry.
// Defaults to DefaultCacheTTL.
func WithTTL(ttl time.Duration) CacheOption {
	return func(f *CachingFetcher) {
		f.ttl = ttl
	}
}

// WithRefresh forces network fetches even for cached pages. Fetched
// pages still overwrite their cache entries.
func WithRefresh(refresh bool) CacheOption {
	return func(f *CachingFetcher) {
		f.refresh = refresh
	}
}

// NewCachingFetcher creates a CachingFetcher over fetcher and cache.
// Cache entries are keyed by baseURL so walks against different wikis
// can share one cache file.
func NewCachingFetcher(fetcher wikiwalk.Fetcher, cache wikiwalk.PageCache, baseURL string, opts ...CacheOption) *CachingFetcher {
	f := &CachingFetcher{
		fetcher: fetcher,
		cache:   cache,
		baseURL: baseURL,
		ttl:     DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPage serves the page from cache when a fresh entry exists,
// otherwise fetches it and stores the result.
func (f *CachingFetcher) FetchPage(ctx context.Context, title wikiwalk.Title) (*wikiwalk.Document, error) {
	canonical := title.Canonical()

	if !f.refresh {
		cached, err := f.cache.GetPage(ctx, f.baseURL, canonical)
		if err == nil && time.Since(cached.FetchedAt) <= f.ttl {
			return &wikiwalk.Document{
				Title:       cached.Title,
				HTML:        cached.HTML,
				ContentHash: cached.ContentHash,
				FetchedAt:   cached.FetchedAt,
			}, nil
		}
	}

	doc, err := f.fetcher.FetchPage(ctx, canonical)
	if err != nil {
		return nil, err
	}

	// Best-effort write; a full cache read path still works without it.
	_ = f.cache.PutPage(ctx, &wikiwalk.CachedPage{
		BaseURL:     f.baseURL,
		Title:       doc.Title,
		HTML:        doc.HTML,
		ContentHash: doc.ContentHash,
		FetchedAt:   doc.FetchedAt,
	})

	return doc, nil
}

// Close closes the underlying fetcher.
func (f *CachingFetcher) Close() error {
	return f.fetcher.Close()
}
