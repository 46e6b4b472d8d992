package wikiwalk

import (
	"context"
	"time"
)

// CachedPage represents a stored copy of fetched page markup, keyed by
// base URL and canonical title. The cache holds transport artifacts
// only; traversal results are never persisted.
type CachedPage struct {
	BaseURL     string    `json:"baseUrl"`
	Title       Title     `json:"title"`
	HTML        string    `json:"html"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the cached page contains invalid fields.
func (p *CachedPage) Validate() error {
	if p.BaseURL == "" {
		return Errorf(EINVALID, "cached page base URL required")
	}
	if p.Title == "" {
		return Errorf(EINVALID, "cached page title required")
	}
	if p.HTML == "" {
		return Errorf(EINVALID, "cached page HTML required")
	}
	return nil
}

// CacheStats summarizes the contents of a page cache.
type CacheStats struct {
	Pages       int
	Bytes       int
	OldestFetch time.Time
	NewestFetch time.Time
}

// PageCache stores fetched page markup.
type PageCache interface {
	// GetPage retrieves a cached page.
	// Returns ENOTFOUND if the page has not been cached.
	GetPage(ctx context.Context, baseURL string, title Title) (*CachedPage, error)

	// PutPage stores a page, replacing any previous copy.
	PutPage(ctx context.Context, page *CachedPage) error

	// Stats returns cache statistics.
	Stats(ctx context.Context) (*CacheStats, error)

	// Clear removes all cached pages.
	Clear(ctx context.Context) error
}
