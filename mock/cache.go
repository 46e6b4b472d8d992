package mock

import (
	"context"

	"github.com/fwojciec/wikiwalk"
)

var _ wikiwalk.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of wikiwalk.PageCache.
type PageCache struct {
	GetPageFn func(ctx context.Context, baseURL string, title wikiwalk.Title) (*wikiwalk.CachedPage, error)
	PutPageFn func(ctx context.Context, page *wikiwalk.CachedPage) error
	StatsFn   func(ctx context.Context) (*wikiwalk.CacheStats, error)
	ClearFn   func(ctx context.Context) error
}

func (c *PageCache) GetPage(ctx context.Context, baseURL string, title wikiwalk.Title) (*wikiwalk.CachedPage, error) {
	return c.GetPageFn(ctx, baseURL, title)
}

func (c *PageCache) PutPage(ctx context.Context, page *wikiwalk.CachedPage) error {
	return c.PutPageFn(ctx, page)
}

func (c *PageCache) Stats(ctx context.Context) (*wikiwalk.CacheStats, error) {
	return c.StatsFn(ctx)
}

func (c *PageCache) Clear(ctx context.Context) error {
	return c.ClearFn(ctx)
}
