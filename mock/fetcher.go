// Package mock provides hand-written mocks for the wikiwalk interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/wikiwalk"
)

var _ wikiwalk.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of wikiwalk.Fetcher.
type Fetcher struct {
	FetchPageFn func(ctx context.Context, title wikiwalk.Title) (*wikiwalk.Document, error)
	CloseFn     func() error
}

func (f *Fetcher) FetchPage(ctx context.Context, title wikiwalk.Title) (*wikiwalk.Document, error) {
	return f.FetchPageFn(ctx, title)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
