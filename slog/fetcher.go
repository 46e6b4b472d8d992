// Package slog provides logging decorators for wikiwalk services using
// the standard library structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiwalk"
)

// Ensure LoggingFetcher implements wikiwalk.Fetcher.
var _ wikiwalk.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   wikiwalk.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next wikiwalk.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchPage logs the title being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) FetchPage(ctx context.Context, title wikiwalk.Title) (doc *wikiwalk.Document, err error) {
	defer func(begin time.Time) {
		var bytes int
		if doc != nil {
			bytes = len(doc.HTML)
		}
		f.logger.Info("page fetch",
			"title", string(title.Canonical()),
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchPage(ctx, title)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
