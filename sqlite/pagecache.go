package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/wikiwalk"
	"github.com/fwojciec/wikiwalk/bloom"
)

// Compile-time interface verification.
var _ wikiwalk.PageCache = (*PageCacheService)(nil)

// expectedPages sizes the negative-lookup filter. A walk rarely touches
// more than a few hundred pages, so this leaves generous headroom.
const expectedPages = 100_000

// PageCacheService implements wikiwalk.PageCache using SQLite. A Bloom
// filter over cache keys short-circuits lookups for pages that were
// never stored, which is the common case on a fresh walk.
type PageCacheService struct {
	db     *DB
	filter *bloom.Filter
	warmed bool
}

// NewPageCacheService creates a new PageCacheService.
func NewPageCacheService(db *DB) *PageCacheService {
	return &PageCacheService{
		db:     db,
		filter: bloom.NewFilter(expectedPages, 0.01),
	}
}

// Warm seeds the negative-lookup filter from the stored keys. Until
// Warm is called every lookup goes to the database.
func (s *PageCacheService) Warm(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "SELECT base_url, title FROM pages")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var baseURL, title string
		if err := rows.Scan(&baseURL, &title); err != nil {
			return err
		}
		s.filter.Add(cacheKey(baseURL, wikiwalk.Title(title)))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	s.warmed = true
	return nil
}

// GetPage retrieves a cached page.
func (s *PageCacheService) GetPage(ctx context.Context, baseURL string, title wikiwalk.Title) (*wikiwalk.CachedPage, error) {
	canonical := title.Canonical()

	if s.warmed && !s.filter.Test(cacheKey(baseURL, canonical)) {
		return nil, wikiwalk.Errorf(wikiwalk.ENOTFOUND, "page %q not cached", canonical.Display())
	}

	var page wikiwalk.CachedPage
	var titleStr, fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT base_url, title, html, content_hash, fetched_at
		FROM pages
		WHERE base_url = ? AND title = ?
	`, baseURL, string(canonical)).Scan(&page.BaseURL, &titleStr, &page.HTML, &page.ContentHash, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, wikiwalk.Errorf(wikiwalk.ENOTFOUND, "page %q not cached", canonical.Display())
	}
	if err != nil {
		return nil, err
	}

	page.Title = wikiwalk.Title(titleStr)
	page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// PutPage stores a page, replacing any previous copy.
func (s *PageCacheService) PutPage(ctx context.Context, page *wikiwalk.CachedPage) error {
	if err := page.Validate(); err != nil {
		return err
	}

	canonical := page.Title.Canonical()
	fetchedAt := page.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (base_url, title, html, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (base_url, title) DO UPDATE SET
			html = excluded.html,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, page.BaseURL, string(canonical), page.HTML, page.ContentHash, fetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	s.filter.Add(cacheKey(page.BaseURL, canonical))
	return nil
}

// Stats returns cache statistics.
func (s *PageCacheService) Stats(ctx context.Context) (*wikiwalk.CacheStats, error) {
	var stats wikiwalk.CacheStats
	var oldest, newest sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(LENGTH(html)), 0), MIN(fetched_at), MAX(fetched_at)
		FROM pages
	`).Scan(&stats.Pages, &stats.Bytes, &oldest, &newest)
	if err != nil {
		return nil, err
	}

	if oldest.Valid {
		if stats.OldestFetch, err = parseRFC3339(oldest.String, "fetched_at"); err != nil {
			return nil, err
		}
	}
	if newest.Valid {
		if stats.NewestFetch, err = parseRFC3339(newest.String, "fetched_at"); err != nil {
			return nil, err
		}
	}

	return &stats, nil
}

// Clear removes all cached pages.
func (s *PageCacheService) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM pages"); err != nil {
		return err
	}
	s.filter.Reset()
	return nil
}

// cacheKey joins the cache's composite key into a single filter key.
func cacheKey(baseURL string, title wikiwalk.Title) string {
	return baseURL + "|" + string(title)
}

// parseRFC3339 parses a stored timestamp column, naming the field in
// the error so corrupt rows are traceable.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}
