package wikiwalk

import "context"

// Fetcher retrieves article documents by title.
// Implementations may use plain HTTP, the MediaWiki action API, or
// browser automation for JavaScript-rendered mirrors.
type Fetcher interface {
	// FetchPage retrieves the document for a page title.
	// Returns ENOTFOUND if no such page exists.
	// The context controls timeout and cancellation.
	FetchPage(ctx context.Context, title Title) (*Document, error)

	// Close releases fetch resources (browser processes, cache handles).
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
