package wikiwalk

import "time"

// Document represents a fetched article page. A Document is owned by a
// single traversal step and discarded after link extraction.
type Document struct {
	Title       Title     `json:"title"`
	HTML        string    `json:"html"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	if d.HTML == "" {
		return Errorf(EINVALID, "document HTML required")
	}
	return nil
}

// Region holds the located main-content blocks of a document,
// concatenated in reading order. A Region is derived from a Document,
// never mutated, and consumed once by a LinkExtractor.
type Region struct {
	Title       Title
	ContentHTML string
	Blocks      int
}
