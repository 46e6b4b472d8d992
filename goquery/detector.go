package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikiwalk"
)

// Ensure Detector implements wikiwalk.FlavorDetector at compile time.
var _ wikiwalk.FlavorDetector = (*Detector)(nil)

// Detector identifies the markup flavor of a fetched page. It checks the
// meta generator tag first, then MediaWiki-specific structural markers,
// then falls back to generic article containers.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified flavor.
// Returns FlavorUnknown if the flavor cannot be determined.
func (d *Detector) Detect(rawHTML string) wikiwalk.Flavor {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return wikiwalk.FlavorUnknown
	}

	// Meta generator tag is the most reliable marker when present.
	if strings.Contains(metaGenerator(doc), "mediawiki") {
		return wikiwalk.FlavorMediaWiki
	}

	// Parser output markers appear in both full pages and action-API
	// fragments; the body class only on full pages.
	if d.hasSelector(doc, ".mw-parser-output") ||
		d.hasSelector(doc, "#mw-content-text") ||
		d.hasSelector(doc, "body.mediawiki") {
		return wikiwalk.FlavorMediaWiki
	}

	if d.hasSelector(doc, "article") ||
		d.hasSelector(doc, "main") ||
		d.hasSelector(doc, "#content") {
		return wikiwalk.FlavorGeneric
	}

	return wikiwalk.FlavorUnknown
}

// metaGenerator returns the lower-cased content of the meta generator tag.
func metaGenerator(doc *goquery.Document) string {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})
	return generator
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
