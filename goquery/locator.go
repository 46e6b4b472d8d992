// Package goquery provides goquery-based implementations of the wikiwalk
// content location and link extraction interfaces.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikiwalk"
)

// Ensure MediaWikiLocator implements wikiwalk.ContentLocator at compile time.
var _ wikiwalk.ContentLocator = (*MediaWikiLocator)(nil)

// sectionTerminators are the headings that end the readable article body.
// Nothing after the first matching heading joins the region, even content
// that is structurally inside the same container.
var sectionTerminators = map[string]bool{
	"references":      true,
	"notes":           true,
	"citations":       true,
	"bibliography":    true,
	"sources":         true,
	"footnotes":       true,
	"external links":  true,
	"see also":        true,
	"further reading": true,
}

// MediaWikiLocator isolates the main article body of MediaWiki parser
// output. It keeps the ordered direct-child paragraphs of the parser
// output container, which structurally excludes navboxes, infoboxes,
// hatnotes, tables of contents, and image thumbs, and it truncates at
// the first trailing section heading (References, External links, etc.)
// to mirror the article's top-to-bottom reading order.
type MediaWikiLocator struct{}

// NewMediaWikiLocator creates a new MediaWikiLocator.
func NewMediaWikiLocator() *MediaWikiLocator {
	return &MediaWikiLocator{}
}

// Name returns the locator's identifier.
func (l *MediaWikiLocator) Name() string {
	return "mediawiki"
}

// Locate returns the main-content region of the document.
// Returns ENOTFOUND for redirect pages, pages without a parser output
// container, and pages with no article paragraphs (disambiguation-only).
func (l *MediaWikiLocator) Locate(doc *wikiwalk.Document) (*wikiwalk.Region, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil {
		return nil, wikiwalk.Errorf(wikiwalk.EINVALID, "failed to parse HTML for %q: %v", doc.Title, err)
	}

	container := parsed.Find("#mw-content-text .mw-parser-output").First()
	if container.Length() == 0 {
		container = parsed.Find(".mw-parser-output").First()
	}
	if container.Length() == 0 {
		container = parsed.Find("#content").First()
	}
	if container.Length() == 0 {
		return nil, wikiwalk.Errorf(wikiwalk.ENOTFOUND, "no main content in %q", doc.Title)
	}

	if container.Find(".redirectMsg").Length() > 0 {
		return nil, wikiwalk.Errorf(wikiwalk.ENOTFOUND, "%q is a redirect page", doc.Title)
	}

	var blocks []string
	container.Children().EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if isSectionTerminator(sel) {
			return false
		}
		if !sel.Is("p") {
			return true
		}
		if strings.TrimSpace(sel.Text()) == "" {
			return true
		}
		if block, err := goquery.OuterHtml(sel); err == nil {
			blocks = append(blocks, block)
		}
		return true
	})

	if len(blocks) == 0 {
		return nil, wikiwalk.Errorf(wikiwalk.ENOTFOUND, "no article paragraphs in %q", doc.Title)
	}

	return &wikiwalk.Region{
		Title:       doc.Title,
		ContentHTML: strings.Join(blocks, "\n"),
		Blocks:      len(blocks),
	}, nil
}

// isSectionTerminator reports whether a block element is a trailing
// section heading. Modern MediaWiki wraps headings in div.mw-heading;
// older markup uses bare h2/h3 with a span.mw-headline inside.
func isSectionTerminator(sel *goquery.Selection) bool {
	if !sel.Is("h2, h3, div.mw-heading") {
		return false
	}
	if sel.Is("div.mw-heading") && sel.Find("h2, h3").Length() == 0 {
		return false
	}

	text := strings.TrimSpace(sel.Find(".mw-headline").Text())
	if text == "" {
		text = strings.TrimSpace(sel.Text())
	}
	text = strings.ToLower(text)
	text = strings.TrimSpace(strings.TrimSuffix(text, "[edit]"))

	return sectionTerminators[text]
}
