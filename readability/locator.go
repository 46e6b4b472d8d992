// Package readability provides a content locator backed by
// go-readability, used as the fallback of last resort when no other
// locator claims a document.
package readability

import (
	"strings"

	"github.com/fwojciec/wikiwalk"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Locator implements wikiwalk.ContentLocator at compile time.
var _ wikiwalk.ContentLocator = (*Locator)(nil)

// Locator wraps go-readability to locate main content in generic HTML.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Name returns the locator name used in logs and reports.
func (l *Locator) Name() string {
	return "readability"
}

// Locate extracts the main content region from the document.
func (l *Locator) Locate(doc *wikiwalk.Document) (*wikiwalk.Region, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	article, err := readability.FromReader(strings.NewReader(doc.HTML), nil)
	if err != nil {
		return nil, wikiwalk.Errorf(wikiwalk.ENOTFOUND, "no main content found in %q: %s", doc.Title.Display(), err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, wikiwalk.Errorf(wikiwalk.ENOTFOUND, "no main content found in %q", doc.Title.Display())
	}

	return &wikiwalk.Region{
		Title:       doc.Title,
		ContentHTML: article.Content,
		Blocks:      countParagraphs(article.Content),
	}, nil
}

// countParagraphs counts paragraph elements in an HTML fragment.
func countParagraphs(content string) int {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return 0
	}
	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return count
}
