// Package trafilatura provides a content locator backed by
// go-trafilatura, used as the locator for non-MediaWiki pages.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/wikiwalk"
	trafi "github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Locator implements wikiwalk.ContentLocator at compile time.
var _ wikiwalk.ContentLocator = (*Locator)(nil)

// Locator wraps go-trafilatura to locate main content in generic HTML.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Name returns the locator name used in logs and reports.
func (l *Locator) Name() string {
	return "trafilatura"
}

// Locate extracts the main content region from the document.
func (l *Locator) Locate(doc *wikiwalk.Document) (*wikiwalk.Region, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	opts := trafi.Options{
		EnableFallback: true,
	}

	result, err := trafi.Extract(strings.NewReader(doc.HTML), opts)
	if err != nil {
		return nil, wikiwalk.Errorf(wikiwalk.ENOTFOUND, "no main content found in %q: %s", doc.Title.Display(), err)
	}
	if result.ContentNode == nil {
		return nil, wikiwalk.Errorf(wikiwalk.ENOTFOUND, "no main content found in %q", doc.Title.Display())
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &wikiwalk.Region{
		Title:       doc.Title,
		ContentHTML: contentHTML,
		Blocks:      countParagraphs(result.ContentNode),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// countParagraphs counts paragraph elements under n.
func countParagraphs(n *html.Node) int {
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
	walk(n)
	return count
}
