package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikiwalk"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements wikiwalk.LinkExtractor at compile time.
var _ wikiwalk.LinkExtractor = (*Extractor)(nil)

// Extractor scans main-content regions for article links. The scan is a
// single left-to-right walk over the parsed nodes with explicit state:
// parenthetical depth is counted in text nodes and carried across inline
// and paragraph boundaries; italic and reference contexts are structural
// (ancestor elements). Each exclusion rule is an independent predicate;
// the first matching one tags the link.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks returns the qualifying links in document order, ranked
// 1..n by first occurrence. An empty result signals a dead end.
func (e *Extractor) ExtractLinks(region *wikiwalk.Region, self wikiwalk.Title) ([]wikiwalk.CandidateLink, error) {
	all, err := e.ScanLinks(region, self)
	if err != nil {
		return nil, err
	}

	var links []wikiwalk.CandidateLink
	for _, link := range all {
		if link.Context == wikiwalk.ContextNormal {
			links = append(links, link)
		}
	}
	return links, nil
}

// ScanLinks returns every article link in document order, excluded links
// included, each tagged with the context that excluded it.
func (e *Extractor) ScanLinks(region *wikiwalk.Region, self wikiwalk.Title) ([]wikiwalk.CandidateLink, error) {
	if region == nil || strings.TrimSpace(region.ContentHTML) == "" {
		return nil, wikiwalk.Errorf(wikiwalk.EINVALID, "empty region")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(region.ContentHTML))
	if err != nil {
		return nil, wikiwalk.Errorf(wikiwalk.EINVALID, "failed to parse region for %q: %v", region.Title, err)
	}

	scan := &scanState{self: self.Canonical()}
	for _, root := range doc.Nodes {
		scan.walk(root)
	}
	return scan.links, nil
}

// scanState carries the walk state for one region scan.
type scanState struct {
	self        wikiwalk.Title
	parenDepth  int
	italicDepth int
	refDepth    int
	nextRank    int
	links       []wikiwalk.CandidateLink
}

// walk visits nodes in document order. Parenthetical depth is consumed
// from every text node, including text inside anchors, so an aside that
// spans several inline elements still covers the links within it.
func (s *scanState) walk(n *html.Node) {
	if n.Type == html.TextNode {
		s.consumeText(n.Data)
		return
	}

	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.I, atom.Em, atom.Dfn:
			s.italicDepth++
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				s.walk(c)
			}
			s.italicDepth--
			return
		case atom.Sup:
			if hasClass(n, "reference") {
				s.refDepth++
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					s.walk(c)
				}
				s.refDepth--
				return
			}
		case atom.A:
			s.visitAnchor(n)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.walk(c)
	}
}

// consumeText updates the parenthetical depth from a text node.
// The depth never goes negative, so a stray closing parenthesis cannot
// poison the rest of the region.
func (s *scanState) consumeText(text string) {
	for _, r := range text {
		switch r {
		case '(':
			s.parenDepth++
		case ')':
			if s.parenDepth > 0 {
				s.parenDepth--
			}
		}
	}
}

// visitAnchor classifies a single anchor against the exclusion rules.
// The depth state observed here is the state at the anchor's opening
// position; parentheses inside the link text apply to later links only.
func (s *scanState) visitAnchor(n *html.Node) {
	target, kind := resolveTarget(attr(n, "href"))
	if kind == targetIgnored {
		return
	}

	link := wikiwalk.CandidateLink{
		Title: target.Canonical(),
		Text:  strings.TrimSpace(nodeText(n)),
	}

	switch {
	case kind == targetCitation || s.refDepth > 0:
		link.Context = wikiwalk.ContextCitation
	case !link.Title.IsArticle():
		link.Context = wikiwalk.ContextMeta
	case s.parenDepth > 0:
		link.Context = wikiwalk.ContextParenthetical
	case s.italicDepth > 0:
		link.Context = wikiwalk.ContextItalic
	case link.Title == s.self:
		link.Context = wikiwalk.ContextSelf
	default:
		link.Context = wikiwalk.ContextNormal
		s.nextRank++
		link.Rank = s.nextRank
	}

	s.links = append(s.links, link)
}

// targetKind classifies what an href points at.
type targetKind int

const (
	targetArticle targetKind = iota
	targetCitation
	targetIgnored
)

// resolveTarget maps an href to a candidate title. Only /wiki/ paths
// participate; fragment-only hrefs and cite anchors are citation
// markers; everything else (external links, mailto, action=edit red
// links) is ignored outright. A fragment on an article href resolves to
// the path title.
func resolveTarget(href string) (wikiwalk.Title, targetKind) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", targetIgnored
	}
	if strings.HasPrefix(href, "#") {
		return "", targetCitation
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", targetIgnored
	}
	if strings.Contains(u.Fragment, "cite_note") || strings.Contains(u.Fragment, "cite_ref") {
		return "", targetCitation
	}
	if !strings.HasPrefix(u.Path, "/wiki/") {
		return "", targetIgnored
	}
	if u.Query().Get("action") != "" {
		return "", targetIgnored
	}

	title := strings.TrimPrefix(u.Path, "/wiki/")
	if title == "" {
		return "", targetIgnored
	}
	return wikiwalk.Title(title), targetArticle
}

// attr returns the value of a node attribute, or "" if absent.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether a node carries the given class.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// nodeText collects the text content of a node's subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
