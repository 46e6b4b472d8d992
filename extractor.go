package wikiwalk

// LinkContext classifies where in the article body a link was found.
// Only ContextNormal links qualify as next-hop candidates; every other
// context excludes the link from selection.
type LinkContext string

// Link contexts, one per exclusion rule.
const (
	ContextNormal        LinkContext = "normal"
	ContextParenthetical LinkContext = "parenthetical"
	ContextItalic        LinkContext = "italic"
	ContextMeta          LinkContext = "meta"
	ContextCitation      LinkContext = "citation"
	ContextSelf          LinkContext = "self"
)

// CandidateLink represents an article link found during a region scan.
type CandidateLink struct {
	Title   Title
	Text    string
	Context LinkContext

	// Rank is the 1-based ordinal among qualifying links in document
	// order. Excluded links carry Rank 0.
	Rank int
}

// LinkExtractor scans a main-content region for article links.
type LinkExtractor interface {
	// ExtractLinks returns the qualifying links in document order, ranked
	// 1..n by first occurrence. An empty result is a valid "dead end"
	// signal, not an error; the error covers parse-level failures only.
	ExtractLinks(region *Region, self Title) ([]CandidateLink, error)

	// ScanLinks returns every article link in document order, excluded
	// links included, each tagged with the context that excluded it.
	ScanLinks(region *Region, self Title) ([]CandidateLink, error)
}
