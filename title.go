package wikiwalk

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Title is a Wikipedia article title. Percent escapes in hrefs are
// decoded once where the href is parsed; a Title always holds the
// decoded text, and Canonical normalizes it to a single comparable key.
type Title string

// nonArticleNamespaces maps lower-cased namespace prefixes that mark
// non-article pages to their canonical names. A colon inside a title
// whose prefix is not listed here is part of a normal title.
var nonArticleNamespaces = map[string]string{
	"help":      "Help",
	"wikipedia": "Wikipedia",
	"file":      "File",
	"image":     "Image",
	"media":     "Media",
	"category":  "Category",
	"template":  "Template",
	"portal":    "Portal",
	"special":   "Special",
	"talk":      "Talk",
	"user":      "User",
	"draft":     "Draft",
	"module":    "Module",
	"mediawiki": "MediaWiki",
}

// Canonical returns the canonical form of the title: whitespace runs
// collapsed to single underscores and the first character upper-cased
// (the MediaWiki title convention). Canonical never decodes percent
// escapes, which keeps it idempotent: already-canonical titles pass
// through unchanged.
func (t Title) Canonical() Title {
	s := string(t)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_'
	})
	s = strings.Join(fields, "_")
	if s == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(s)
	return Title(string(unicode.ToUpper(first)) + s[size:])
}

// Display returns the human-readable form with underscores as spaces.
func (t Title) Display() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// Namespace returns the canonical namespace prefix of the title, or ""
// for titles in the main article namespace. Prefixes are matched
// case-insensitively before the first colon.
func (t Title) Namespace() string {
	prefix, _, ok := strings.Cut(string(t), ":")
	if !ok {
		return ""
	}
	return nonArticleNamespaces[strings.ToLower(strings.TrimSpace(prefix))]
}

// IsArticle reports whether the title belongs to the main article namespace.
func (t Title) IsArticle() bool {
	return t.Namespace() == ""
}
