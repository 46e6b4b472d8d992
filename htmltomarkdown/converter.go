// Package htmltomarkdown renders located article content as Markdown
// for the inspect command.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/wikiwalk"
)

// Ensure Converter implements wikiwalk.Converter at compile time.
var _ wikiwalk.Converter = (*Converter)(nil)

// Converter turns article-body HTML into Markdown. The table plugin
// matters for wiki content: lead sections regularly carry comparison
// and taxonomy tables.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", wikiwalk.Errorf(wikiwalk.EINVALID, "empty HTML input")
	}
	return c.conv.ConvertString(html)
}
