// Package htmltomarkdown converts extracted HTML content to Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/msousa/jango"
)

// Ensure Converter implements jango.Converter at compile time.
var _ jango.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// blankRunRe matches runs of three or more newlines left behind by
// stripped page furniture.
var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Convert transforms HTML content into Markdown. Runs of blank lines are
// collapsed so layout scaffolding does not inflate the chunker's word
// windows.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", jango.Errorf(jango.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(blankRunRe.ReplaceAllString(result, "\n\n")), nil
}
