// Package readability implements content extraction using the readability
// algorithm, the last fallback in the extraction chain.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/msousa/jango"
)

// Ensure Extractor implements jango.Extractor at compile time.
var _ jango.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*jango.ExtractResult, error) {
	if rawHTML == "" {
		return nil, jango.Errorf(jango.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &jango.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
