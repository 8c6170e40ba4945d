// Package trafilatura implements generic boilerplate-removing content
// extraction, used as a fallback when selector-based extraction fails.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/msousa/jango"
	"golang.org/x/net/html"
)

// Ensure Extractor implements jango.Extractor at compile time.
var _ jango.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	extracted := &jango.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}
	if !result.Metadata.Date.IsZero() {
		date := result.Metadata.Date
		extracted.PublishDate = &date
	}
	return extracted, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
