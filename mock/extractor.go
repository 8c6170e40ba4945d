package mock

import "github.com/msousa/jango"

var _ jango.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of jango.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*jango.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*jango.ExtractResult, error) {
	return e.ExtractFn(html)
}
