package mock

import "github.com/msousa/jango"

var _ jango.Converter = (*Converter)(nil)

// Converter is a mock implementation of jango.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
