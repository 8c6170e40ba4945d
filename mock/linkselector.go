package mock

import "github.com/msousa/jango"

var _ jango.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of jango.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]jango.DiscoveredLink, error)
	NameFn         func() string
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]jango.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}

func (s *LinkSelector) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}
