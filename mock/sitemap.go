package mock

import (
	"context"

	"github.com/msousa/jango"
)

var _ jango.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of jango.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *jango.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *jango.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
