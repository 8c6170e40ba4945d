package mock

import (
	"context"

	"github.com/msousa/jango"
)

var _ jango.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of jango.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, site *jango.Site) (*jango.ScrapeStats, error)
}

func (s *Scraper) Scrape(ctx context.Context, site *jango.Site) (*jango.ScrapeStats, error) {
	return s.ScrapeFn(ctx, site)
}
