package jango

import "context"

// ChartRenderer renders an extracted numeric series as a PNG image.
type ChartRenderer interface {
	// Render draws the series as a chart and returns the encoded PNG.
	// Returns EINVALID if the series has fewer than MinChartPoints points.
	Render(series *Series) ([]byte, error)
}

// ChartStore persists rendered chart images as static assets.
type ChartStore interface {
	// Save writes the image under a name unique to this request and
	// returns the public URL path it will be served from.
	Save(ctx context.Context, png []byte) (url string, err error)
}

// Scraper ingests a registered site's content into the document store.
type Scraper interface {
	// Scrape discovers the site's pages, fetches and extracts them, and
	// stores the results. Failures on individual pages are counted, not
	// fatal. The context bounds the whole run.
	Scrape(ctx context.Context, site *Site) (*ScrapeStats, error)
}

// ScrapeStats summarizes one scraping run.
type ScrapeStats struct {
	Discovered int `json:"discovered"`
	Fetched    int `json:"fetched"`
	Stored     int `json:"stored"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}
