// Package crawl orchestrates the ingestion of registered sector sites.
// It coordinates sitemap discovery, fetching, extraction, markdown
// conversion, and document storage, falling back to link-following
// crawls for sites without usable sitemaps.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/msousa/jango"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ jango.Scraper = (*Scraper)(nil)

// Frontier crawl limits.
const (
	// frontierExpectedURLs sizes the Bloom filter for deduplication.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable dedup false positive rate.
	frontierFalsePositiveRate = 0.01
	// defaultMaxPages bounds frontier crawls to prevent runaway runs.
	defaultMaxPages = 1000
)

// Scraper ingests a site's pages into the document store. Discovery is
// sitemap-first; sites without a sitemap are crawled by following links
// from the base URL within the same host.
type Scraper struct {
	Sitemaps  jango.SitemapService
	Fetcher   jango.Fetcher
	Converter jango.Converter
	Documents jango.DocumentService
	Limiter   jango.DomainLimiter

	// Extractors builds the extraction chain for a site. Extractors are
	// tried in order until one produces content.
	Extractors func(site *jango.Site) []jango.Extractor

	// Links returns the link selector for a page URL during frontier
	// crawls. Required only when a site has no sitemap.
	Links func(pageURL string) jango.LinkSelector

	// Concurrency limits parallel page fetches for sitemap crawls.
	// Defaults to 10.
	Concurrency int

	// RetryDelays overrides the fetch retry backoff schedule.
	RetryDelays []time.Duration

	// MaxPages bounds frontier crawls. Defaults to 1000.
	MaxPages int
}

// pageResult holds the outcome of processing one URL.
type pageResult struct {
	position int
	url      string
	doc      *jango.Document
	skipped  bool
	err      error
}

// Scrape discovers, fetches, extracts, and stores the site's pages.
// Individual page failures are counted in the returned stats, not fatal.
func (s *Scraper) Scrape(ctx context.Context, site *jango.Site) (*jango.ScrapeStats, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}

	filter, err := parseFilter(site.Filter)
	if err != nil {
		return nil, err
	}

	urls, err := s.Sitemaps.DiscoverURLs(ctx, site.BaseURL, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery for %s: %w", site.BaseURL, err)
	}

	if len(urls) == 0 {
		return s.crawlFrontier(ctx, site, filter)
	}

	return s.scrapeSitemap(ctx, site, urls)
}

// scrapeSitemap fetches a known URL list concurrently and stores the
// results in discovery order.
func (s *Scraper) scrapeSitemap(ctx context.Context, site *jango.Site, urls []string) (*jango.ScrapeStats, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	extractors := s.extractors(site)
	resultCh := make(chan pageResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, pageURL := range urls {
			i, pageURL := i, pageURL
			g.Go(func() error {
				resultCh <- s.processPage(gctx, site, extractors, i, pageURL)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, len(urls))
	for result := range resultCh {
		results[result.position] = result
	}

	stats := &jango.ScrapeStats{Discovered: len(urls)}
	for _, result := range results {
		switch {
		case result.err != nil:
			stats.Failed++
		case result.skipped:
			stats.Fetched++
			stats.Skipped++
		default:
			stats.Fetched++
			if err := s.Documents.CreateDocument(ctx, result.doc); err != nil {
				stats.Failed++
				continue
			}
			stats.Stored++
		}
	}

	return stats, nil
}

// crawlFrontier follows links from the site's base URL when no sitemap
// exists. Pages are processed sequentially to keep rate limiting and
// frontier ordering simple.
func (s *Scraper) crawlFrontier(ctx context.Context, site *jango.Site, filter *jango.URLFilter) (*jango.ScrapeStats, error) {
	base, err := url.Parse(site.BaseURL)
	if err != nil {
		return nil, jango.Errorf(jango.EINVALID, "invalid base URL: %v", err)
	}
	pathPrefix := base.Path

	maxPages := s.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	extractors := s.extractors(site)
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(jango.DiscoveredLink{
		URL:      site.BaseURL,
		Priority: jango.PriorityNavigation,
		Source:   "seed",
	})

	stats := &jango.ScrapeStats{Discovered: 1}
	processed := 0

	for {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		if processed >= maxPages {
			break
		}
		processed++

		if ctx.Err() != nil {
			break
		}

		linkURL, err := url.Parse(link.URL)
		if err != nil {
			stats.Failed++
			continue
		}
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx, linkURL.Host); err != nil {
				break
			}
		}

		html, err := s.fetch(ctx, link.URL)
		if err != nil {
			stats.Failed++
			continue
		}
		stats.Fetched++

		// Queue same-host links discovered on the page.
		if s.Links != nil {
			if selector := s.Links(link.URL); selector != nil {
				links, err := selector.ExtractLinks(html, link.URL)
				if err == nil {
					for _, discovered := range links {
						if !inScope(discovered.URL, base, pathPrefix) {
							continue
						}
						if !filter.Match(discovered.URL) {
							continue
						}
						if frontier.Push(discovered) {
							stats.Discovered++
						}
					}
				}
			}
		}

		doc, skipped := s.buildDocument(site, extractors, link.URL, html)
		if skipped {
			stats.Skipped++
			continue
		}

		if err := s.Documents.CreateDocument(ctx, doc); err != nil {
			stats.Failed++
			continue
		}
		stats.Stored++
	}

	return stats, nil
}

// processPage fetches and converts one page for the sitemap path.
func (s *Scraper) processPage(ctx context.Context, site *jango.Site, extractors []jango.Extractor, position int, pageURL string) pageResult {
	result := pageResult{position: position, url: pageURL}

	if s.Limiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			result.err = err
			return result
		}
		if err := s.Limiter.Wait(ctx, parsed.Host); err != nil {
			result.err = err
			return result
		}
	}

	html, err := s.fetch(ctx, pageURL)
	if err != nil {
		result.err = err
		return result
	}

	doc, skipped := s.buildDocument(site, extractors, pageURL, html)
	result.doc = doc
	result.skipped = skipped
	return result
}

// buildDocument runs the extraction chain and markdown conversion.
// The skipped result means the page had no extractable content.
func (s *Scraper) buildDocument(site *jango.Site, extractors []jango.Extractor, pageURL, html string) (*jango.Document, bool) {
	extracted := extractFirst(extractors, html)
	if extracted == nil {
		return nil, true
	}

	markdown, err := s.Converter.Convert(extracted.ContentHTML)
	if err != nil || strings.TrimSpace(markdown) == "" {
		return nil, true
	}

	return &jango.Document{
		URL:         pageURL,
		SiteID:      site.ID,
		Title:       extracted.Title,
		PublishDate: extracted.PublishDate,
		Content:     markdown,
		Snippet:     jango.Snippet(markdown),
		Selector:    extracted.Selector,
	}, false
}

// fetch retrieves a page with retry backoff.
func (s *Scraper) fetch(ctx context.Context, pageURL string) (string, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, delays)
}

// extractors returns the site's extraction chain, or nil when none is
// configured.
func (s *Scraper) extractors(site *jango.Site) []jango.Extractor {
	if s.Extractors == nil {
		return nil
	}
	return s.Extractors(site)
}

// extractFirst tries each extractor in order and returns the first
// result with content.
func extractFirst(extractors []jango.Extractor, html string) *jango.ExtractResult {
	for _, extractor := range extractors {
		result, err := extractor.Extract(html)
		if err != nil {
			continue
		}
		if strings.TrimSpace(result.ContentHTML) == "" {
			continue
		}
		return result
	}
	return nil
}

// inScope reports whether a discovered URL stays on the site's host and
// under its base path.
func inScope(rawURL string, base *url.URL, pathPrefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Host != base.Host {
		return false
	}
	return strings.HasPrefix(parsed.Path, pathPrefix)
}

// parseFilter builds a URLFilter from a site's newline-separated filter
// patterns. An empty filter string means no filtering.
func parseFilter(filter string) (*jango.URLFilter, error) {
	if filter == "" {
		return nil, nil
	}

	urlFilter := &jango.URLFilter{}
	for _, pattern := range strings.Split(filter, "\n") {
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, jango.Errorf(jango.EINVALID, "invalid filter pattern %q: %v", pattern, err)
		}
		urlFilter.Include = append(urlFilter.Include, re)
	}
	return urlFilter, nil
}
