package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/msousa/jango"
)

// Ensure LoggingScraper implements jango.Scraper.
var _ jango.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with per-site run logging.
type LoggingScraper struct {
	next   jango.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next jango.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped Scraper and logs the run statistics.
func (s *LoggingScraper) Scrape(ctx context.Context, site *jango.Site) (stats *jango.ScrapeStats, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"site", site.Name,
			"url", site.BaseURL,
			"duration", time.Since(begin),
			"err", err,
		}
		if stats != nil {
			attrs = append(attrs,
				"discovered", stats.Discovered,
				"stored", stats.Stored,
				"failed", stats.Failed,
				"skipped", stats.Skipped,
			)
		}
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, site)
}
