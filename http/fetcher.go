// Package http provides HTTP implementations of jango.Fetcher and
// jango.SitemapService for fetching sector website content.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/msousa/jango"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// userAgent identifies the scraper to target sites.
const userAgent = "jango/1.0 (+https://github.com/msousa/jango)"

// Ensure Fetcher implements jango.Fetcher at compile time.
var _ jango.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// The target sites are server-rendered, so no JavaScript execution is
// needed.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Response status
// codes map to application error codes so the caller can decide whether a
// retry is worthwhile.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", jango.Errorf(jango.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", jango.Errorf(jango.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", jango.Errorf(jango.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// statusError maps an HTTP status code to an application error.
func statusError(status int, url string) error {
	switch {
	case status == http.StatusTooManyRequests:
		return jango.Errorf(jango.ERATELIMITED, "HTTP %d for %s", status, url)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return jango.Errorf(jango.EUNAUTHORIZED, "HTTP %d for %s", status, url)
	case status == http.StatusNotFound:
		return jango.Errorf(jango.ENOTFOUND, "HTTP %d for %s", status, url)
	case status >= 500:
		return jango.Errorf(jango.EUNAVAILABLE, "HTTP %d for %s", status, url)
	default:
		return jango.Errorf(jango.EINTERNAL, "HTTP %d for %s", status, url)
	}
}
