package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/msousa/jango"
)

// Ensure Extractor implements jango.Extractor at compile time.
var _ jango.Extractor = (*Extractor)(nil)

// fallbackSelectors are tried in order when no site-specific selector is
// configured or the configured one matches nothing.
var fallbackSelectors = []string{"main", "article", ".content", ".conteudo", "#content"}

// Extractor extracts main content from a page using CSS selectors. The
// selector that produced the content is recorded so citations can point at
// the exact page region.
type Extractor struct {
	contentSelector string
}

// NewExtractor creates an Extractor. The contentSelector comes from the
// site's registration and may be empty, in which case common content
// containers are tried.
func NewExtractor(contentSelector string) *Extractor {
	return &Extractor{contentSelector: contentSelector}
}

// Extract processes raw HTML and returns the main content with the
// selector it was found under. Boilerplate elements are removed from the
// selected region.
func (e *Extractor) Extract(html string) (*jango.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, jango.Errorf(jango.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &jango.ExtractResult{
		Title:       extractTitle(doc),
		PublishDate: extractPublishDate(doc),
	}

	selectors := fallbackSelectors
	if e.contentSelector != "" {
		selectors = append([]string{e.contentSelector}, fallbackSelectors...)
	}

	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		sel.Find("script, style, nav, header, footer, aside, form").Remove()

		content, err := goquery.OuterHtml(sel)
		if err != nil {
			continue
		}
		if strings.TrimSpace(sel.Text()) == "" {
			continue
		}
		result.ContentHTML = content
		result.Selector = selector
		return result, nil
	}

	return nil, jango.Errorf(jango.ENOTFOUND, "no content found")
}

// extractTitle pulls the page title from og:title or the title element.
func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractPublishDate pulls a publication date from common metadata, or nil
// when none is present.
func extractPublishDate(doc *goquery.Document) *time.Time {
	candidates := []string{}
	if v, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		candidates = append(candidates, v)
	}
	if v, ok := doc.Find(`meta[name="date"]`).Attr("content"); ok {
		candidates = append(candidates, v)
	}
	if v, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		candidates = append(candidates, v)
	}

	for _, c := range candidates {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, strings.TrimSpace(c)); err == nil {
				return &t
			}
		}
	}
	return nil
}
