package goquery

import (
	"net/url"
	"strings"

	"github.com/msousa/jango"
)

// Ensure SiteSelector implements jango.LinkSelector at compile time.
var _ jango.LinkSelector = (*SiteSelector)(nil)

// SiteSelector extracts links using a per-site selector profile, tuned to
// the markup of a specific sector website.
type SiteSelector struct {
	name    string
	configs []SelectorConfig
}

// Name returns the selector's identifier.
func (s *SiteSelector) Name() string {
	return s.name
}

// ExtractLinks parses HTML and returns discovered links with priority.
func (s *SiteSelector) ExtractLinks(html string, baseURL string) ([]jango.DiscoveredLink, error) {
	return ExtractLinksWithConfigs(html, baseURL, s.configs)
}

// siteProfiles maps registrable host suffixes to tuned selector profiles.
var siteProfiles = map[string]*SiteSelector{
	"sonangol.co.ao": {
		name: "sonangol",
		configs: []SelectorConfig{
			{Selector: ".noticias a[href], .sala-de-imprensa a[href]", Priority: jango.PriorityNews, Source: "news"},
			{Selector: "main a[href], .conteudo a[href]", Priority: jango.PriorityContent, Source: "content"},
			{Selector: "nav a[href], .menu-principal a[href]", Priority: jango.PriorityNavigation, Source: "nav"},
		},
	},
	"anpg.co.ao": {
		name: "anpg",
		configs: []SelectorConfig{
			{Selector: ".publicacoes a[href], .relatorios a[href], .noticias a[href]", Priority: jango.PriorityNews, Source: "news"},
			{Selector: "main a[href], article a[href]", Priority: jango.PriorityContent, Source: "content"},
			{Selector: "nav a[href]", Priority: jango.PriorityNavigation, Source: "nav"},
		},
	},
	"azule-energy.com": {
		name: "azule",
		configs: []SelectorConfig{
			{Selector: ".media a[href], .press-releases a[href], .news a[href]", Priority: jango.PriorityNews, Source: "news"},
			{Selector: "main a[href], article a[href]", Priority: jango.PriorityContent, Source: "content"},
			{Selector: "nav a[href], .navbar a[href]", Priority: jango.PriorityNavigation, Source: "nav"},
		},
	},
	"totalenergies.com": {
		name: "totalenergies",
		configs: []SelectorConfig{
			{Selector: ".news a[href], .press a[href]", Priority: jango.PriorityNews, Source: "news"},
			{Selector: "main a[href], article a[href], .content a[href]", Priority: jango.PriorityContent, Source: "content"},
			{Selector: "nav a[href]", Priority: jango.PriorityNavigation, Source: "nav"},
		},
	},
}

// SelectorForURL returns the tuned selector for the URL's host, falling
// back to the generic selector for unrecognized sites.
func SelectorForURL(rawURL string) jango.LinkSelector {
	u, err := url.Parse(rawURL)
	if err != nil {
		return NewGenericSelector()
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	for suffix, sel := range siteProfiles {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return sel
		}
	}
	return NewGenericSelector()
}
