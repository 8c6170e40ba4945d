package goquery

import "github.com/msousa/jango"

// Ensure GenericSelector implements jango.LinkSelector at compile time.
var _ jango.LinkSelector = (*GenericSelector)(nil)

// GenericSelector implements link extraction using universal CSS selectors
// that work across corporate websites. News and press-release listings get
// the highest priority since they carry the sector figures worth indexing.
type GenericSelector struct{}

// NewGenericSelector creates a new GenericSelector.
func NewGenericSelector() *GenericSelector {
	return &GenericSelector{}
}

// Name returns the selector's identifier.
func (s *GenericSelector) Name() string {
	return "generic"
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority version.
// External links (different host than baseURL) are filtered out.
func (s *GenericSelector) ExtractLinks(html string, baseURL string) ([]jango.DiscoveredLink, error) {
	return ExtractLinksWithConfigs(html, baseURL, []SelectorConfig{
		{
			Selector: ".news a[href], .noticias a[href], .press a[href], .imprensa a[href], .media a[href], .publicacoes a[href]",
			Priority: jango.PriorityNews,
			Source:   "news",
		},
		{
			Selector: "main a[href], article a[href], .content a[href], .conteudo a[href]",
			Priority: jango.PriorityContent,
			Source:   "content",
		},
		{
			Selector: "nav a[href], [role=\"navigation\"] a[href], .nav a[href], .menu a[href], .navbar a[href]",
			Priority: jango.PriorityNavigation,
			Source:   "nav",
		},
		{
			Selector: "footer a[href], .footer a[href]",
			Priority: jango.PriorityFooter,
			Source:   "footer",
		},
	})
}
