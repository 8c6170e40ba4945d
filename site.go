package jango

import (
	"context"
	"time"
)

// Site represents a sector website registered for scraping, e.g.
// sonangol.co.ao or anpg.co.ao.
type Site struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BaseURL string `json:"baseUrl"`

	// ContentSelector is an optional CSS selector for the page region
	// holding the main content. When empty, generic extraction is used.
	ContentSelector string `json:"contentSelector,omitempty"`

	// Filter holds newline-separated regex patterns limiting which URLs
	// are scraped. Empty means no filtering.
	Filter string `json:"filter,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the site contains invalid fields.
func (s *Site) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "site name required")
	}
	if s.BaseURL == "" {
		return Errorf(EINVALID, "site base URL required")
	}
	return nil
}

// SiteService represents a service for managing registered sites.
type SiteService interface {
	// CreateSite registers a new site.
	CreateSite(ctx context.Context, site *Site) error

	// FindSiteByID retrieves a site by ID.
	// Returns ENOTFOUND if the site does not exist.
	FindSiteByID(ctx context.Context, id string) (*Site, error)

	// FindSites retrieves sites matching the filter.
	FindSites(ctx context.Context, filter SiteFilter) ([]*Site, error)

	// UpdateSite updates an existing site.
	// Returns ENOTFOUND if the site does not exist.
	UpdateSite(ctx context.Context, id string, upd SiteUpdate) (*Site, error)

	// DeleteSite permanently removes a site and all associated documents.
	// Returns ENOTFOUND if the site does not exist.
	DeleteSite(ctx context.Context, id string) error
}

// SiteFilter represents a filter for FindSites.
type SiteFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SiteUpdate represents fields that can be updated on a site.
type SiteUpdate struct {
	Name            *string `json:"name"`
	BaseURL         *string `json:"baseUrl"`
	ContentSelector *string `json:"contentSelector"`
	Filter          *string `json:"filter"`
}
