package jango

import (
	"context"
	"time"
)

// Document represents one scraped page from a registered site. Documents are
// immutable once stored: re-fetching a page whose content changed creates a
// new version keyed by (URL, ContentHash), while an identical fetch is
// deduplicated.
type Document struct {
	URL         string     `json:"url"`
	SiteID      string     `json:"siteId"`
	Title       string     `json:"title"`
	PublishDate *time.Time `json:"publishDate,omitempty"`
	Content     string     `json:"content"`
	Snippet     string     `json:"snippet"`
	Selector    string     `json:"selector,omitempty"`
	ContentHash string     `json:"contentHash"`
	FetchedAt   time.Time  `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// DocumentService represents a service for managing scraped documents.
type DocumentService interface {
	// CreateDocument stores a new document version. Storing a document with
	// a (URL, ContentHash) pair that already exists is a no-op, making
	// re-ingestion idempotent.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocuments retrieves documents matching the filter,
	// most recently fetched first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// CountDocuments returns the total number of stored document versions.
	CountDocuments(ctx context.Context) (int, error)

	// DeleteDocumentsBySite removes all documents for a site.
	DeleteDocumentsBySite(ctx context.Context, siteID string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	URL    *string `json:"url"`
	SiteID *string `json:"siteId"`

	// Keyword filters documents whose title or content contains the word
	// (case-insensitive). Used by the reduced serving tier to select raw
	// excerpts when no vector index is available.
	Keyword *string `json:"keyword"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
