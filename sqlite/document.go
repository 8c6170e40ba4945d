package sqlite

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/msousa/jango"
)

// Compile-time interface verification.
var _ jango.DocumentService = (*DocumentService)(nil)

// DocumentService implements jango.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateDocument stores a new document version keyed by (url, content_hash).
// Re-ingesting an identical document is a no-op.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *jango.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if doc.ContentHash == "" {
		doc.ContentHash = hashContent(doc.Content)
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now().UTC()
	}

	var publishDate any
	if doc.PublishDate != nil {
		publishDate = doc.PublishDate.Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (url, site_id, title, publish_date, content, snippet, selector, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url, content_hash) DO NOTHING
	`, doc.URL, doc.SiteID, doc.Title, publishDate, doc.Content, doc.Snippet, doc.Selector,
		doc.ContentHash, doc.FetchedAt.Format(time.RFC3339))

	return err
}

// FindDocuments retrieves documents matching the filter,
// most recently fetched first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter jango.DocumentFilter) ([]*jango.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT url, site_id, title, publish_date, content, snippet, selector, content_hash, fetched_at FROM documents WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.SiteID != nil {
		query.WriteString(" AND site_id = ?")
		args = append(args, *filter.SiteID)
	}
	if filter.Keyword != nil {
		query.WriteString(" AND (title LIKE ? COLLATE NOCASE OR content LIKE ? COLLATE NOCASE)")
		pattern := "%" + *filter.Keyword + "%"
		args = append(args, pattern, pattern)
	}

	query.WriteString(" ORDER BY fetched_at DESC, url ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*jango.Document
	for rows.Next() {
		var doc jango.Document
		var publishDate *string
		var fetchedAt string

		if err := rows.Scan(&doc.URL, &doc.SiteID, &doc.Title, &publishDate,
			&doc.Content, &doc.Snippet, &doc.Selector, &doc.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}
		if publishDate != nil {
			t, err := parseRFC3339(*publishDate, "publish_date")
			if err != nil {
				return nil, err
			}
			doc.PublishDate = &t
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// CountDocuments returns the total number of stored document versions.
func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n)
	return n, err
}

// DeleteDocumentsBySite removes all documents for a site.
func (s *DocumentService) DeleteDocumentsBySite(ctx context.Context, siteID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE site_id = ?", siteID)
	return err
}
