// Package mock provides function-field mock implementations of the
// domain interfaces for use in tests.
package mock

import (
	"context"

	"github.com/msousa/jango"
)

var _ jango.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of jango.DocumentService.
type DocumentService struct {
	CreateDocumentFn        func(ctx context.Context, doc *jango.Document) error
	FindDocumentsFn         func(ctx context.Context, filter jango.DocumentFilter) ([]*jango.Document, error)
	CountDocumentsFn        func(ctx context.Context) (int, error)
	DeleteDocumentsBySiteFn func(ctx context.Context, siteID string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *jango.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter jango.DocumentFilter) ([]*jango.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	return s.CountDocumentsFn(ctx)
}

func (s *DocumentService) DeleteDocumentsBySite(ctx context.Context, siteID string) error {
	return s.DeleteDocumentsBySiteFn(ctx, siteID)
}
