package mock

import (
	"context"

	"github.com/msousa/jango"
)

var _ jango.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of jango.IndexService.
type IndexService struct {
	BuildFn  func(ctx context.Context, chunks []*jango.Chunk) error
	SearchFn func(ctx context.Context, embedding []float32, limit int) ([]*jango.SearchResult, error)
	LenFn    func(ctx context.Context) (int, error)
	StateFn  func(ctx context.Context) jango.IndexState
}

func (s *IndexService) Build(ctx context.Context, chunks []*jango.Chunk) error {
	return s.BuildFn(ctx, chunks)
}

func (s *IndexService) Search(ctx context.Context, embedding []float32, limit int) ([]*jango.SearchResult, error) {
	return s.SearchFn(ctx, embedding, limit)
}

func (s *IndexService) Len(ctx context.Context) (int, error) {
	return s.LenFn(ctx)
}

func (s *IndexService) State(ctx context.Context) jango.IndexState {
	return s.StateFn(ctx)
}
