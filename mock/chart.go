package mock

import (
	"context"

	"github.com/msousa/jango"
)

var _ jango.ChartRenderer = (*ChartRenderer)(nil)

// ChartRenderer is a mock implementation of jango.ChartRenderer.
type ChartRenderer struct {
	RenderFn func(series *jango.Series) ([]byte, error)
}

func (r *ChartRenderer) Render(series *jango.Series) ([]byte, error) {
	return r.RenderFn(series)
}

var _ jango.ChartStore = (*ChartStore)(nil)

// ChartStore is a mock implementation of jango.ChartStore.
type ChartStore struct {
	SaveFn func(ctx context.Context, png []byte) (string, error)
}

func (s *ChartStore) Save(ctx context.Context, png []byte) (string, error) {
	return s.SaveFn(ctx, png)
}
