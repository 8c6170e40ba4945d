package main_test

import (
	"context"
	"testing"

	"github.com/msousa/jango"
	main "github.com/msousa/jango/cmd/jango"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIndexer struct {
	fn func(ctx context.Context) (int, error)
}

func (s *stubIndexer) Rebuild(ctx context.Context) (int, error) {
	return s.fn(ctx)
}

func TestIndexCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports indexed chunk count", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newTestDeps()
		deps.Indexer = &stubIndexer{
			fn: func(ctx context.Context) (int, error) { return 42, nil },
		}

		require.NoError(t, (&main.IndexCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "Indexed 42 chunks")
	})

	t.Run("hints at scraping when store is empty", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newTestDeps()
		deps.Indexer = &stubIndexer{
			fn: func(ctx context.Context) (int, error) { return 0, nil },
		}

		require.NoError(t, (&main.IndexCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "jango scrape")
	})

	t.Run("surfaces rebuild errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newTestDeps()
		deps.Indexer = &stubIndexer{
			fn: func(ctx context.Context) (int, error) {
				return 0, jango.Errorf(jango.ECONFLICT, "rebuild already in progress")
			},
		}

		err := (&main.IndexCmd{}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, jango.ECONFLICT, jango.ErrorCode(err))
		assert.Contains(t, stderr.String(), "already in progress")
	})
}
