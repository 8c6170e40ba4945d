package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/msousa/jango/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("throttles requests to the same domain", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(100) // 10ms between requests

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "sonangol.co.ao"))
		require.NoError(t, limiter.Wait(context.Background(), "sonangol.co.ao"))
		require.NoError(t, limiter.Wait(context.Background(), "sonangol.co.ao"))

		assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
	})

	t.Run("domains do not share limits", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1) // 1s between requests per domain

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "sonangol.co.ao"))
		require.NoError(t, limiter.Wait(context.Background(), "anpg.co.ao"))
		require.NoError(t, limiter.Wait(context.Background(), "azule-energy.com"))

		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("returns error on canceled context", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0.001)

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, limiter.Wait(ctx, "sonangol.co.ao"))

		cancel()
		assert.Error(t, limiter.Wait(ctx, "sonangol.co.ao"))
	})
}
