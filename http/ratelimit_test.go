package http_test

import (
	"context"
	"testing"
	"time"

	navsearchhttp "github.com/fwojciec/navsearch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := navsearchhttp.NewDomainLimiter(10, 1)

		start := time.Now()
		err := limiter.Wait(context.Background(), "docs.example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("rate limits requests to same host", func(t *testing.T) {
		t.Parallel()

		limiter := navsearchhttp.NewDomainLimiter(10, 1) // 100ms between requests

		require.NoError(t, limiter.Wait(context.Background(), "docs.example.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "docs.example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("burst allows several immediate requests", func(t *testing.T) {
		t.Parallel()

		limiter := navsearchhttp.NewDomainLimiter(1, 5)

		start := time.Now()
		for range 5 {
			require.NoError(t, limiter.Wait(context.Background(), "docs.example.com"))
		}

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("different hosts have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := navsearchhttp.NewDomainLimiter(10, 0)

		require.NoError(t, limiter.Wait(context.Background(), "docs.example.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "api.example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different host should not wait")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := navsearchhttp.NewDomainLimiter(1, 1)
		require.NoError(t, limiter.Wait(context.Background(), "docs.example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "docs.example.com")
		assert.Error(t, err, "should fail when context times out")
	})
}
