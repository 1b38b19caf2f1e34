//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/citedoc"
	"github.com/fwojciec/citedoc/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements citedoc.Fetcher.
var _ citedoc.Fetcher = (*rod.Fetcher)(nil)

func serveHTML(t *testing.T, delay time.Duration, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	t.Cleanup(func() { fetcher.Close() })

	t.Run("returns rendered HTML", func(t *testing.T) {
		t.Parallel()

		srv := serveHTML(t, 0, `<!DOCTYPE html>
<html><body>
<div id="terms">Loading terms...</div>
<script>document.getElementById('terms').textContent = 'The deposit is refundable within thirty days.';</script>
</body></html>`)

		html, err := fetcher.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "The deposit is refundable within thirty days.")
		assert.NotContains(t, html, "Loading terms...")
	})

	t.Run("honours a canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, "http://example.com")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFetcher_Fetch_TimesOutOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, 500*time.Millisecond, `<html><body>late</body></html>`)

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close(), "second close is a no-op")

	_, err = fetcher.Fetch(context.Background(), "http://example.com")
	require.Error(t, err)
	assert.Equal(t, citedoc.EINVALID, citedoc.ErrorCode(err))
	assert.Contains(t, citedoc.ErrorMessage(err), "closed")
}
