package ingest_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/citedoc"
	"github.com/fwojciec/citedoc/ingest"
	"github.com/fwojciec/citedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newIngester returns an Ingester whose files are the given map and whose
// extractor returns each file's content as its text.
func newIngester(files map[string]string, saved *[]*citedoc.Document) *ingest.Ingester {
	return &ingest.Ingester{
		Files: &mock.FileSource{
			ExpandFn: func(path string) ([]string, error) {
				if _, ok := files[path]; ok {
					return []string{path}, nil
				}
				var out []string
				for name := range files {
					if strings.HasPrefix(name, path+"/") {
						out = append(out, name)
					}
				}
				if len(out) == 0 {
					return nil, citedoc.Errorf(citedoc.ENOTFOUND, "path not found: %s", path)
				}
				slices.Sort(out)
				return out, nil
			},
			ReadFileFn: func(path string) ([]byte, error) {
				content, ok := files[path]
				if !ok {
					return nil, citedoc.Errorf(citedoc.ENOTFOUND, "file not found: %s", path)
				}
				return []byte(content), nil
			},
		},
		Extractor: &mock.TextExtractor{
			ExtractTextFn: func(_ context.Context, name string, data []byte) (*citedoc.Extraction, error) {
				return &citedoc.Extraction{Title: name, Text: string(data), Reason: citedoc.ReasonNone}, nil
			},
		},
		Documents: &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, doc *citedoc.Document) error {
				*saved = append(*saved, doc)
				return nil
			},
		},
		Concurrency: 4,
		RetryDelays: []time.Duration{0},
	}
}

var project = &citedoc.Project{ID: "proj-1", Name: "reports"}

func TestIngester_Ingest(t *testing.T) {
	t.Parallel()

	t.Run("returns zero result when nothing expands", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(map[string]string{}, &saved)
		in.Files = &mock.FileSource{
			ExpandFn: func(string) ([]string, error) { return nil, nil },
		}
		var events []ingest.ProgressEvent

		result, err := in.Ingest(context.Background(), project, []string{"empty"}, func(e ingest.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Equal(t, &ingest.Result{}, result)
		assert.Empty(t, events)
		assert.Empty(t, saved)
	})

	t.Run("saves documents in input order regardless of completion order", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(map[string]string{
			"docs/a.md": "alpha",
			"docs/b.md": "bravo",
			"c.txt":     "charlie",
		}, &saved)
		in.Extractor = &mock.TextExtractor{
			ExtractTextFn: func(_ context.Context, name string, data []byte) (*citedoc.Extraction, error) {
				if name == "docs/a.md" {
					time.Sleep(20 * time.Millisecond)
				}
				return &citedoc.Extraction{Title: name, Text: string(data), Reason: citedoc.ReasonNone}, nil
			},
		}

		result, err := in.Ingest(context.Background(), project, []string{"docs", "c.txt"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Saved)
		assert.Equal(t, len("alphabravocharlie"), result.Bytes)
		require.Len(t, saved, 3)
		for i, want := range []string{"docs/a.md", "docs/b.md", "c.txt"} {
			assert.Equal(t, want, saved[i].Source)
			assert.Equal(t, i, saved[i].Position)
			assert.Equal(t, "proj-1", saved[i].ProjectID)
		}
		assert.Equal(t, "alpha", saved[0].Content)
	})

	t.Run("skips sources repeated in the input", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(map[string]string{"a.md": "alpha"}, &saved)

		result, err := in.Ingest(context.Background(), project, []string{"a.md", "a.md"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 0, result.Skipped)
		assert.Len(t, saved, 1)
	})

	t.Run("skips items whose text duplicates an earlier item", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(map[string]string{
			"a.md":      "same text",
			"b.md":      "other text",
			"a-copy.md": "same text",
		}, &saved)

		result, err := in.Ingest(context.Background(), project, []string{"a.md", "b.md", "a-copy.md"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 1, result.Skipped)
		require.Len(t, saved, 2)
		assert.Equal(t, "a.md", saved[0].Source)
		assert.Equal(t, "b.md", saved[1].Source)
		assert.Equal(t, 1, saved[1].Position)
	})

	t.Run("counts failures and keeps going", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(map[string]string{
			"good.md":   "fine",
			"scan.pdf":  "%PDF",
			"second.md": "also fine",
		}, &saved)
		in.Extractor = &mock.TextExtractor{
			ExtractTextFn: func(_ context.Context, name string, data []byte) (*citedoc.Extraction, error) {
				if strings.HasSuffix(name, ".pdf") {
					return nil, citedoc.Errorf(citedoc.EINVALID, "unsupported format: %s", name)
				}
				return &citedoc.Extraction{Text: string(data), Reason: citedoc.ReasonNone}, nil
			},
		}
		var failed []ingest.ProgressEvent

		result, err := in.Ingest(context.Background(), project, []string{"good.md", "scan.pdf", "second.md"}, func(e ingest.ProgressEvent) {
			if e.Type == ingest.ProgressFailed {
				failed = append(failed, e)
			}
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, failed, 1)
		assert.Equal(t, "scan.pdf", failed[0].Source)
		assert.Equal(t, citedoc.EINVALID, citedoc.ErrorCode(failed[0].Error))
		assert.Equal(t, 1, saved[1].Position, "positions stay contiguous")
	})

	t.Run("counts failed saves", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(map[string]string{"a.md": "alpha"}, &saved)
		in.Documents = &mock.DocumentService{
			CreateDocumentFn: func(context.Context, *citedoc.Document) error {
				return errors.New("disk full")
			},
		}

		var failed []ingest.ProgressEvent
		result, err := in.Ingest(context.Background(), project, []string{"a.md"}, func(e ingest.ProgressEvent) {
			if e.Type == ingest.ProgressFailed {
				failed = append(failed, e)
			}
		})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Saved)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, failed, 1)
		assert.Equal(t, "a.md", failed[0].Source)
		assert.EqualError(t, failed[0].Error, "save: disk full")
	})

	t.Run("aborts before saving when a source cannot be expanded", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(map[string]string{"a.md": "alpha"}, &saved)

		_, err := in.Ingest(context.Background(), project, []string{"a.md", "missing"}, nil)

		require.Error(t, err)
		assert.Equal(t, citedoc.ENOTFOUND, citedoc.ErrorCode(err))
		assert.Empty(t, saved)
	})

	t.Run("records uncertainty and counts tokens", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(map[string]string{"chart.html": "<img>", "plain.md": "twelve chars"}, &saved)
		in.Extractor = &mock.TextExtractor{
			ExtractTextFn: func(_ context.Context, name string, data []byte) (*citedoc.Extraction, error) {
				if name == "chart.html" {
					return &citedoc.Extraction{Text: "Q3", IsUncertain: true, Reason: citedoc.ReasonImageDetected}, nil
				}
				return &citedoc.Extraction{Text: string(data), Reason: citedoc.ReasonNone}, nil
			},
		}
		in.TokenCounter = &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) {
				return len(text) / 2, nil
			},
		}

		result, err := in.Ingest(context.Background(), project, []string{"chart.html", "plain.md"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Uncertain)
		assert.Equal(t, 1+6, result.Tokens)
		require.Len(t, saved, 2)
		assert.True(t, saved[0].Uncertain)
		assert.Equal(t, citedoc.ReasonImageDetected, saved[0].UncertainReason)
		assert.False(t, saved[1].Uncertain)
	})

	t.Run("reports progress for every item", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(map[string]string{"a.md": "a", "b.md": "b"}, &saved)
		var events []ingest.ProgressEvent

		_, err := in.Ingest(context.Background(), project, []string{"a.md", "b.md"}, func(e ingest.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, ingest.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, ingest.ProgressCompleted, events[1].Type)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, ingest.ProgressCompleted, events[2].Type)
		assert.Equal(t, 2, events[2].Completed)
		assert.Equal(t, ingest.ProgressFinished, events[3].Type)
	})

	t.Run("fetches URLs with per-host rate limiting", func(t *testing.T) {
		t.Parallel()

		var (
			saved   []*citedoc.Document
			mu      sync.Mutex
			domains []string
		)
		in := newIngester(nil, &saved)
		in.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>" + url + "</html>", nil
			},
		}
		in.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				mu.Lock()
				defer mu.Unlock()
				domains = append(domains, domain)
				return nil
			},
		}

		result, err := in.Ingest(context.Background(), project, []string{
			"https://example.com/a",
			"https://docs.example.org/b",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.ElementsMatch(t, []string{"example.com", "docs.example.org"}, domains)
		assert.Equal(t, "https://example.com/a", saved[0].Source)
		assert.Equal(t, "<html>https://example.com/a</html>", saved[0].Content)
	})

	t.Run("retries transient fetch errors", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		var calls atomic.Int32
		in := newIngester(nil, &saved)
		in.RetryDelays = []time.Duration{0, 0}
		in.Fetcher = &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				if calls.Add(1) < 3 {
					return "", errors.New("connection reset")
				}
				return "<p>ok</p>", nil
			},
		}

		result, err := in.Ingest(context.Background(), project, []string{"https://example.com/"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry missing pages", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		var calls atomic.Int32
		in := newIngester(nil, &saved)
		in.RetryDelays = []time.Duration{0, 0, 0}
		in.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				calls.Add(1)
				return "", citedoc.Errorf(citedoc.ENOTFOUND, "page not found: %s", url)
			},
		}

		result, err := in.Ingest(context.Background(), project, []string{"https://example.com/gone"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("fails URL sources without a fetcher", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(nil, &saved)

		result, err := in.Ingest(context.Background(), project, []string{"https://example.com/"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("expands sitemaps into their pages", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(nil, &saved)
		in.Sitemaps = &mock.SitemapReader{
			URLsFn: func(_ context.Context, sitemapURL string) ([]string, error) {
				assert.Equal(t, "https://example.com/sitemap.xml", sitemapURL)
				return []string{"https://example.com/one", "https://example.com/two"}, nil
			},
		}
		in.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return url, nil
			},
		}

		result, err := in.Ingest(context.Background(), project, []string{"https://example.com/sitemap.xml"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, "https://example.com/one", saved[0].Source)
		assert.Equal(t, "https://example.com/two", saved[1].Source)
	})

	t.Run("rejects sitemaps without a reader", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(nil, &saved)

		_, err := in.Ingest(context.Background(), project, []string{"https://example.com/sitemap.xml"}, nil)

		require.Error(t, err)
		assert.Equal(t, citedoc.EINVALID, citedoc.ErrorCode(err))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		var saved []*citedoc.Document
		in := newIngester(map[string]string{"a.md": "alpha"}, &saved)
		ctx, cancel := context.WithCancel(context.Background())
		in.Extractor = &mock.TextExtractor{
			ExtractTextFn: func(ctx context.Context, _ string, _ []byte) (*citedoc.Extraction, error) {
				cancel()
				return nil, ctx.Err()
			},
		}

		_, err := in.Ingest(ctx, project, []string{"a.md"}, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, saved)
	})
}
