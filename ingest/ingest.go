// Package ingest turns a list of sources into stored documents. Sources are
// expanded, loaded and extracted concurrently, then saved in input order.
package ingest

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/citedoc"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sources processed at once.
const DefaultConcurrency = 4

// Ingester loads sources into a project's documents.
type Ingester struct {
	Files        citedoc.FileSource
	Fetcher      citedoc.Fetcher
	Sitemaps     citedoc.SitemapReader
	Extractor    citedoc.TextExtractor
	Documents    citedoc.DocumentService
	TokenCounter citedoc.TokenCounter
	RateLimiter  citedoc.DomainLimiter
	Concurrency  int
	RetryDelays  []time.Duration
}

// Result holds the outcome of an ingest run.
type Result struct {
	Saved     int
	Failed    int
	Skipped   int
	Uncertain int
	Bytes     int
	Tokens    int
}

// ProgressEvent reports progress during an ingest run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Reason    citedoc.UncertaintyReason
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting ingest progress.
type ProgressFunc func(event ProgressEvent)

type item struct {
	position   int
	source     string
	extraction *citedoc.Extraction
	hash       string
	err        error
}

// Ingest expands sources and saves one document per extracted item to
// project. Expansion errors abort the run before anything is saved;
// errors loading or extracting a single item are counted in Result.Failed
// and reported through progress. Items whose text duplicates an earlier
// item are skipped.
func (in *Ingester) Ingest(ctx context.Context, project *citedoc.Project, sources []string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	expanded, err := in.expand(ctx, sources)
	if err != nil {
		return nil, err
	}
	if len(expanded) == 0 {
		return &Result{}, nil
	}

	concurrency := in.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(expanded)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan item, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, source := range expanded {
			g.Go(func() error {
				resultCh <- in.process(gctx, i, source)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var (
		completed atomic.Int64
		result    Result
	)
	items := make([]item, total)
	for it := range resultCh {
		n := int(completed.Add(1))
		items[it.position] = it
		if it.err != nil {
			result.Failed++
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, Source: it.source, Error: it.err})
			continue
		}
		progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, Source: it.source, Reason: it.extraction.Reason})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, total)
	position := 0
	for _, it := range items {
		if it.err != nil {
			continue
		}
		if seen[it.hash] {
			result.Skipped++
			continue
		}
		seen[it.hash] = true

		doc := &citedoc.Document{
			ProjectID:       project.ID,
			Source:          it.source,
			Title:           it.extraction.Title,
			Content:         it.extraction.Text,
			Uncertain:       it.extraction.IsUncertain,
			UncertainReason: it.extraction.Reason,
			Position:        position,
		}
		if err := in.Documents.CreateDocument(ctx, doc); err != nil {
			result.Failed++
			progress(ProgressEvent{Type: ProgressFailed, Completed: total, Total: total, Source: it.source, Error: fmt.Errorf("save: %w", err)})
			continue
		}
		position++

		result.Saved++
		result.Bytes += len(doc.Content)
		if doc.Uncertain {
			result.Uncertain++
		}
		if in.TokenCounter != nil {
			if tokens, err := in.TokenCounter.CountTokens(ctx, doc.Content); err == nil {
				result.Tokens += tokens
			}
		}
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return &result, nil
}

// expand resolves sources into the ordered, de-duplicated list of files and
// page URLs to ingest.
func (in *Ingester) expand(ctx context.Context, sources []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(items ...string) {
		for _, s := range items {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}

	for _, source := range sources {
		switch {
		case citedoc.IsSitemap(source):
			if in.Sitemaps == nil {
				return nil, citedoc.Errorf(citedoc.EINVALID, "sitemaps not supported: %s", source)
			}
			urls, err := in.Sitemaps.URLs(ctx, source)
			if err != nil {
				return nil, fmt.Errorf("sitemap %s: %w", source, err)
			}
			add(urls...)
		case citedoc.IsURL(source):
			add(source)
		default:
			files, err := in.Files.Expand(source)
			if err != nil {
				return nil, err
			}
			add(files...)
		}
	}
	return out, nil
}

// process loads and extracts a single source.
func (in *Ingester) process(ctx context.Context, position int, source string) item {
	it := item{position: position, source: source}

	data, err := in.load(ctx, source)
	if err != nil {
		it.err = err
		return it
	}

	ext, err := in.Extractor.ExtractText(ctx, source, data)
	if err != nil {
		it.err = err
		return it
	}

	it.extraction = ext
	it.hash = contentHash(ext.Text)
	return it
}

func (in *Ingester) load(ctx context.Context, source string) ([]byte, error) {
	if !citedoc.IsURL(source) {
		return in.Files.ReadFile(source)
	}
	if in.Fetcher == nil {
		return nil, citedoc.Errorf(citedoc.EINVALID, "URL sources not supported: %s", source)
	}

	if in.RateLimiter != nil {
		u, err := url.Parse(source)
		if err != nil {
			return nil, citedoc.Errorf(citedoc.EINVALID, "invalid URL %q", source)
		}
		if err := in.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	delays := in.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, source, in.Fetcher.Fetch, delays)
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}
