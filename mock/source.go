package mock

import (
	"context"

	"github.com/fwojciec/citedoc"
)

var (
	_ citedoc.FileSource    = (*FileSource)(nil)
	_ citedoc.DomainLimiter = (*DomainLimiter)(nil)
	_ citedoc.SitemapReader = (*SitemapReader)(nil)
)

// FileSource is a mock implementation of citedoc.FileSource.
type FileSource struct {
	ExpandFn   func(path string) ([]string, error)
	ReadFileFn func(path string) ([]byte, error)
}

func (s *FileSource) Expand(path string) ([]string, error) {
	return s.ExpandFn(path)
}

func (s *FileSource) ReadFile(path string) ([]byte, error) {
	return s.ReadFileFn(path)
}

// DomainLimiter is a mock implementation of citedoc.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

// SitemapReader is a mock implementation of citedoc.SitemapReader.
type SitemapReader struct {
	URLsFn func(ctx context.Context, sitemapURL string) ([]string, error)
}

func (r *SitemapReader) URLs(ctx context.Context, sitemapURL string) ([]string, error) {
	return r.URLsFn(ctx, sitemapURL)
}
