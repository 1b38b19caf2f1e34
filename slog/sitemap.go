package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/citedoc"
)

// Ensure LoggingSitemapReader implements citedoc.SitemapReader.
var _ citedoc.SitemapReader = (*LoggingSitemapReader)(nil)

// LoggingSitemapReader wraps a SitemapReader with logging.
type LoggingSitemapReader struct {
	next   citedoc.SitemapReader
	logger *slog.Logger
}

// NewLoggingSitemapReader creates a new LoggingSitemapReader.
func NewLoggingSitemapReader(next citedoc.SitemapReader, logger *slog.Logger) *LoggingSitemapReader {
	return &LoggingSitemapReader{next: next, logger: logger}
}

// URLs delegates to the wrapped reader and logs the operation.
func (r *LoggingSitemapReader) URLs(ctx context.Context, sitemapURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("sitemap",
			"url", sitemapURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.URLs(ctx, sitemapURL)
}
