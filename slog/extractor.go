package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/citedoc"
)

var _ citedoc.TextExtractor = (*LoggingTextExtractor)(nil)

// LoggingTextExtractor wraps a TextExtractor and logs the size of each
// extraction and whether it was flagged uncertain.
type LoggingTextExtractor struct {
	next   citedoc.TextExtractor
	logger *slog.Logger
}

// NewLoggingTextExtractor creates a new LoggingTextExtractor.
func NewLoggingTextExtractor(next citedoc.TextExtractor, logger *slog.Logger) *LoggingTextExtractor {
	return &LoggingTextExtractor{next: next, logger: logger}
}

func (e *LoggingTextExtractor) ExtractText(ctx context.Context, name string, data []byte) (ext *citedoc.Extraction, err error) {
	defer func(begin time.Time) {
		var (
			chars  int
			reason citedoc.UncertaintyReason
		)
		if ext != nil {
			chars, reason = len(ext.Text), ext.Reason
		}
		e.logger.Info("extract",
			"source", name,
			"bytes", len(data),
			"chars", chars,
			"reason", reason,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractText(ctx, name, data)
}
