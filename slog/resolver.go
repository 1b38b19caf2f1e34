package slog

import (
	"log/slog"

	"github.com/fwojciec/citedoc"
)

var _ citedoc.AnchorResolver = (*LoggingResolver)(nil)

// LoggingResolver wraps an AnchorResolver and logs at debug level which
// tier located each snippet.
type LoggingResolver struct {
	next   citedoc.AnchorResolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next citedoc.AnchorResolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

func (r *LoggingResolver) ResolveAnchor(text, snippet string, anchors citedoc.Anchors) (citedoc.Match, bool) {
	m, ok := r.next.ResolveAnchor(text, snippet, anchors)
	if ok {
		r.logger.Debug("resolve", "snippet", snippet, "found", true, "tier", m.Tier, "start", m.Start, "length", m.Length)
	} else {
		r.logger.Debug("resolve", "snippet", snippet, "found", false)
	}
	return m, ok
}
