package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/citedoc"
)

var _ citedoc.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker and logs each question.
type LoggingAsker struct {
	next   citedoc.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next citedoc.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the number of citations
// returned.
func (a *LoggingAsker) Ask(ctx context.Context, projectID, question string) (answer *citedoc.Answer, err error) {
	defer func(begin time.Time) {
		var citations int
		if answer != nil {
			citations = len(answer.Citations)
		}
		a.logger.Info("ask",
			"project", projectID,
			"question", question,
			"citations", citations,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, projectID, question)
}
