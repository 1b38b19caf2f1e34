package mock

import (
	"context"

	"github.com/fwojciec/citedoc"
)

var _ citedoc.Asker = (*Asker)(nil)

// Asker is a mock implementation of citedoc.Asker.
type Asker struct {
	AskFn func(ctx context.Context, projectID, question string) (*citedoc.Answer, error)
}

func (a *Asker) Ask(ctx context.Context, projectID, question string) (*citedoc.Answer, error) {
	return a.AskFn(ctx, projectID, question)
}
