package citedoc

import "context"

// TokenCounter estimates how much of a model's context window text uses.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
