package citedoc

import "context"

// Answer is a natural language answer and the passages that support it.
type Answer struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}

// Asker provides natural language question answering over documents.
type Asker interface {
	// Ask answers a natural language question about a project's documents.
	// Returns ENOTFOUND if the project has no documents.
	Ask(ctx context.Context, projectID string, question string) (*Answer, error)
}
