package citedoc

import (
	"fmt"
	"strings"
)

// FormatDocuments formats documents for display. Each document is headed by
// its display name and flagged when its extraction was uncertain. Documents
// are separated by blank lines.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		header := "## Document: " + doc.DisplayName()
		if doc.Uncertain {
			header += fmt.Sprintf(" (uncertain: %s)", doc.UncertainReason)
		}
		parts = append(parts, header+"\n"+doc.Content)
	}

	return strings.Join(parts, "\n\n")
}
