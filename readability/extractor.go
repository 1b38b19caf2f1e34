// Package readability extracts the main content of HTML documents with
// go-readability. It is the alternative to the trafilatura extractor for
// article-shaped pages.
package readability

import (
	"strings"

	"github.com/fwojciec/citedoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements citedoc.Extractor at compile time.
var _ citedoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Pages readability
// does not consider readable yield an empty ContentHTML rather than an error.
func (e *Extractor) Extract(rawHTML string) (*citedoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, citedoc.Errorf(citedoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return &citedoc.ExtractResult{}, nil
	}

	return &citedoc.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
