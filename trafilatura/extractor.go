// Package trafilatura extracts the main content of HTML documents with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/citedoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements citedoc.Extractor at compile time.
var _ citedoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
//
// Images and tables are kept in the extracted content so that downstream
// inspection can tell when a page carries most of its meaning outside
// plain text.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
			IncludeImages:  true,
		},
	}
}

// Extract processes raw HTML and returns the main content. An empty
// ContentHTML with a nil error means trafilatura found no main content.
func (e *Extractor) Extract(rawHTML string) (*citedoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, citedoc.Errorf(citedoc.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		// trafilatura reports "nothing extracted" as an error; callers
		// treat it as empty content and fall back.
		return &citedoc.ExtractResult{}, nil
	}

	out := &citedoc.ExtractResult{Title: strings.TrimSpace(result.Metadata.Title)}
	if result.ContentNode != nil {
		if out.ContentHTML, err = renderNode(result.ContentNode); err != nil {
			return nil, fmt.Errorf("render content: %w", err)
		}
	}
	return out, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
