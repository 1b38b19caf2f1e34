package citedoc

import "context"

// UncertaintyReason explains why extracted text may not faithfully
// represent its source.
type UncertaintyReason string

// Uncertainty reasons, in decreasing order of precedence.
const (
	ReasonNone          UncertaintyReason = "none"
	ReasonLowConfidence UncertaintyReason = "low_confidence"
	ReasonImageDetected UncertaintyReason = "image_detected"
	ReasonComplexLayout UncertaintyReason = "complex_layout"
)

// MinTextBytes is the amount of text below which a document that embeds
// images is flagged with ReasonImageDetected.
const MinTextBytes = 200

// Valid reports whether r is a known reason.
func (r UncertaintyReason) Valid() bool {
	switch r {
	case ReasonNone, ReasonLowConfidence, ReasonImageDetected, ReasonComplexLayout:
		return true
	}
	return false
}

// Uncertain reports whether r flags the extraction as uncertain.
func (r UncertaintyReason) Uncertain() bool {
	return r != "" && r != ReasonNone
}

// Extraction is the plain text extracted from a source document.
type Extraction struct {
	Title       string            `json:"title"`
	Text        string            `json:"text"`
	IsUncertain bool              `json:"isUncertain"`
	Reason      UncertaintyReason `json:"reason"`
}

// TextExtractor converts a source file into plain text.
type TextExtractor interface {
	// ExtractText detects the format of data from its name and content and
	// returns the extracted text. Returns EINVALID for unsupported formats.
	ExtractText(ctx context.Context, name string, data []byte) (*Extraction, error)
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// Inspector examines HTML for content that text extraction cannot capture
// faithfully. It returns ReasonNone when nothing was found.
type Inspector interface {
	Inspect(html string) UncertaintyReason
}
