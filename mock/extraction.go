package mock

import (
	"context"

	"github.com/fwojciec/citedoc"
)

var (
	_ citedoc.TextExtractor = (*TextExtractor)(nil)
	_ citedoc.Extractor     = (*Extractor)(nil)
	_ citedoc.Converter     = (*Converter)(nil)
	_ citedoc.Inspector     = (*Inspector)(nil)
)

// TextExtractor is a mock implementation of citedoc.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(ctx context.Context, name string, data []byte) (*citedoc.Extraction, error)
}

func (e *TextExtractor) ExtractText(ctx context.Context, name string, data []byte) (*citedoc.Extraction, error) {
	return e.ExtractTextFn(ctx, name, data)
}

// Extractor is a mock implementation of citedoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*citedoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*citedoc.ExtractResult, error) {
	return e.ExtractFn(html)
}

// Converter is a mock implementation of citedoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// Inspector is a mock implementation of citedoc.Inspector.
type Inspector struct {
	InspectFn func(html string) citedoc.UncertaintyReason
}

func (i *Inspector) Inspect(html string) citedoc.UncertaintyReason {
	return i.InspectFn(html)
}
