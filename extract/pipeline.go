// Package extract turns raw source documents into plain text, flagging
// results that may not faithfully represent their source.
package extract

import (
	"bytes"
	"context"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/citedoc"
)

var (
	bom           = []byte("\xef\xbb\xbf")
	markdownImage = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	markdownH1    = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t#]*$`)
)

// Ensure Pipeline implements citedoc.TextExtractor at compile time.
var _ citedoc.TextExtractor = (*Pipeline)(nil)

// Pipeline implements citedoc.TextExtractor. HTML documents go through the
// Extractor, Converter and Inspector; text and markdown are normalized
// directly.
type Pipeline struct {
	Extractor citedoc.Extractor
	Converter citedoc.Converter

	// Inspector is optional. When nil, HTML is only flagged for low
	// confidence.
	Inspector citedoc.Inspector
}

// NewPipeline creates a new Pipeline.
func NewPipeline(extractor citedoc.Extractor, converter citedoc.Converter, inspector citedoc.Inspector) *Pipeline {
	return &Pipeline{
		Extractor: extractor,
		Converter: converter,
		Inspector: inspector,
	}
}

// ExtractText implements citedoc.TextExtractor.
func (p *Pipeline) ExtractText(ctx context.Context, name string, data []byte) (*citedoc.Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch format := citedoc.DetectFormat(name, data); format {
	case citedoc.FormatHTML:
		return p.extractHTML(name, data)
	case citedoc.FormatText:
		return extractPlain(name, data)
	default:
		return nil, citedoc.Errorf(citedoc.EINVALID, "unsupported format: %s", name)
	}
}

func (p *Pipeline) extractHTML(name string, data []byte) (*citedoc.Extraction, error) {
	if !utf8.Valid(data) {
		return nil, citedoc.Errorf(citedoc.EINVALID, "%s is not valid UTF-8", name)
	}
	html := string(bytes.TrimPrefix(data, bom))
	if strings.TrimSpace(html) == "" {
		return lowConfidence(baseTitle(name)), nil
	}

	res, err := p.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	reason := citedoc.ReasonNone
	content := res.ContentHTML
	if strings.TrimSpace(content) == "" {
		// Nothing recognised as main content; keep the whole page.
		content = html
		reason = citedoc.ReasonLowConfidence
	}

	text, err := p.Converter.Convert(content)
	if err != nil {
		if citedoc.ErrorCode(err) != citedoc.EINVALID {
			return nil, err
		}
		text = ""
	}
	text = normalizeNewlines(text)

	if strings.TrimSpace(text) == "" {
		reason = citedoc.ReasonLowConfidence
	}
	if reason == citedoc.ReasonNone && p.Inspector != nil {
		reason = p.Inspector.Inspect(content)
	}

	title := res.Title
	if title == "" {
		title = headingTitle(text, name)
	}
	return newExtraction(title, text, reason), nil
}

func extractPlain(name string, data []byte) (*citedoc.Extraction, error) {
	data = bytes.TrimPrefix(data, bom)
	if !utf8.Valid(data) {
		return nil, citedoc.Errorf(citedoc.EINVALID, "%s is not valid UTF-8", name)
	}

	text := normalizeNewlines(string(data))
	if strings.TrimSpace(text) == "" {
		return lowConfidence(baseTitle(name)), nil
	}

	reason := citedoc.ReasonNone
	if markdownImage.MatchString(text) {
		rest := markdownImage.ReplaceAllString(text, "")
		if len(strings.Join(strings.Fields(rest), " ")) < citedoc.MinTextBytes {
			reason = citedoc.ReasonImageDetected
		}
	}

	return newExtraction(headingTitle(text, name), text, reason), nil
}

func newExtraction(title, text string, reason citedoc.UncertaintyReason) *citedoc.Extraction {
	return &citedoc.Extraction{
		Title:       strings.TrimSpace(title),
		Text:        text,
		IsUncertain: reason.Uncertain(),
		Reason:      reason,
	}
}

func lowConfidence(title string) *citedoc.Extraction {
	return newExtraction(title, "", citedoc.ReasonLowConfidence)
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// headingTitle returns the first level-one markdown heading in text,
// falling back to the base name of the source.
func headingTitle(text, name string) string {
	if m := markdownH1.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return baseTitle(name)
}

func baseTitle(name string) string {
	if citedoc.IsURL(name) {
		return name
	}
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
