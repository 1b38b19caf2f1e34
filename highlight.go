package citedoc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis marks text elided from an excerpt.
const Ellipsis = "…"

// Segments partitions a text into the part before a match, the match and
// the part after it. Concatenating the three always yields the input of
// Split. When nothing matched, the whole text is in Prefix.
type Segments struct {
	Prefix string
	Match  string
	Suffix string
}

// String joins the segments back together.
func (s Segments) String() string {
	return s.Prefix + s.Match + s.Suffix
}

// Found reports whether the segments contain a match.
func (s Segments) Found() bool {
	return s.Match != ""
}

// Split partitions text around m. A missing or out-of-range match leaves
// the text untouched in Prefix.
func Split(text string, m Match, ok bool) Segments {
	if !ok || m.Start < 0 || m.Length <= 0 || m.End() > len(text) {
		return Segments{Prefix: text}
	}
	return Segments{
		Prefix: text[:m.Start],
		Match:  text[m.Start:m.End()],
		Suffix: text[m.End():],
	}
}

// Excerpt is like Split but keeps at most radius bytes of context on each
// side of the match, cut on a word boundary where one is available. Elided
// sides are marked with Ellipsis. A negative radius keeps all context.
func Excerpt(text string, m Match, ok bool, radius int) Segments {
	s := Split(text, m, ok)
	if !s.Found() || radius < 0 {
		return s
	}

	if len(s.Prefix) > radius {
		cut := len(s.Prefix) - radius
		for cut < len(s.Prefix) && !utf8.RuneStart(s.Prefix[cut]) {
			cut++
		}
		if i := strings.IndexFunc(s.Prefix[cut:], unicode.IsSpace); i >= 0 && cut+i+1 < len(s.Prefix) {
			cut += i + 1
		}
		s.Prefix = Ellipsis + strings.TrimLeftFunc(s.Prefix[cut:], unicode.IsSpace)
	}

	if len(s.Suffix) > radius {
		cut := radius
		for cut > 0 && !utf8.RuneStart(s.Suffix[cut]) {
			cut--
		}
		if i := strings.LastIndexFunc(s.Suffix[:cut], unicode.IsSpace); i > 0 {
			cut = i
		}
		s.Suffix = strings.TrimRightFunc(s.Suffix[:cut], unicode.IsSpace) + Ellipsis
	}

	return s
}

// Highlighter renders segments with the match emphasized.
type Highlighter interface {
	Highlight(s Segments) string
}

// Ensure MarkHighlighter implements Highlighter at compile time.
var _ Highlighter = (*MarkHighlighter)(nil)

// MarkHighlighter wraps the match in literal markers.
type MarkHighlighter struct {
	Open  string
	Close string
}

// NewMarkHighlighter returns a MarkHighlighter using the markdown "mark"
// syntax, ==text==.
func NewMarkHighlighter() *MarkHighlighter {
	return &MarkHighlighter{Open: "==", Close: "=="}
}

// Highlight returns the segments with the match wrapped in markers.
// Segments without a match are returned verbatim.
func (h *MarkHighlighter) Highlight(s Segments) string {
	if !s.Found() {
		return s.String()
	}
	return s.Prefix + h.Open + s.Match + h.Close + s.Suffix
}
