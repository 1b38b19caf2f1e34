// Package lipgloss renders cited passages for terminals using lipgloss
// styles.
package lipgloss

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/citedoc"
	"github.com/muesli/termenv"
)

// Ensure Highlighter implements citedoc.Highlighter at compile time.
var _ citedoc.Highlighter = (*Highlighter)(nil)

// Highlighter styles the matched passage and dims its context.
type Highlighter struct {
	Match   lipgloss.Style
	Context lipgloss.Style
}

// NewHighlighter returns a Highlighter whose styles render through r.
func NewHighlighter(r *lipgloss.Renderer) *Highlighter {
	return &Highlighter{
		Match: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
			Background(lipgloss.AdaptiveColor{Light: "#FFD54F", Dark: "#FFC107"}).
			TabWidth(lipgloss.NoTabConversion),
		Context: r.NewStyle().
			Faint(true).
			TabWidth(lipgloss.NoTabConversion),
	}
}

// ForWriter returns a styled Highlighter when w is a color terminal, and
// the plain ==mark== highlighter otherwise.
func ForWriter(w io.Writer) citedoc.Highlighter {
	r := lipgloss.NewRenderer(w)
	if r.ColorProfile() == termenv.Ascii {
		return citedoc.NewMarkHighlighter()
	}
	return NewHighlighter(r)
}

// Highlight renders the segments with the match emphasized. Segments without
// a match are returned verbatim.
func (h *Highlighter) Highlight(s citedoc.Segments) string {
	if !s.Found() {
		return s.String()
	}
	return render(h.Context, s.Prefix) + render(h.Match, s.Match) + render(h.Context, s.Suffix)
}

// render styles each line on its own; lipgloss pads multi-line blocks to a
// common width, which would alter the text.
func render(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
