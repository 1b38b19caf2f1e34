package citedoc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchTier identifies the strategy that located a match. Tiers are tried
// in declaration order and the first one that succeeds wins; a later tier
// never overrides an earlier one.
type MatchTier int

// Match tiers, in evaluation order.
const (
	TierAnchoredExact MatchTier = iota + 1
	TierExactSubstring
	TierCaseInsensitive
	TierWhitespaceNormalized
)

// String returns the tier name used in logs and CLI output.
func (t MatchTier) String() string {
	switch t {
	case TierAnchoredExact:
		return "anchored_exact"
	case TierExactSubstring:
		return "exact_substring"
	case TierCaseInsensitive:
		return "case_insensitive"
	case TierWhitespaceNormalized:
		return "whitespace_normalized"
	default:
		return "unknown"
	}
}

// normalizedWindow is the number of bytes the whitespace-normalized tier
// backs off from the predicted position before searching the original text
// for the first and last words of the snippet.
const normalizedWindow = 50

// Anchors hold optional text expected immediately before and after a
// snippet. They only disambiguate repeated occurrences; empty anchors are
// treated as not supplied.
type Anchors struct {
	Pre  string `json:"pre,omitempty"`
	Post string `json:"post,omitempty"`
}

// IsZero reports whether neither anchor is supplied.
func (a Anchors) IsZero() bool {
	return a.Pre == "" && a.Post == ""
}

// Match is a located span inside a text. Start and Length are byte offsets
// and Text always equals text[Start:Start+Length] of the searched text.
type Match struct {
	Start  int       `json:"start"`
	Length int       `json:"length"`
	Text   string    `json:"text"`
	Tier   MatchTier `json:"tier"`
}

// End returns the byte offset just past the match.
func (m Match) End() int {
	return m.Start + m.Length
}

// AnchorResolver locates a snippet inside a text.
type AnchorResolver interface {
	// ResolveAnchor returns the best match for snippet in text, or false
	// when no tier finds it.
	ResolveAnchor(text, snippet string, anchors Anchors) (Match, bool)
}

// Ensure Resolver implements AnchorResolver at compile time.
var _ AnchorResolver = Resolver{}

// Resolver implements AnchorResolver with ResolveAnchor. The zero value is
// ready to use and safe for concurrent use.
type Resolver struct{}

// ResolveAnchor delegates to the package-level ResolveAnchor.
func (Resolver) ResolveAnchor(text, snippet string, anchors Anchors) (Match, bool) {
	return ResolveAnchor(text, snippet, anchors)
}

// ResolveAnchor finds snippet inside text. The snippet is trimmed first; an
// empty text or a blank snippet never matches. Four strategies run in order
// and the first success is returned:
//
//  1. anchored exact: Pre+snippet+Post as a literal, only when an anchor is set
//  2. exact substring: the snippet as a literal
//  3. case insensitive: both sides lower-cased without changing byte widths
//  4. whitespace normalized: whitespace runs collapsed to a single space, with
//     the match mapped back to the original text by its first and last words
//
// All searches pick the leftmost occurrence. ResolveAnchor has no side
// effects and returns identical results for identical inputs.
func ResolveAnchor(text, snippet string, anchors Anchors) (Match, bool) {
	snippet = strings.TrimSpace(snippet)
	if text == "" || snippet == "" {
		return Match{}, false
	}

	if !anchors.IsZero() {
		if i := strings.Index(text, anchors.Pre+snippet+anchors.Post); i >= 0 {
			return newMatch(text, i+len(anchors.Pre), len(snippet), TierAnchoredExact), true
		}
	}

	if i := strings.Index(text, snippet); i >= 0 {
		return newMatch(text, i, len(snippet), TierExactSubstring), true
	}

	// Folding keeps every byte offset, so an index in the folded text is
	// also an index in the original and the folded snippet keeps its length.
	folded := foldCase(text)
	if i := strings.Index(folded, foldCase(snippet)); i >= 0 {
		return newMatch(text, i, len(snippet), TierCaseInsensitive), true
	}

	return resolveNormalized(text, folded, snippet)
}

// resolveNormalized is the last-resort tier. The span it returns starts at
// the first word and ends after the last word of the snippet, located near
// where the normalized match predicts them. Intervening characters are not
// re-aligned, so a first or last word that repeats close to the predicted
// position can shift the span.
func resolveNormalized(text, folded, snippet string) (Match, bool) {
	normText := collapseSpace(text)
	normSnippet := collapseSpace(snippet)

	normIndex := strings.Index(normText, normSnippet)
	if normIndex < 0 {
		return Match{}, false
	}

	words := strings.Fields(normSnippet)
	if len(words) == 0 {
		return Match{}, false
	}

	start := indexFrom(folded, foldCase(words[0]), max(0, normIndex-normalizedWindow))
	if start < 0 {
		return Match{}, false
	}

	// The last word is never searched for before the first word so the span
	// cannot invert on short snippets.
	last := foldCase(words[len(words)-1])
	end := indexFrom(folded, last, max(start, start+len(normSnippet)-normalizedWindow))
	if end < 0 {
		return Match{}, false
	}

	return newMatch(text, start, end+len(last)-start, TierWhitespaceNormalized), true
}

func newMatch(text string, start, length int, tier MatchTier) Match {
	return Match{
		Start:  start,
		Length: length,
		Text:   text[start : start+length],
		Tier:   tier,
	}
}

// indexFrom returns the index of substr in s at or after from, or -1.
func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], substr)
	if i < 0 {
		return -1
	}
	return from + i
}

// foldCase lower-cases s rune by rune. A rune whose lower-case form has a
// different UTF-8 width is copied unchanged, as are invalid bytes, so the
// result always has the same length as s and identical rune boundaries.
func foldCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			b.WriteByte(c)
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		lower := unicode.ToLower(r)
		if (r == utf8.RuneError && size == 1) || utf8.RuneLen(lower) != size {
			b.WriteString(s[i : i+size])
		} else {
			b.WriteRune(lower)
		}
		i += size
	}
	return b.String()
}

// collapseSpace replaces every run of whitespace with a single space and
// trims both ends. Non-space bytes are copied verbatim.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			pending = b.Len() > 0
		} else {
			if pending {
				b.WriteByte(' ')
				pending = false
			}
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}
