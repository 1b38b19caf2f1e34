package citedoc

import (
	"bytes"
	"net/url"
	"path"
	"strings"
)

// Format is the detected format of a source document.
type Format int

// Supported formats.
const (
	FormatUnknown Format = iota
	FormatHTML
	FormatText
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

var extFormats = map[string]Format{
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".xhtml":    FormatHTML,
	".md":       FormatText,
	".markdown": FormatText,
	".txt":      FormatText,
	".text":     FormatText,
	"":          FormatText,
}

// DetectFormat determines the format of a document from its name and,
// when available, its leading bytes. Content that opens like an HTML
// document is HTML whatever its name. Fetched URLs without a recognised
// text extension are assumed to be HTML.
func DetectFormat(name string, data []byte) Format {
	if looksLikeHTML(data) {
		return FormatHTML
	}

	if IsURL(name) {
		u, err := url.Parse(name)
		if err != nil {
			return FormatUnknown
		}
		ext := strings.ToLower(path.Ext(u.Path))
		if ext != "" && extFormats[ext] == FormatText {
			return FormatText
		}
		return FormatHTML
	}

	return extFormats[strings.ToLower(path.Ext(name))]
}

func looksLikeHTML(data []byte) bool {
	const sniffLen = 512
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimLeft(data, " \t\r\n")
	lower := bytes.ToLower(data)
	return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
}
