// Package goquery inspects HTML structure with goquery to flag documents
// whose extracted text is likely to be incomplete.
package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/citedoc"
)

// MaxTableColumns is the widest table that still converts to readable
// markdown.
const MaxTableColumns = 8

// Ensure Inspector implements citedoc.Inspector at compile time.
var _ citedoc.Inspector = (*Inspector)(nil)

// Inspector reports structural reasons why text extracted from HTML may be
// unreliable.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect returns ReasonImageDetected for image-dominated content,
// ReasonComplexLayout for nested tables, frames or very wide tables, and
// ReasonNone otherwise. Image detection takes precedence.
func (i *Inspector) Inspect(html string) citedoc.UncertaintyReason {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return citedoc.ReasonNone
	}

	if i.imageDominated(doc) {
		return citedoc.ReasonImageDetected
	}
	if i.complexLayout(doc) {
		return citedoc.ReasonComplexLayout
	}
	return citedoc.ReasonNone
}

func (i *Inspector) imageDominated(doc *goquery.Document) bool {
	if !hasSelector(doc, "img, svg, canvas, picture") {
		return false
	}
	return visibleTextLen(doc) < citedoc.MinTextBytes
}

func (i *Inspector) complexLayout(doc *goquery.Document) bool {
	if hasSelector(doc, "table table, frameset, frame, iframe") {
		return true
	}

	wide := false
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cols := 0
		row.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
			cols += colspan(cell)
		})
		if cols > MaxTableColumns {
			wide = true
		}
		return !wide
	})
	return wide
}

// visibleTextLen returns the length of the document text with whitespace
// runs collapsed, ignoring script and style contents.
func visibleTextLen(doc *goquery.Document) int {
	body := doc.Find("body")
	body.Find("script, style, noscript").Remove()
	return len(strings.Join(strings.Fields(body.Text()), " "))
}

func colspan(cell *goquery.Selection) int {
	span, ok := cell.Attr("colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(span))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
