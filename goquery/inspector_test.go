package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/citedoc"
	"github.com/fwojciec/citedoc/goquery"
	"github.com/stretchr/testify/assert"
)

func TestInspector_Inspect(t *testing.T) {
	t.Parallel()

	longText := "<p>" + strings.Repeat("This paragraph carries real text content. ", 10) + "</p>"
	wideRow := "<tr>" + strings.Repeat("<td>x</td>", goquery.MaxTableColumns+1) + "</tr>"

	tests := []struct {
		name string
		html string
		want citedoc.UncertaintyReason
	}{
		{
			name: "plain article",
			html: "<html><body>" + longText + "</body></html>",
			want: citedoc.ReasonNone,
		},
		{
			name: "scanned page with no text",
			html: `<html><body><img src="page1.png"></body></html>`,
			want: citedoc.ReasonImageDetected,
		},
		{
			name: "svg with a caption only",
			html: `<html><body><svg></svg><p>Figure 1</p></body></html>`,
			want: citedoc.ReasonImageDetected,
		},
		{
			name: "image alongside enough text",
			html: `<html><body><img src="a.png">` + longText + `</body></html>`,
			want: citedoc.ReasonNone,
		},
		{
			name: "script text does not count as visible",
			html: `<html><body><picture></picture><script>` + strings.Repeat("var x = 1;", 50) + `</script></body></html>`,
			want: citedoc.ReasonImageDetected,
		},
		{
			name: "nested tables",
			html: `<html><body>` + longText + `<table><tr><td><table><tr><td>inner</td></tr></table></td></tr></table></body></html>`,
			want: citedoc.ReasonComplexLayout,
		},
		{
			name: "iframe",
			html: `<html><body>` + longText + `<iframe src="x.html"></iframe></body></html>`,
			want: citedoc.ReasonComplexLayout,
		},
		{
			name: "wide table",
			html: `<html><body>` + longText + `<table>` + wideRow + `</table></body></html>`,
			want: citedoc.ReasonComplexLayout,
		},
		{
			name: "colspan counts toward width",
			html: `<html><body>` + longText + `<table><tr><td colspan="5">a</td><td colspan="4">b</td></tr></table></body></html>`,
			want: citedoc.ReasonComplexLayout,
		},
		{
			name: "narrow table",
			html: `<html><body>` + longText + `<table><tr><td>a</td><td>b</td></tr></table></body></html>`,
			want: citedoc.ReasonNone,
		},
		{
			name: "images take precedence over layout",
			html: `<html><body><img src="a.png"><iframe src="x.html"></iframe></body></html>`,
			want: citedoc.ReasonImageDetected,
		},
		{
			name: "empty input",
			html: "",
			want: citedoc.ReasonNone,
		},
	}

	inspector := goquery.NewInspector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inspector.Inspect(tt.html))
		})
	}
}
