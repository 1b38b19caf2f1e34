package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/citedoc"
)

// DefaultMaxSitemapURLs caps how many page URLs one sitemap may expand to.
const DefaultMaxSitemapURLs = 1000

// Ensure SitemapReader implements citedoc.SitemapReader at compile time.
var _ citedoc.SitemapReader = (*SitemapReader)(nil)

// SitemapReader lists the page URLs of an XML sitemap. Sitemap indexes are
// followed recursively.
type SitemapReader struct {
	client  *http.Client
	MaxURLs int
}

// NewSitemapReader creates a new SitemapReader with the given HTTP client.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewSitemapReader(client *http.Client) *SitemapReader {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &SitemapReader{client: client, MaxURLs: DefaultMaxSitemapURLs}
}

// URLs returns the page URLs listed in the sitemap at sitemapURL, in
// document order and without duplicates.
func (r *SitemapReader) URLs(ctx context.Context, sitemapURL string) ([]string, error) {
	w := &sitemapWalk{
		reader:   r,
		sitemaps: make(map[string]bool),
		pages:    make(map[string]bool),
	}
	if err := w.visit(ctx, sitemapURL); err != nil {
		return nil, err
	}
	return w.urls, nil
}

type sitemapWalk struct {
	reader   *SitemapReader
	sitemaps map[string]bool
	pages    map[string]bool
	urls     []string
}

func (w *sitemapWalk) full() bool {
	return w.reader.MaxURLs > 0 && len(w.urls) >= w.reader.MaxURLs
}

func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.sitemaps[sitemapURL] || w.full() {
		return nil
	}
	w.sitemaps[sitemapURL] = true

	body, err := get(ctx, w.reader.client, sitemapURL)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return citedoc.Errorf(citedoc.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return citedoc.Errorf(citedoc.EINVALID, "empty sitemap %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		for _, loc := range locs(root, "sitemap") {
			if err := w.visit(ctx, loc); err != nil {
				return err
			}
		}
	case "urlset":
		for _, loc := range locs(root, "url") {
			if w.full() {
				break
			}
			if !w.pages[loc] {
				w.pages[loc] = true
				w.urls = append(w.urls, loc)
			}
		}
	default:
		return citedoc.Errorf(citedoc.EINVALID, "%s is not a sitemap: unexpected <%s>", sitemapURL, root.Tag)
	}
	return nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

