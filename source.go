package citedoc

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// IsURL reports whether source names an http(s) resource rather than a
// local path.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// IsSitemap reports whether source is a URL pointing at an XML sitemap,
// which expands to the pages it lists instead of being ingested itself.
func IsSitemap(source string) bool {
	if !IsURL(source) {
		return false
	}
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".xml")
}

// SitemapReader lists the pages of an XML sitemap.
type SitemapReader interface {
	// URLs returns the page URLs listed in the sitemap, following
	// sitemap indexes.
	URLs(ctx context.Context, sitemapURL string) ([]string, error)
}

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML for url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// FileSource lists and reads local documents.
type FileSource interface {
	// Expand returns the files a path refers to. A file expands to itself;
	// a directory expands to the supported files beneath it in lexical order.
	Expand(path string) ([]string, error)

	// ReadFile returns the contents of a file returned by Expand.
	ReadFile(path string) ([]byte, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
