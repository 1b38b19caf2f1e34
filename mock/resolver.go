package mock

import "github.com/fwojciec/citedoc"

var _ citedoc.AnchorResolver = (*AnchorResolver)(nil)

// AnchorResolver is a mock implementation of citedoc.AnchorResolver.
type AnchorResolver struct {
	ResolveAnchorFn func(text, snippet string, anchors citedoc.Anchors) (citedoc.Match, bool)
}

func (r *AnchorResolver) ResolveAnchor(text, snippet string, anchors citedoc.Anchors) (citedoc.Match, bool) {
	return r.ResolveAnchorFn(text, snippet, anchors)
}
