package citedoc

// Citation is a passage an answer quotes from one document. Quote is
// usually paraphrased slightly by the model; Before and After carry the
// text the model believes surrounds it.
type Citation struct {
	DocumentID string `json:"documentId"`
	Quote      string `json:"quote"`
	Before     string `json:"before,omitempty"`
	After      string `json:"after,omitempty"`
}

// Anchors returns the citation's surrounding text as resolver anchors.
func (c Citation) Anchors() Anchors {
	return Anchors{Pre: c.Before, Post: c.After}
}

// LocatedCitation is a citation together with where its quote was found.
// Document is nil when the cited document is unknown, and Found is false
// when the quote could not be located in it.
type LocatedCitation struct {
	Citation
	Document *Document
	Match    Match
	Found    bool
}

// Segments partitions the cited document around the match.
func (c LocatedCitation) Segments() Segments {
	if c.Document == nil {
		return Segments{}
	}
	return Split(c.Document.Content, c.Match, c.Found)
}

// LocateCitations resolves every citation against the document it names.
// The result has one entry per citation, in order.
func LocateCitations(resolver AnchorResolver, docs []*Document, citations []Citation) []LocatedCitation {
	byID := make(map[string]*Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	located := make([]LocatedCitation, 0, len(citations))
	for _, c := range citations {
		lc := LocatedCitation{Citation: c, Document: byID[c.DocumentID]}
		if lc.Document != nil {
			lc.Match, lc.Found = resolver.ResolveAnchor(lc.Document.Content, c.Quote, c.Anchors())
		}
		located = append(located, lc)
	}
	return located
}
