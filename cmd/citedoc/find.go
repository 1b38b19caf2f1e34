package main

import (
	"fmt"

	"github.com/fwojciec/citedoc"
)

// Run executes the find command.
func (c *FindCmd) Run(deps *Dependencies) error {
	project, err := findProject(deps, c.Name)
	if err != nil {
		return err
	}

	docs, err := projectDocuments(deps, project)
	if err != nil {
		return err
	}

	anchors := citedoc.Anchors{Pre: c.Before, Post: c.After}
	hits := 0
	for _, doc := range docs {
		m, ok := deps.resolver().ResolveAnchor(doc.Content, c.Snippet, anchors)
		if !ok {
			continue
		}
		hits++
		fmt.Fprintf(deps.Stdout, "%s (%s, bytes %d-%d)\n  %s\n\n",
			doc.DisplayName(), m.Tier, m.Start, m.End(),
			deps.highlighter().Highlight(citedoc.Excerpt(doc.Content, m, true, c.Context)))
	}

	if hits == 0 {
		fmt.Fprintf(deps.Stderr, "error: no match for %q in project %q\n", c.Snippet, c.Name)
		return citedoc.Errorf(citedoc.ENOTFOUND, "no match for %q", c.Snippet)
	}
	return nil
}
