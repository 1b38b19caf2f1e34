package main

import (
	"fmt"

	"github.com/fwojciec/citedoc"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	project, err := findProject(deps, c.Name)
	if err != nil {
		return err
	}

	answer, err := deps.Asker.Ask(deps.Ctx, project.ID, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citedoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)
	if len(answer.Citations) == 0 {
		return nil
	}

	docs, err := projectDocuments(deps, project)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, "\nSources:")
	for i, lc := range citedoc.LocateCitations(deps.resolver(), docs, answer.Citations) {
		name := "unknown document"
		if lc.Document != nil {
			name = lc.Document.DisplayName()
		}
		if !lc.Found {
			fmt.Fprintf(deps.Stdout, "  [%d] %s (not located)\n      %q\n", i+1, name, lc.Quote)
			continue
		}
		excerpt := citedoc.Excerpt(lc.Document.Content, lc.Match, true, c.Context)
		fmt.Fprintf(deps.Stdout, "  [%d] %s\n      %s\n", i+1, name, deps.highlighter().Highlight(excerpt))
	}
	return nil
}
