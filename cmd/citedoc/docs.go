package main

import (
	"fmt"

	"github.com/fwojciec/citedoc"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	project, err := findProject(deps, c.Name)
	if err != nil {
		return err
	}

	docs, err := projectDocuments(deps, project)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: project %q has no documents. To re-add, run 'citedoc add --force %s <source>...'.\n", c.Name, c.Name)
		return citedoc.Errorf(citedoc.ENOTFOUND, "project %q has no documents", c.Name)
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, citedoc.FormatDocuments(docs))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Documents for %s (%d total):\n\n", c.Name, len(docs))
	for i, doc := range docs {
		flag := ""
		if doc.Uncertain {
			flag = fmt.Sprintf(" [uncertain: %s]", doc.UncertainReason)
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s%s\n     %s\n", i+1, doc.DisplayName(), flag, doc.Source)
	}

	return nil
}
