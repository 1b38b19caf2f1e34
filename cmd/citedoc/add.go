package main

import (
	"fmt"

	"github.com/fwojciec/citedoc"
	"github.com/fwojciec/citedoc/ingest"
)

// sourceWidth is the display width of sources in progress output.
const sourceWidth = 60

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	if c.Force {
		existing, err := deps.Projects.FindProjects(deps.Ctx, citedoc.ProjectFilter{Name: &c.Name})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", citedoc.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			if err := deps.Projects.DeleteProject(deps.Ctx, existing[0].ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", citedoc.ErrorMessage(err))
				return err
			}
		}
	}

	project := &citedoc.Project{Name: c.Name}
	if err := deps.Projects.CreateProject(deps.Ctx, project); err != nil {
		if citedoc.ErrorCode(err) == citedoc.ECONFLICT {
			fmt.Fprintf(deps.Stderr, "error: project %q already exists. Use --force to replace it.\n", c.Name)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", citedoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added project %q (%s)\n", c.Name, project.ID)

	if deps.Ingester == nil {
		return nil
	}
	if c.Concurrency > 0 {
		deps.Ingester.Concurrency = c.Concurrency
	}

	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d sources\n", event.Total)
		case ingest.ProgressCompleted:
			if event.Reason.Uncertain() {
				fmt.Fprintf(deps.Stderr, "  uncertain %s: %s\n", ingest.TruncateSource(event.Source, sourceWidth), event.Reason)
			}
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", ingest.TruncateSource(event.Source, sourceWidth), citedoc.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Ingester.Ingest(deps.Ctx, project, c.Sources, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citedoc.ErrorMessage(err))
		if delErr := deps.Projects.DeleteProject(deps.Ctx, project.ID); delErr != nil {
			fmt.Fprintf(deps.Stderr, "error: removing project %q: %s\n", c.Name, citedoc.ErrorMessage(delErr))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d documents (%s, %s)\n",
		result.Saved, ingest.FormatBytes(result.Bytes), ingest.FormatTokens(result.Tokens))
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "  Skipped %d duplicates\n", result.Skipped)
	}
	if result.Uncertain > 0 {
		fmt.Fprintf(deps.Stdout, "  %d documents flagged uncertain; answers citing them may not highlight cleanly\n", result.Uncertain)
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d sources failed\n", result.Failed)
	}

	return nil
}
