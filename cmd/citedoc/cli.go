package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/citedoc"
	"github.com/fwojciec/citedoc/ingest"
	"github.com/fwojciec/citedoc/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	DB          *sqlite.DB
	Projects    citedoc.ProjectService
	Documents   citedoc.DocumentService
	Ingester    *ingest.Ingester
	Asker       citedoc.Asker
	Resolver    citedoc.AnchorResolver
	Highlighter citedoc.Highlighter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log operations to stderr"`

	Add    AddCmd    `cmd:"" help:"Create a project from files, directories, URLs or sitemaps"`
	List   ListCmd   `cmd:"" help:"List all projects"`
	Delete DeleteCmd `cmd:"" help:"Delete a project and its documents"`
	Docs   DocsCmd   `cmd:"" help:"List documents for a project"`
	Find   FindCmd   `cmd:"" help:"Locate a passage in a project's documents"`
	Ask    AskCmd    `cmd:"" help:"Ask a question and show the cited passages"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name        string   `arg:"" help:"Project name"`
	Sources     []string `arg:"" help:"Files, directories, URLs or sitemap.xml URLs"`
	Force       bool     `short:"f" help:"Delete existing project first"`
	Browser     bool     `short:"b" help:"Render URLs in headless Chrome"`
	Extractor   string   `enum:"trafilatura,readability" default:"trafilatura" help:"HTML main-content extractor (${enum})"`
	Concurrency int      `short:"c" default:"4" help:"Sources processed concurrently"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Project name"`
	Force bool   `help:"Confirm deletion"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Name string `arg:"" help:"Project name"`
	Full bool   `help:"Show full document content"`
}

// FindCmd is the "find" subcommand.
type FindCmd struct {
	Name    string `arg:"" help:"Project name"`
	Snippet string `arg:"" help:"Text to locate"`
	Before  string `help:"Text expected immediately before the snippet"`
	After   string `help:"Text expected immediately after the snippet"`
	Context int    `default:"80" help:"Bytes of context shown around each match (--context=-1 for all)"`
	Plain   bool   `help:"Mark matches with == instead of terminal colors"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Name     string `arg:"" help:"Project name"`
	Question string `arg:"" help:"Question to ask about the documents"`
	Context  int    `default:"80" help:"Bytes of context shown around each citation (--context=-1 for all)"`
	Plain    bool   `help:"Mark citations with == instead of terminal colors"`
}

// findProject looks up a project by name, reporting a missing project on
// stderr.
func findProject(deps *Dependencies, name string) (*citedoc.Project, error) {
	projects, err := deps.Projects.FindProjects(deps.Ctx, citedoc.ProjectFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citedoc.ErrorMessage(err))
		return nil, err
	}
	if len(projects) == 0 {
		fmt.Fprintf(deps.Stderr, "error: project %q not found. Use 'citedoc list' to see available projects.\n", name)
		return nil, citedoc.Errorf(citedoc.ENOTFOUND, "project %q not found", name)
	}
	return projects[0], nil
}

// projectDocuments returns a project's documents in ingest order.
func projectDocuments(deps *Dependencies, project *citedoc.Project) ([]*citedoc.Document, error) {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, citedoc.DocumentFilter{
		ProjectID: &project.ID,
		SortBy:    citedoc.SortByPosition,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citedoc.ErrorMessage(err))
		return nil, err
	}
	return docs, nil
}

func (deps *Dependencies) highlighter() citedoc.Highlighter {
	if deps.Highlighter == nil {
		return citedoc.NewMarkHighlighter()
	}
	return deps.Highlighter
}

func (deps *Dependencies) resolver() citedoc.AnchorResolver {
	if deps.Resolver == nil {
		return citedoc.Resolver{}
	}
	return deps.Resolver
}
