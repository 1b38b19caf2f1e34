package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/citedoc"
	main "github.com/fwojciec/citedoc/cmd/citedoc"
	"github.com/fwojciec/citedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"add", "list", "delete", "docs", "find", "ask"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range commands {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesFindFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"find", "reports", "net revenue", "--before", "Q3 ", "--after", " rose", "--context", "20", "--plain"})

	require.NoError(t, err)
	assert.Equal(t, main.FindCmd{
		Name:    "reports",
		Snippet: "net revenue",
		Before:  "Q3 ",
		After:   " rose",
		Context: 20,
		Plain:   true,
	}, cli.Find)
}

func TestCLI_ParsesWholeContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args    []string
		context func(*main.CLI) int
	}{
		{[]string{"find", "reports", "net revenue", "--context=-1"}, func(c *main.CLI) int { return c.Find.Context }},
		{[]string{"ask", "reports", "How did revenue do?", "--context=-1"}, func(c *main.CLI) int { return c.Ask.Context }},
	}
	for _, tt := range tests {
		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse(tt.args)

		require.NoError(t, err, tt.args[0])
		assert.Equal(t, -1, tt.context(cli), tt.args[0])
	}
}

func TestCLI_RejectsUnknownExtractor(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"add", "reports", "docs/", "--extractor", "pdf"})

	require.Error(t, err)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_RejectsBadLogLevel(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.LogLevel = "chatty"

	err := m.Run(context.Background(), []string{"list"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, citedoc.EINVALID, citedoc.ErrorCode(err))
}

// projectsNamed returns a ProjectService that knows a single project.
func projectsNamed(id, name string) *mock.ProjectService {
	return &mock.ProjectService{
		FindProjectsFn: func(_ context.Context, filter citedoc.ProjectFilter) ([]*citedoc.Project, error) {
			if filter.Name != nil && *filter.Name == name {
				return []*citedoc.Project{{ID: id, Name: name}}, nil
			}
			return []*citedoc.Project{}, nil
		},
	}
}

// documentsOf returns a DocumentService serving docs for any project.
func documentsOf(docs ...*citedoc.Document) *mock.DocumentService {
	return &mock.DocumentService{
		FindDocumentsFn: func(_ context.Context, filter citedoc.DocumentFilter) ([]*citedoc.Document, error) {
			return docs, nil
		},
	}
}
