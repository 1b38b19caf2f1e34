package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/citedoc"
	"github.com/fwojciec/citedoc/extract"
	"github.com/fwojciec/citedoc/fs"
	"github.com/fwojciec/citedoc/gemini"
	"github.com/fwojciec/citedoc/goquery"
	"github.com/fwojciec/citedoc/htmltomarkdown"
	citedochttp "github.com/fwojciec/citedoc/http"
	"github.com/fwojciec/citedoc/ingest"
	"github.com/fwojciec/citedoc/lipgloss"
	"github.com/fwojciec/citedoc/readability"
	"github.com/fwojciec/citedoc/rod"
	citedocslog "github.com/fwojciec/citedoc/slog"
	"github.com/fwojciec/citedoc/sqlite"
	"github.com/fwojciec/citedoc/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Gemini model used by the ask command.
	Model string

	// Log level name from CITEDOC_LOG; empty keeps logging silent unless
	// --verbose is passed.
	LogLevel string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ProjectService  citedoc.ProjectService
	DocumentService citedoc.DocumentService
}

// NewMain returns a new instance of Main configured from the environment.
func NewMain() *Main {
	return &Main{
		DBPath:   defaultDBPath(),
		Model:    envOr("CITEDOC_MODEL", gemini.DefaultModel),
		LogLevel: os.Getenv("CITEDOC_LOG"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("citedoc"),
		kong.Description("Ask questions about your documents and see exactly where the answers come from."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'citedoc --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level, err := logLevel(m.LogLevel, cli.Verbose)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CITEDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ProjectService = sqlite.NewProjectService(m.DB)
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.DB = m.DB
	deps.Projects = m.ProjectService
	deps.Documents = m.DocumentService
	deps.Resolver = citedocslog.NewLoggingResolver(citedoc.Resolver{}, logger)

	switch cmd {
	case "add":
		ingester, closeFn, err := m.newIngester(cli.Add, logger, stderr)
		if err != nil {
			return err
		}
		defer closeFn()
		deps.Ingester = ingester

	case "find":
		deps.Highlighter = highlighter(stdout, cli.Find.Plain)

	case "ask":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Asker = citedocslog.NewLoggingAsker(gemini.NewAsker(client, m.DocumentService, m.Model), logger)
		deps.Highlighter = highlighter(stdout, cli.Ask.Plain)
	}

	return kongCtx.Run(deps)
}

// newIngester wires the ingestion pipeline for the add command. The returned
// function releases the fetcher.
func (m *Main) newIngester(c AddCmd, logger *slog.Logger, stderr io.Writer) (*ingest.Ingester, func(), error) {
	var fetcher citedoc.Fetcher = citedochttp.NewFetcher()
	if c.Browser {
		f, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	}
	fetcher = citedocslog.NewLoggingFetcher(fetcher, logger)

	var extractor citedoc.Extractor = trafilatura.NewExtractor()
	if c.Extractor == "readability" {
		extractor = readability.NewExtractor()
	}
	pipeline := extract.NewPipeline(extractor, htmltomarkdown.NewConverter(), goquery.NewInspector())

	ingester := &ingest.Ingester{
		Files:       fs.NewSource(),
		Fetcher:     fetcher,
		Sitemaps:    citedocslog.NewLoggingSitemapReader(citedochttp.NewSitemapReader(nil), logger),
		Extractor:   citedocslog.NewLoggingTextExtractor(pipeline, logger),
		Documents:   m.DocumentService,
		RateLimiter: ingest.NewDomainLimiter(ingest.DefaultRequestsPerSecond),
		Concurrency: c.Concurrency,
	}

	// Token counts are informational; ingest without them when the
	// tokenizer is unavailable.
	if counter, err := gemini.NewTokenCounter(m.Model); err != nil {
		logger.Warn("token counter unavailable", "model", m.Model, "err", err)
	} else {
		ingester.TokenCounter = counter
	}

	return ingester, func() { _ = fetcher.Close() }, nil
}

func highlighter(w io.Writer, plain bool) citedoc.Highlighter {
	if plain {
		return citedoc.NewMarkHighlighter()
	}
	return lipgloss.ForWriter(w)
}

// logLevel returns the handler level. Logging is silent unless verbose is
// set or name selects a level.
func logLevel(name string, verbose bool) (slog.Level, error) {
	if verbose {
		return slog.LevelDebug, nil
	}
	if name == "" {
		return slog.LevelError + 4, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, citedoc.Errorf(citedoc.EINVALID, "invalid CITEDOC_LOG level %q", name)
	}
	return level, nil
}

func defaultDBPath() string {
	if path := os.Getenv("CITEDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "citedoc.db"
	}
	dir := filepath.Join(home, ".citedoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "citedoc.db")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
