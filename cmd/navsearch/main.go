package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/navsearch"
	"github.com/fwojciec/navsearch/fs"
	"github.com/fwojciec/navsearch/goquery"
	"github.com/fwojciec/navsearch/htmltomarkdown"
	navsearchhttp "github.com/fwojciec/navsearch/http"
	"github.com/fwojciec/navsearch/indexer"
	"github.com/fwojciec/navsearch/rod"
	navslog "github.com/fwojciec/navsearch/slog"
	"github.com/fwojciec/navsearch/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// DefaultConfigPath is the JSON file flag defaults are read from.
const DefaultConfigPath = "~/.navsearch.json"

// Main represents the program.
type Main struct {
	// Input for the palette command. Set before calling Run().
	Stdin io.Reader

	// SQLite database, opened when --db is set.
	DB *sqlite.DB

	// Fetcher used by the HTTP source; tests may replace it.
	Fetcher navsearch.Fetcher

	// Headless browser for HTML pages, launched when --render is set.
	Renderer *rod.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.Renderer != nil {
		err = m.Renderer.Close()
	}
	if m.DB != nil {
		if dbErr := m.DB.Close(); dbErr != nil {
			err = dbErr
		}
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("navsearch"),
		kong.Description("Index and search a documentation site built from a JSON navigation registry"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Configuration(kong.JSON, DefaultConfigPath),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'navsearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Logger = newLogger(stderr, cli.Verbose)

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set NAVSEARCH_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}

		snapshots := sqlite.NewSnapshotService(m.DB)
		deps.Snapshots = navslog.NewLoggingSnapshotService(snapshots, deps.Logger)
		deps.Stored = navslog.NewLoggingIndexBuilder(snapshots, deps.Logger)
	}

	source, err := m.newSource(cli.Site, deps.Logger)
	if err != nil {
		return err
	}
	if source != nil {
		deps.Source = navslog.NewLoggingSource(source, deps.Logger)
		deps.Builder = indexer.NewBuilder(deps.Source,
			indexer.WithBatchSize(cli.Site.BatchSize),
			indexer.WithLogger(deps.Logger),
		)
		deps.Navigator = navslog.NewLoggingNavigator(NewSiteNavigator(deps.Source, stdout), deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newSource returns the configured site source, or nil when neither a base
// URL nor a directory is set.
func (m *Main) newSource(site SiteFlags, logger *slog.Logger) (navsearch.Source, error) {
	switch {
	case site.BaseURL != "" && site.Dir != "":
		return nil, navsearch.Errorf(navsearch.EINVALID, "--base-url and --dir are mutually exclusive")
	case site.BaseURL != "":
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher = navslog.NewLoggingFetcher(navsearchhttp.NewFetcher(
				navsearchhttp.WithTimeout(site.Timeout),
				navsearchhttp.WithUserAgent(site.UserAgent),
			), logger)
		}
		opts := []navsearchhttp.SourceOption{
			navsearchhttp.WithRegistryPath(site.Registry),
			navsearchhttp.WithFetcher(fetcher),
			navsearchhttp.WithConverter(goquery.NewConverter(htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(site.BaseURL)))),
		}
		if site.RateLimit > 0 {
			opts = append(opts, navsearchhttp.WithLimiter(navsearchhttp.NewDomainLimiter(site.RateLimit, site.BatchSize)))
		}
		if site.Render {
			renderer, err := rod.NewFetcher()
			if err != nil {
				return nil, navsearch.Errorf(navsearch.EUNAVAILABLE, "--render needs Chrome or Chromium: %v", err)
			}
			m.Renderer = renderer
			opts = append(opts, navsearchhttp.WithRenderer(navslog.NewLoggingFetcher(renderer, logger)))
		}
		return navsearchhttp.NewSource(site.BaseURL, opts...)
	case site.Dir != "":
		if site.Render {
			return nil, navsearch.Errorf(navsearch.EINVALID, "--render requires --base-url")
		}
		return fs.NewDirSource(site.Dir,
			fs.WithRegistryPath(site.Registry),
			fs.WithConverter(goquery.NewConverter(htmltomarkdown.NewConverter())),
		)
	}
	return nil, nil
}

func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
