package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/zhextract"
	"github.com/fwojciec/zhextract/crawl"
	"github.com/fwojciec/zhextract/fs"
	"github.com/fwojciec/zhextract/goquery"
	"github.com/fwojciec/zhextract/htmltomarkdown"
	zhhttp "github.com/fwojciec/zhextract/http"
	"github.com/fwojciec/zhextract/rod"
	zhslog "github.com/fwojciec/zhextract/slog"
	"github.com/fwojciec/zhextract/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SourceService zhextract.SourceService
	EntryService  zhextract.EntryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
		kong.Name("zhextract"),
		kong.Description("Extract answers, questions and profiles from Zhihu pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'zhextract --help' to see available commands")
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
	cmd = strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Parser = zhslog.NewLoggingPageParser(
		goquery.NewParser(goquery.WithLogger(deps.Logger)),
		deps.Logger,
	)

	// Parsing a local file needs no database.
	if cmd == "parse" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ZHEXTRACT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.SourceService = sqlite.NewSourceService(m.DB)
	m.EntryService = sqlite.NewEntryService(m.DB)
	deps.DB = m.DB
	deps.Sources = m.SourceService
	deps.Entries = m.EntryService

	switch cmd {
	case "add":
		next, err := newFetcher(&cli.Add)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher := zhslog.NewLoggingFetcher(next, deps.Logger)
		defer fetcher.Close()

		deps.Harvester = &crawl.Harvester{
			Fetcher:     fetcher,
			Parser:      deps.Parser,
			Entries:     m.EntryService,
			RateLimiter: crawl.NewDomainLimiter(cli.Add.Rate),
			Logger:      deps.Logger,
			Concurrency: cli.Add.Concurrency,
		}
	case "export":
		converter := htmltomarkdown.NewConverter()
		deps.NewExporter = func(dir, name string) zhextract.Exporter {
			return fs.NewExporter(dir, name, converter)
		}
	}

	return kongCtx.Run(deps)
}

// newFetcher returns the browser fetcher when --browser is set and the
// plain HTTP fetcher otherwise.
func newFetcher(c *AddCmd) (zhextract.Fetcher, error) {
	if c.Browser {
		opts := []rod.Option{
			rod.WithUserAgent(zhhttp.DefaultUserAgent),
			rod.WithWaitSelector(waitSelector(c.Variant), c.Timeout),
		}
		if c.Cookie != "" {
			opts = append(opts, rod.WithCookie(c.Cookie))
		}
		return rod.NewFetcher(opts...)
	}

	opts := []zhhttp.Option{zhhttp.WithTimeout(c.Timeout)}
	if c.Cookie != "" {
		opts = append(opts, zhhttp.WithCookie(c.Cookie))
	}
	return zhhttp.NewFetcher(opts...), nil
}

// waitSelector returns the answer selector of the variant's layout, or ""
// for an unknown variant.
func waitSelector(variant string) string {
	v, err := zhextract.ParsePageVariant(variant)
	if err != nil {
		return ""
	}
	layout, err := goquery.LayoutFor(v)
	if err != nil {
		return ""
	}
	return layout.AnswerSelector
}

// newLogger returns a debug-level text logger on w when verbose is set,
// and a logger that discards everything otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("ZHEXTRACT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "zhextract.db"
	}
	dir := filepath.Join(home, ".zhextract")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "zhextract.db")
}
