package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/polcat"
	"github.com/fwojciec/polcat/crawl"
	"github.com/fwojciec/polcat/encoding"
	"github.com/fwojciec/polcat/fs"
	"github.com/fwojciec/polcat/goquery"
	polhttp "github.com/fwojciec/polcat/http"
	"github.com/fwojciec/polcat/prometheus"
	polslog "github.com/fwojciec/polcat/slog"
	"github.com/fwojciec/polcat/sqlite"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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
	// SQLite database, opened when a command needs one.
	DB *sqlite.DB

	// RunID tags every log line of a run. Generated by Run when empty.
	RunID string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("polcat"),
		kong.Description("Catalog the Treasury Board policy suite"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(YAMLConfig),
		kong.Vars(defaultVars()),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'polcat --help' to see available commands")
	}

	if args[0] == "help" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			_, _ = parser.Parse(args)
			return nil
		}
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if m.RunID == "" {
		m.RunID = uuid.New().String()
	}
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).With("run", m.RunID)
	defer m.Close()

	switch kongCtx.Command() {
	case "crawl":
		err := m.wireCrawl(deps, &cli.Crawl)
		if deps.Fetcher != nil {
			defer deps.Fetcher.Close()
		}
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", polcat.ErrorMessage(err))
			return err
		}
	case "list":
		m.DB = sqlite.NewDB(cli.List.SQLite)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.List.SQLite, err)
		}
		deps.Catalogs = sqlite.NewCatalogStore(m.DB)
	}

	return kongCtx.Run(deps)
}

// wireCrawl validates the crawl settings and builds the enumeration and
// export services.
func (m *Main) wireCrawl(deps *Dependencies, c *CrawlCmd) error {
	cfg := c.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}
	vocab, err := cfg.Vocabulary()
	if err != nil {
		return err
	}
	pattern, err := cfg.LinkRegexp()
	if err != nil {
		return err
	}
	charset, err := encoding.NewCharset(cfg.Encoding)
	if err != nil {
		return err
	}

	limiter := crawl.NewDomainLimiter(c.RPS)

	logger := deps.Logger
	logger.Debug("config",
		"index_url", cfg.IndexURL,
		"types", cfg.Types,
		"encoding", charset.Name(),
		"output", cfg.Output,
		"concurrency", c.Concurrency,
		"interval", limiter.Interval(),
	)

	deps.Fetcher = polslog.NewLoggingFetcher(
		polhttp.NewFetcher(polhttp.WithTimeout(c.Timeout), polhttp.WithUserAgent(c.UserAgent)),
		logger,
	)

	index := &crawl.Index{
		URL:               cfg.IndexURL,
		AlphabeticalParam: cfg.AlphabeticalParam,
		TypeParam:         cfg.TypeParam,
		Fetcher:           deps.Fetcher,
		Selector:          polslog.NewLoggingLinkSelector(goquery.NewInstrumentSelector(pattern), logger),
		RateLimiter:       limiter,
		RetryDelays:       crawl.BackoffDelays(c.Retries),
		OnRetry: func(url string, attempt int, delay time.Duration, err error) {
			logger.Warn("retry",
				"url", url,
				"attempt", attempt,
				"delay", delay,
				"err", polcat.ErrorMessage(err),
			)
		},
	}

	if c.Robots {
		index.Robots = polhttp.NewRobots(c.UserAgent, c.Timeout)
	}

	deps.Enumerator = &crawl.Enumerator{
		Index: polslog.NewLoggingIndexFetcher(index, logger),
		Classifier: &polcat.Classifier{
			Param:       cfg.DocumentParam,
			Vocabulary:  vocab,
			Charset:     charset,
			DocumentURL: cfg.DocumentURL,
		},
		Vocabulary:  vocab,
		Concurrency: c.Concurrency,
	}

	exporters := polcat.MultiExporter{
		polslog.NewLoggingExporter(fs.NewCatalogFile(cfg.Output, charset), cfg.Output, logger),
	}
	if c.SQLite != "" {
		m.DB = sqlite.NewDB(c.SQLite)
		if err := m.DB.Open(); err != nil {
			return polcat.Errorf(polcat.EIO, "open database %q: %v", c.SQLite, err)
		}
		exporters = append(exporters, polslog.NewLoggingExporter(sqlite.NewCatalogStore(m.DB), c.SQLite, logger))
	}
	deps.Exporter = exporters

	if c.MetricsFile != "" {
		deps.Metrics = prometheus.NewMetrics()
	}

	return nil
}
