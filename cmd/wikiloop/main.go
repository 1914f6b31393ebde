package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikiloop"
	"github.com/fwojciec/wikiloop/follow"
	"github.com/fwojciec/wikiloop/goquery"
	wikihttp "github.com/fwojciec/wikiloop/http"
	"github.com/fwojciec/wikiloop/rod"
	wikislog "github.com/fwojciec/wikiloop/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
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
	// Configuration files read before flags and environment variables.
	// Missing files are ignored.
	ConfigPaths []string

	// Fetcher overrides the fetcher built from flags. Used for end-to-end testing.
	Fetcher wikiloop.Fetcher

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: []string{"~/.wikiloop.yaml", "wikiloop.yaml"},
	}
}

// Close releases resources opened by Run.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
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
		kong.Name("wikiloop"),
		kong.Description("Follow the first link of Wikipedia articles until a goal page is reached"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.DefaultEnvars("WIKILOOP"),
		kong.Configuration(YAMLLoader, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wikiloop --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	logger, err := m.openLogger(cli.LogFormat, cli.LogFile, stderr)
	if err != nil {
		return err
	}
	deps.Logger = logger

	fetcher, err := m.openFetcher(cli, stderr)
	if err != nil {
		return err
	}
	m.closers = append(m.closers, fetcher)

	var limiter wikiloop.DomainLimiter
	if cli.Rate > 0 {
		limiter = follow.NewDomainLimiter(cli.Rate)
	}

	follower := &follow.Follower{
		Fetcher:     wikislog.NewLoggingFetcher(fetcher, logger),
		Parser:      goquery.NewParser(),
		Selector:    &follow.Selector{Domain: cli.Domain, Logger: logger},
		RateLimiter: limiter,
		Logger:      logger,
	}
	deps.Journeys = wikislog.NewLoggingJourneyService(follower, logger)

	return kongCtx.Run(deps)
}

// openLogger builds the process logger. Records go to stderr unless a log
// file is configured.
func (m *Main) openLogger(format, path string, stderr io.Writer) (*slog.Logger, error) {
	w := stderr
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %q: %w", path, err)
		}
		m.closers = append(m.closers, f)
		w = f
	}
	return newLogger(format, w), nil
}

func newLogger(format string, w io.Writer) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

func (m *Main) openFetcher(cli *CLI, stderr io.Writer) (wikiloop.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	if cli.Browser {
		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return fetcher, nil
	}

	opts := []wikihttp.Option{wikihttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		opts = append(opts, wikihttp.WithUserAgent(cli.UserAgent))
	}
	return wikihttp.NewFetcher(opts...), nil
}
