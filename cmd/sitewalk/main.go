package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitewalk"
	"github.com/fwojciec/sitewalk/bloom"
	"github.com/fwojciec/sitewalk/crawl"
	"github.com/fwojciec/sitewalk/fs"
	"github.com/fwojciec/sitewalk/goquery"
	swhttp "github.com/fwojciec/sitewalk/http"
	swslog "github.com/fwojciec/sitewalk/slog"
)

// falsePositiveRate is the bloom filter error rate used with --approximate.
const falsePositiveRate = 0.001

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
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitewalk"),
		kong.Description("Discover every crawlable page of a website"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	mode, err := sitewalk.ParseMatchMode(cli.RobotsMode)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	timeout := cli.Timeout
	if timeout == 0 {
		timeout = swhttp.DefaultFetchTimeout
	}
	userAgent := cli.UserAgent
	if userAgent == "" {
		userAgent = swhttp.DefaultUserAgent
	}

	httpFetcher := swhttp.NewFetcher(
		swhttp.WithTimeout(timeout),
		swhttp.WithUserAgent(userAgent),
	)
	defer httpFetcher.Close()

	fetcher := swslog.NewLoggingFetcher(httpFetcher, logger)

	robots := swslog.NewLoggingRobotsService(&crawl.RobotsEvaluator{
		Fetcher:   fetcher,
		Mode:      mode,
		UserAgent: userAgent,
	}, logger)

	deps.Crawler = &crawl.Crawler{
		Fetcher:       fetcher,
		Parser:        goquery.NewParser(),
		Robots:        robots,
		NewVisitedSet: newVisitedSet(cli.Approximate, cli.ExpectedURLs),
		Concurrency:   cli.Concurrency,
		MaxPages:      cli.MaxPages,
		RetryDelays:   crawl.RetryDelays(cli.Retries),
		Logf: func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		},
	}

	if cli.Output != "" {
		deps.Store = fs.NewListStore(cli.Output)
	}

	cmd := &CrawlCmd{URL: cli.URL}
	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Concurrency  int           `short:"c" default:"1" help:"Number of pages fetched in parallel"`
	Timeout      time.Duration `short:"t" default:"10s" help:"Fetch timeout per request"`
	UserAgent    string        `short:"A" name:"user-agent" help:"User-Agent header sent with every request"`
	Retries      int           `short:"r" default:"0" help:"Retries for pages that fail in transport"`
	MaxPages     int           `short:"n" name:"max-pages" default:"0" help:"Maximum number of pages to fetch (0 for no limit)"`
	RobotsMode   string        `name:"robots-mode" default:"substring" enum:"substring,prefix,standard" help:"How robots.txt rules are matched: substring, prefix or standard"`
	Approximate  bool          `help:"Track visited URLs in a bloom filter to bound memory"`
	ExpectedURLs uint          `name:"expected-urls" default:"100000" help:"Expected number of URLs, used to size the bloom filter"`
	Output       string        `short:"o" type:"path" help:"Also write the final list to this file"`
	Verbose      bool          `short:"v" help:"Log every fetch"`
	URL          string        `arg:"" required:"" help:"Seed URL to crawl"`
}

func newVisitedSet(approximate bool, expected uint) func() sitewalk.VisitedSet {
	if !approximate {
		return nil
	}
	if expected == 0 {
		expected = 100000
	}
	return func() sitewalk.VisitedSet {
		return bloom.NewVisitedSet(expected, falsePositiveRate)
	}
}
