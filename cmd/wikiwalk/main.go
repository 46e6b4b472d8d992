package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikiwalk"
	"github.com/fwojciec/wikiwalk/goquery"
	"github.com/fwojciec/wikiwalk/htmltomarkdown"
	wikihttp "github.com/fwojciec/wikiwalk/http"
	"github.com/fwojciec/wikiwalk/readability"
	"github.com/fwojciec/wikiwalk/rod"
	wikislog "github.com/fwojciec/wikiwalk/slog"
	"github.com/fwojciec/wikiwalk/sqlite"
	"github.com/fwojciec/wikiwalk/trafilatura"
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
	// SQLite database backing the page cache.
	DB *sqlite.DB

	// Page cache for end-to-end testing.
	Cache wikiwalk.PageCache
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
	// Load file-based defaults before Kong sees the flags.
	cfg := DefaultConfig()
	explicitConfig := ConfigPathFromArgs(args)
	if path := FindConfigFile(explicitConfig); path != "" {
		loaded, err := LoadConfigFile(path)
		if err != nil && !errors.Is(err, ErrConfigNotFound) {
			return err
		}
		cfg = loaded
	} else if explicitConfig != "" {
		return fmt.Errorf("config file %q not found", explicitConfig)
	}

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikiwalk"),
		kong.Description("Follow first links between wiki articles until a target is reached."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars(cfg.Vars()),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wikiwalk --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := rootCommand(kongCtx.Command())

	baseURL := cli.BaseURL
	if cli.Lang != "" {
		baseURL = fmt.Sprintf("https://%s.wikipedia.org", cli.Lang)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	deps.Logger = logger
	deps.BaseURL = baseURL
	deps.Target = wikiwalk.Title(cli.Target)
	deps.MaxIterations = cli.MaxIterations

	// Locator pipeline: MediaWiki markup gets the dedicated locator,
	// recognizably generic pages go to trafilatura, and readability
	// catches everything else.
	detector := goquery.NewDetector()
	registry := goquery.NewRegistry(detector, readability.NewLocator())
	registry.Register(wikiwalk.FlavorMediaWiki, goquery.NewMediaWikiLocator())
	registry.Register(wikiwalk.FlavorGeneric, trafilatura.NewLocator())
	deps.Detector = detector
	deps.Locators = registry
	if cli.Verbose {
		deps.Locators = wikislog.NewLoggingRegistry(registry, detector, logger)
	}

	deps.Extractor = goquery.NewExtractor()
	deps.Converter = htmltomarkdown.NewConverter()

	// The cache database backs the page cache for walks and the cache
	// subcommands alike.
	needsCache := command == "cache" || command == "doctor" || !cli.NoCache
	if needsCache {
		if dir := filepath.Dir(cli.CachePath); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		m.DB = sqlite.NewDB(cli.CachePath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: use --cache-path to choose a writable location")
			return fmt.Errorf("failed to open page cache at %q: %w", cli.CachePath, err)
		}
		defer m.Close()

		cache := sqlite.NewPageCacheService(m.DB)
		if err := cache.Warm(ctx); err != nil {
			logger.Warn("cache warm failed", "err", err)
		}
		m.Cache = cache
		deps.Cache = cache
	}

	// Walking commands need a page fetcher; cache and doctor do not.
	if command == "run" || command == "inspect" {
		fetcher, err := m.newFetcher(cli, baseURL, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		if !cli.NoCache {
			fetcher = sqlite.NewCachingFetcher(fetcher, deps.Cache, baseURL,
				sqlite.WithTTL(cli.CacheTTL),
				sqlite.WithRefresh(cli.Refresh))
		}
		if cli.Verbose {
			fetcher = wikislog.NewLoggingFetcher(fetcher, logger)
		}
		deps.Fetcher = fetcher
	}

	if command == "doctor" {
		probeHTTP := wikihttp.NewFetcher(
			wikihttp.WithBaseURL(baseURL),
			wikihttp.WithUserAgent(cli.UserAgent),
			wikihttp.WithTimeout(cli.Timeout),
			wikihttp.WithRequestsPerSecond(cli.Rate),
			wikihttp.WithRetryDelays(nil),
		)
		defer probeHTTP.Close()
		probeAPI := wikihttp.NewAPIFetcher(
			wikihttp.WithAPIBaseURL(baseURL),
			wikihttp.WithAPIUserAgent(cli.UserAgent),
			wikihttp.WithAPITimeout(cli.Timeout),
			wikihttp.WithAPIRequestsPerSecond(cli.Rate),
			wikihttp.WithAPIRetryDelays(nil),
		)
		defer probeAPI.Close()
		deps.ProbeHTTP = probeHTTP
		deps.ProbeAPI = probeAPI
	}

	return kongCtx.Run(deps)
}

// newFetcher builds the page fetcher selected by --renderer.
func (m *Main) newFetcher(cli *CLI, baseURL string, stderr io.Writer) (wikiwalk.Fetcher, error) {
	switch cli.Renderer {
	case "api":
		return wikihttp.NewAPIFetcher(
			wikihttp.WithAPIBaseURL(baseURL),
			wikihttp.WithAPIUserAgent(cli.UserAgent),
			wikihttp.WithAPITimeout(cli.Timeout),
			wikihttp.WithAPIRequestsPerSecond(cli.Rate),
		), nil
	case "rod":
		fetcher, err := rod.NewFetcher(
			rod.WithBaseURL(baseURL),
			rod.WithTimeout(cli.Timeout),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return fetcher, nil
	default:
		return wikihttp.NewFetcher(
			wikihttp.WithBaseURL(baseURL),
			wikihttp.WithUserAgent(cli.UserAgent),
			wikihttp.WithTimeout(cli.Timeout),
			wikihttp.WithRequestsPerSecond(cli.Rate),
		), nil
	}
}

// rootCommand reduces Kong's command string ("cache stats",
// "run <start>") to its first word.
func rootCommand(command string) string {
	if fields := strings.Fields(command); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
