package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiwalk"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher   wikiwalk.Fetcher
	Locators  wikiwalk.LocatorRegistry
	Detector  wikiwalk.FlavorDetector
	Extractor wikiwalk.LinkExtractor
	Converter wikiwalk.Converter
	Cache     wikiwalk.PageCache

	// Probe fetchers for the doctor command; built independently of the
	// cache so probes always reach the network.
	ProbeHTTP wikiwalk.Fetcher
	ProbeAPI  wikiwalk.Fetcher

	// Resolved global settings.
	BaseURL       string
	Target        wikiwalk.Title
	MaxIterations int
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL       string        `name:"base-url" default:"${base_url}" env:"WIKIWALK_BASE_URL" help:"Wiki origin to fetch from."`
	Lang          string        `default:"${lang}" env:"WIKIWALK_LANG" help:"Wikipedia language code; overrides --base-url when set."`
	Target        string        `default:"${target}" env:"WIKIWALK_TARGET" help:"Article title the walk tries to reach."`
	MaxIterations int           `name:"max-iterations" default:"${max_iterations}" env:"WIKIWALK_MAX_ITERATIONS" help:"Maximum number of steps per walk."`
	Timeout       time.Duration `default:"${timeout}" env:"WIKIWALK_TIMEOUT" help:"Per-request timeout."`
	Rate          float64       `default:"${rate}" env:"WIKIWALK_RATE" help:"Maximum requests per second."`
	UserAgent     string        `name:"user-agent" default:"${user_agent}" env:"WIKIWALK_USER_AGENT" help:"User-Agent header sent with requests."`
	Renderer      string        `enum:"http,api,rod" default:"${renderer}" env:"WIKIWALK_RENDERER" help:"Page source: plain HTTP, the MediaWiki API, or a headless browser."`
	NoCache       bool          `name:"no-cache" help:"Bypass the page cache entirely."`
	Refresh       bool          `help:"Refetch pages even when cached."`
	CachePath     string        `name:"cache-path" default:"${cache_path}" env:"WIKIWALK_CACHE_PATH" help:"Page cache database path."`
	CacheTTL      time.Duration `name:"cache-ttl" default:"${cache_ttl}" env:"WIKIWALK_CACHE_TTL" help:"How long cached pages stay fresh."`
	Verbose       bool          `short:"v" help:"Log fetches and detection to stderr."`
	Config        string        `help:"Config file path." placeholder:"PATH"`

	Run     RunCmd     `cmd:"" help:"Walk from a starting article by following first links"`
	Inspect InspectCmd `cmd:"" help:"Show how a single page is located and which links it yields"`
	Cache   CacheCmd   `cmd:"" help:"Manage the page cache"`
	Doctor  DoctorCmd  `cmd:"" help:"Check connectivity to the wiki and the cache"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Start string `arg:"" help:"Starting article title"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	Title    string `arg:"" help:"Article title to inspect"`
	Links    bool   `help:"List every link with its context and rank"`
	Markdown bool   `help:"Print the located content as Markdown"`
}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	Stats CacheStatsCmd `cmd:"" help:"Show page cache statistics"`
	Clear CacheClearCmd `cmd:"" help:"Remove all cached pages"`
}

// CacheStatsCmd is the "cache stats" subcommand.
type CacheStatsCmd struct{}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct {
	Force bool `help:"Confirm deletion"`
}

// DoctorCmd is the "doctor" subcommand.
type DoctorCmd struct{}
