package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikiwalk/sqlite"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name looked up in the current
// directory before falling back to the XDG config home.
const DefaultConfigFile = ".wikiwalk.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config holds file-configurable defaults for the CLI flags. Flags
// always win over the file; the file wins over built-in defaults.
type Config struct {
	BaseURL       string
	Lang          string
	Target        string
	MaxIterations int
	Timeout       time.Duration
	Rate          float64
	UserAgent     string
	Renderer      string
	CachePath     string
	CacheTTL      time.Duration
}

// fileConfig mirrors Config with the timeout as a string so the file
// can say "10s" instead of nanoseconds. Zero values mean "not set".
type fileConfig struct {
	BaseURL       string  `yaml:"base_url"`
	Lang          string  `yaml:"lang"`
	Target        string  `yaml:"target"`
	MaxIterations int     `yaml:"max_iterations"`
	Timeout       string  `yaml:"timeout"`
	Rate          float64 `yaml:"rate"`
	UserAgent     string  `yaml:"user_agent"`
	Renderer      string  `yaml:"renderer"`
	CachePath     string  `yaml:"cache_path"`
	CacheTTL      string  `yaml:"cache_ttl"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "https://en.wikipedia.org",
		Target:        "Philosophy",
		MaxIterations: 500,
		Timeout:       10 * time.Second,
		Rate:          1.0,
		UserAgent:     "wikiwalk/1.0 (https://github.com/fwojciec/wikiwalk)",
		Renderer:      "http",
		CachePath:     defaultCachePath(),
		CacheTTL:      sqlite.DefaultCacheTTL,
	}
}

// LoadConfigFile loads defaults from a YAML file, layered over the
// built-in defaults. If the file does not exist, it returns
// ErrConfigNotFound.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, err
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}

	if raw.BaseURL != "" {
		cfg.BaseURL = raw.BaseURL
	}
	if raw.Lang != "" {
		cfg.Lang = raw.Lang
	}
	if raw.Target != "" {
		cfg.Target = raw.Target
	}
	if raw.MaxIterations != 0 {
		cfg.MaxIterations = raw.MaxIterations
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("parsing config %q: invalid timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	if raw.Rate != 0 {
		cfg.Rate = raw.Rate
	}
	if raw.UserAgent != "" {
		cfg.UserAgent = raw.UserAgent
	}
	if raw.Renderer != "" {
		cfg.Renderer = raw.Renderer
	}
	if raw.CachePath != "" {
		cfg.CachePath = raw.CachePath
	}
	if raw.CacheTTL != "" {
		d, err := time.ParseDuration(raw.CacheTTL)
		if err != nil {
			return cfg, fmt.Errorf("parsing config %q: invalid cache_ttl: %w", path, err)
		}
		cfg.CacheTTL = d
	}

	return cfg, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .wikiwalk.yaml in the current directory
// 3. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	if xdgConfig, err := xdg.SearchConfigFile(filepath.Join("wikiwalk", "config.yaml")); err == nil {
		return xdgConfig
	}

	return ""
}

// Vars exposes the config as Kong interpolation variables so the file's
// values become flag defaults.
func (c Config) Vars() kong.Vars {
	return kong.Vars{
		"base_url":       c.BaseURL,
		"lang":           c.Lang,
		"target":         c.Target,
		"max_iterations": strconv.Itoa(c.MaxIterations),
		"timeout":        c.Timeout.String(),
		"rate":           strconv.FormatFloat(c.Rate, 'f', -1, 64),
		"user_agent":     c.UserAgent,
		"renderer":       c.Renderer,
		"cache_path":     c.CachePath,
		"cache_ttl":      c.CacheTTL.String(),
	}
}

// ConfigPathFromArgs pre-scans the arguments for --config so the file
// can be loaded before Kong parses the full command line.
func ConfigPathFromArgs(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config" && i+1 < len(args):
			return args[i+1]
		case len(arg) > len("--config=") && arg[:len("--config=")] == "--config=":
			return arg[len("--config="):]
		}
	}
	return ""
}

// defaultCachePath places the cache database under the XDG cache home.
func defaultCachePath() string {
	path, err := xdg.CacheFile(filepath.Join("wikiwalk", "pages.db"))
	if err != nil {
		return "wikiwalk-pages.db"
	}
	return path
}
