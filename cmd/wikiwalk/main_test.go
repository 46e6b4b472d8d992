package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/wikiwalk"
	main "github.com/fwojciec/wikiwalk/cmd/wikiwalk"
	"github.com/fwojciec/wikiwalk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// walkDeps builds command dependencies whose fetch/locate/extract
// pipeline serves articles from a first-link map.
func walkDeps(links map[wikiwalk.Title][]wikiwalk.Title, stdout, stderr *bytes.Buffer) *main.Dependencies {
	fetcher := &mock.Fetcher{
		FetchPageFn: func(ctx context.Context, title wikiwalk.Title) (*wikiwalk.Document, error) {
			return &wikiwalk.Document{
				Title:     title.Canonical(),
				HTML:      "<p>article</p>",
				FetchedAt: time.Now(),
			}, nil
		},
	}

	locator := &mock.ContentLocator{
		LocateFn: func(doc *wikiwalk.Document) (*wikiwalk.Region, error) {
			return &wikiwalk.Region{Title: doc.Title, ContentHTML: doc.HTML, Blocks: 1}, nil
		},
	}

	registry := &mock.LocatorRegistry{
		GetForDocumentFn: func(doc *wikiwalk.Document) wikiwalk.ContentLocator {
			return locator
		},
	}

	extractor := &mock.LinkExtractor{
		ExtractLinksFn: func(region *wikiwalk.Region, self wikiwalk.Title) ([]wikiwalk.CandidateLink, error) {
			var candidates []wikiwalk.CandidateLink
			for i, title := range links[region.Title] {
				candidates = append(candidates, wikiwalk.CandidateLink{
					Title:   title,
					Context: wikiwalk.ContextNormal,
					Rank:    i + 1,
				})
			}
			return candidates, nil
		},
	}

	return &main.Dependencies{
		Ctx:           testContext(),
		Stdout:        stdout,
		Stderr:        stderr,
		Fetcher:       fetcher,
		Locators:      registry,
		Extractor:     extractor,
		Target:        "Philosophy",
		MaxIterations: 10,
	}
}

func TestRunCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints path and summary when target is reached", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := walkDeps(map[wikiwalk.Title][]wikiwalk.Title{
			"Dog":    {"Mammal"},
			"Mammal": {"Philosophy"},
		}, stdout, stderr)

		cmd := &main.RunCmd{Start: "Dog"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Dog")
		assert.Contains(t, stdout.String(), "Mammal")
		assert.Contains(t, stdout.String(), `Reached "Philosophy" in 2 clicks`)
		assert.Contains(t, stdout.String(), "steps: 2")
	})

	t.Run("returns error when walk dead-ends", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := walkDeps(map[wikiwalk.Title][]wikiwalk.Title{
			"Dog": nil,
		}, stdout, stderr)

		cmd := &main.RunCmd{Start: "Dog"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "without reaching")
		assert.Contains(t, stdout.String(), "Dead end")
	})
}

func TestInspectCmd(t *testing.T) {
	t.Parallel()

	newInspectDeps := func(stdout, stderr *bytes.Buffer) *main.Dependencies {
		locator := &mock.ContentLocator{
			NameFn: func() string { return "mediawiki" },
			LocateFn: func(doc *wikiwalk.Document) (*wikiwalk.Region, error) {
				return &wikiwalk.Region{Title: doc.Title, ContentHTML: "<p>lead</p>", Blocks: 4}, nil
			},
		}

		return &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: stderr,
			Fetcher: &mock.Fetcher{
				FetchPageFn: func(ctx context.Context, title wikiwalk.Title) (*wikiwalk.Document, error) {
					return &wikiwalk.Document{Title: title.Canonical(), HTML: "<p>lead</p>"}, nil
				},
			},
			Detector: &mock.FlavorDetector{
				DetectFn: func(html string) wikiwalk.Flavor { return wikiwalk.FlavorMediaWiki },
			},
			Locators: &mock.LocatorRegistry{
				GetForDocumentFn: func(doc *wikiwalk.Document) wikiwalk.ContentLocator { return locator },
			},
			Extractor: &mock.LinkExtractor{
				ScanLinksFn: func(region *wikiwalk.Region, self wikiwalk.Title) ([]wikiwalk.CandidateLink, error) {
					return []wikiwalk.CandidateLink{
						{Title: "Latin", Context: wikiwalk.ContextParenthetical},
						{Title: "Mammal", Context: wikiwalk.ContextNormal, Rank: 1},
					}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) { return "lead paragraph", nil },
			},
		}
	}

	t.Run("shows page metadata", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd := &main.InspectCmd{Title: "Dog"}

		err := cmd.Run(newInspectDeps(stdout, stderr))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "title:   Dog")
		assert.Contains(t, stdout.String(), "flavor:  mediawiki")
		assert.Contains(t, stdout.String(), "locator: mediawiki")
		assert.Contains(t, stdout.String(), "blocks:  4")
		assert.NotContains(t, stdout.String(), "Mammal")
		assert.Empty(t, stderr.String())
	})

	t.Run("lists links with context and rank", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd := &main.InspectCmd{Title: "Dog", Links: true}

		err := cmd.Run(newInspectDeps(stdout, stderr))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Mammal")
		assert.Contains(t, stdout.String(), "parenthetical")
		assert.Contains(t, stdout.String(), "  -")
		assert.Contains(t, stdout.String(), "  1")
	})

	t.Run("prints markdown when requested", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd := &main.InspectCmd{Title: "Dog", Markdown: true}

		err := cmd.Run(newInspectDeps(stdout, stderr))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "lead paragraph")
	})

	t.Run("reports fetch errors", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newInspectDeps(stdout, stderr)
		deps.Fetcher = &mock.Fetcher{
			FetchPageFn: func(ctx context.Context, title wikiwalk.Title) (*wikiwalk.Document, error) {
				return nil, wikiwalk.Errorf(wikiwalk.ENOTFOUND, "Page %q not found.", title)
			},
		}

		cmd := &main.InspectCmd{Title: "Nope"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
		assert.Contains(t, stderr.String(), "not found")
	})
}

func TestCacheStatsCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints cache statistics", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Cache: &mock.PageCache{
				StatsFn: func(ctx context.Context) (*wikiwalk.CacheStats, error) {
					return &wikiwalk.CacheStats{
						Pages:       3,
						Bytes:       2048,
						OldestFetch: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
						NewestFetch: time.Date(2026, 1, 3, 3, 4, 5, 0, time.UTC),
					}, nil
				},
			},
		}

		err := (&main.CacheStatsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "pages: 3")
		assert.Contains(t, stdout.String(), "2.0 KB")
		assert.Contains(t, stdout.String(), "2026-01-02 03:04:05")
		assert.Contains(t, stdout.String(), "2026-01-03 03:04:05")
	})

	t.Run("omits fetch times for empty cache", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Cache: &mock.PageCache{
				StatsFn: func(ctx context.Context) (*wikiwalk.CacheStats, error) {
					return &wikiwalk.CacheStats{}, nil
				},
			},
		}

		err := (&main.CacheStatsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "pages: 0")
		assert.NotContains(t, stdout.String(), "oldest")
	})
}

func TestCacheClearCmd(t *testing.T) {
	t.Parallel()

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		cleared := false
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Cache: &mock.PageCache{
				ClearFn: func(ctx context.Context) error {
					cleared = true
					return nil
				},
			},
		}

		err := (&main.CacheClearCmd{}).Run(deps)

		require.NoError(t, err)
		assert.False(t, cleared)
		assert.Contains(t, stdout.String(), "--force")
	})

	t.Run("clears with force flag", func(t *testing.T) {
		t.Parallel()

		cleared := false
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Cache: &mock.PageCache{
				ClearFn: func(ctx context.Context) error {
					cleared = true
					return nil
				},
			},
		}

		err := (&main.CacheClearCmd{Force: true}).Run(deps)

		require.NoError(t, err)
		assert.True(t, cleared)
		assert.Contains(t, stdout.String(), "cleared")
	})
}

func TestDoctorCmd(t *testing.T) {
	t.Parallel()

	okFetcher := func() *mock.Fetcher {
		return &mock.Fetcher{
			FetchPageFn: func(ctx context.Context, title wikiwalk.Title) (*wikiwalk.Document, error) {
				return &wikiwalk.Document{Title: title.Canonical(), HTML: "<p>ok</p>"}, nil
			},
		}
	}

	t.Run("reports success when all probes pass", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       testContext(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			ProbeHTTP: okFetcher(),
			ProbeAPI:  okFetcher(),
			Cache: &mock.PageCache{
				StatsFn: func(ctx context.Context) (*wikiwalk.CacheStats, error) {
					return &wikiwalk.CacheStats{}, nil
				},
			},
			BaseURL: "https://en.wikipedia.org",
			Target:  "Philosophy",
		}

		err := (&main.DoctorCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "ok    page endpoint")
		assert.Contains(t, stdout.String(), "ok    action API")
		assert.Contains(t, stdout.String(), "ok    page cache")
		assert.Contains(t, stdout.String(), "All checks passed against https://en.wikipedia.org.")
	})

	t.Run("fails when a probe fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       testContext(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			ProbeHTTP: okFetcher(),
			ProbeAPI: &mock.Fetcher{
				FetchPageFn: func(ctx context.Context, title wikiwalk.Title) (*wikiwalk.Document, error) {
					return nil, wikiwalk.Errorf(wikiwalk.EUNAVAILABLE, "Service unavailable.")
				},
			},
			Cache: &mock.PageCache{
				StatsFn: func(ctx context.Context) (*wikiwalk.CacheStats, error) {
					return &wikiwalk.CacheStats{}, nil
				},
			},
			BaseURL: "https://en.wikipedia.org",
			Target:  "Philosophy",
		}

		err := (&main.DoctorCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stdout.String(), "ok    page endpoint")
		assert.Contains(t, stdout.String(), "FAIL")
		assert.Contains(t, stdout.String(), "action API")
		assert.NotContains(t, stdout.String(), "All checks passed")
	})
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := main.NewMain()
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(testContext(), tt.args, stdout, stderr)

			require.NoError(t, err)
			// Usage goes to stdout when explicitly requested.
			assert.Contains(t, stdout.String(), "Usage: wikiwalk")
			assert.Contains(t, stdout.String(), "Commands:")
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{}, stdout, stderr)

	// No args should show usage and return an error.
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage: wikiwalk")
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"bogus"}, stdout, stderr)

	assert.Error(t, err)
}

func TestRun_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	path := filepath.Join(t.TempDir(), "nope.yaml")
	err := m.Run(testContext(), []string{"--config", path, "cache", "stats"}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRun_CacheStats(t *testing.T) {
	t.Parallel()

	cachePath := filepath.Join(t.TempDir(), "pages.db")

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"--cache-path", cachePath, "cache", "stats"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "pages: 0")
	assert.Contains(t, stdout.String(), "0 B")

	// The database file is created on first use.
	_, statErr := os.Stat(cachePath)
	assert.NoError(t, statErr)
}

func TestRun_CacheClearRequiresForce(t *testing.T) {
	t.Parallel()

	cachePath := filepath.Join(t.TempDir(), "pages.db")

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"--cache-path", cachePath, "cache", "clear"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "--force")
}
