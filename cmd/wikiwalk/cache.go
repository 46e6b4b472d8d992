package main

import (
	"fmt"

	"github.com/fwojciec/wikiwalk"
	"github.com/fwojciec/wikiwalk/walk"
)

// Run executes the cache stats command.
func (c *CacheStatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Cache.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikiwalk.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "pages: %d\n", stats.Pages)
	fmt.Fprintf(deps.Stdout, "size:  %s\n", walk.FormatBytes(stats.Bytes))
	if !stats.OldestFetch.IsZero() {
		fmt.Fprintf(deps.Stdout, "oldest: %s\n", stats.OldestFetch.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(deps.Stdout, "newest: %s\n", stats.NewestFetch.Format("2006-01-02 15:04:05"))
	}

	return nil
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintln(deps.Stdout, "This removes all cached pages. Re-run with --force to confirm.")
		return nil
	}

	if err := deps.Cache.Clear(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikiwalk.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Page cache cleared.")
	return nil
}
