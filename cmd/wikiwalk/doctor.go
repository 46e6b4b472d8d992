package main

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Run executes the doctor command. Probes run in parallel; each reports
// independently and the command fails if any probe does.
func (c *DoctorCmd) Run(deps *Dependencies) error {
	type probe struct {
		name  string
		check func() error
	}

	probes := []probe{
		{
			name: "page endpoint",
			check: func() error {
				_, err := deps.ProbeHTTP.FetchPage(deps.Ctx, deps.Target)
				return err
			},
		},
		{
			name: "action API",
			check: func() error {
				_, err := deps.ProbeAPI.FetchPage(deps.Ctx, deps.Target)
				return err
			},
		},
		{
			name: "page cache",
			check: func() error {
				_, err := deps.Cache.Stats(deps.Ctx)
				return err
			},
		},
	}

	results := make([]error, len(probes))
	var g errgroup.Group
	for i, p := range probes {
		g.Go(func() error {
			results[i] = p.check()
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	for i, p := range probes {
		if results[i] != nil {
			failed = true
			fmt.Fprintf(deps.Stdout, "FAIL  %-14s %v\n", p.name, results[i])
			continue
		}
		fmt.Fprintf(deps.Stdout, "ok    %s\n", p.name)
	}

	if failed {
		return fmt.Errorf("some checks failed")
	}
	fmt.Fprintf(deps.Stdout, "\nAll checks passed against %s.\n", deps.BaseURL)
	return nil
}
