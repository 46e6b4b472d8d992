package main

import (
	"fmt"

	"github.com/fwojciec/wikiwalk"
	"github.com/fwojciec/wikiwalk/walk"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	walker := &walk.Walker{
		Fetcher:       deps.Fetcher,
		Locators:      deps.Locators,
		Extractor:     deps.Extractor,
		Target:        deps.Target,
		MaxIterations: deps.MaxIterations,
	}

	progress := func(event walk.ProgressEvent) {
		switch event.Type {
		case walk.ProgressVisited:
			fmt.Fprintf(deps.Stdout, "%4d. %s\n", event.Iteration, event.Title.Display())
		case walk.ProgressEscaped:
			fmt.Fprintf(deps.Stdout, "      (loop detected, taking second link: %s)\n", event.Title.Display())
		}
	}

	outcome := walker.Run(deps.Ctx, wikiwalk.Title(c.Start), progress)

	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, walk.FormatOutcome(outcome))
	fmt.Fprintf(deps.Stdout, "  steps: %d  escapes: %d  duration: %s\n",
		outcome.Steps, outcome.Escapes, walk.FormatDuration(outcome.Duration))

	if !outcome.Reached() {
		return fmt.Errorf("walk ended without reaching %q", deps.Target.Display())
	}
	return nil
}
