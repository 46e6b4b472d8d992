// Package walk provides the first-link traversal engine. It coordinates
// fetching, content location, and link extraction, and owns the visited
// path and loop-escape policy for a single run.
package walk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/wikiwalk"
	"github.com/google/uuid"
)

// DefaultTarget is the article a walk tries to reach.
const DefaultTarget = wikiwalk.Title("Philosophy")

// DefaultMaxIterations bounds the number of steps in a single run.
const DefaultMaxIterations = 500

// Walker drives repeated fetch, locate, extract, advance cycles until a
// terminal outcome is reached. Run is total: every failure becomes a
// terminal Outcome, never an error, pushing all failure interpretation
// to the caller.
type Walker struct {
	Fetcher       wikiwalk.Fetcher
	Locators      wikiwalk.LocatorRegistry
	Extractor     wikiwalk.LinkExtractor
	Target        wikiwalk.Title
	MaxIterations int
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Iteration int
	Title     wikiwalk.Title
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressVisited
	ProgressEscaped
	ProgressFinished
)

// ProgressFunc is a callback for reporting walk progress.
type ProgressFunc func(event ProgressEvent)

// Run walks from start toward the target and returns the terminal
// outcome. The context is checked between steps and passed to the
// Fetcher; cancellation produces a "cancelled" outcome.
func (w *Walker) Run(ctx context.Context, start wikiwalk.Title, progress ProgressFunc) *wikiwalk.Outcome {
	begin := time.Now()

	target := w.Target.Canonical()
	if target == "" {
		target = DefaultTarget
	}
	maxIterations := w.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	current := start.Canonical()
	outcome := &wikiwalk.Outcome{
		RunID: uuid.New().String(),
		Path:  wikiwalk.Path{{Title: current, Seq: 0}},
	}
	defer func(o *wikiwalk.Outcome) {
		o.Steps = len(o.Path) - 1
		o.Duration = time.Since(begin)
		// The finished event names the terminal article; on a reached
		// run that is the appended target, not the page it was found on.
		last := o.Path[len(o.Path)-1].Title
		notify(progress, ProgressEvent{Type: ProgressFinished, Title: last})
	}(outcome)

	notify(progress, ProgressEvent{Type: ProgressStarted, Title: current})

	if current == target {
		outcome.Kind = wikiwalk.KindReached
		return outcome
	}

	for iteration := 1; ; iteration++ {
		if iteration > maxIterations {
			outcome.Kind = wikiwalk.KindLimit
			outcome.Reason = fmt.Sprintf("no path to %q within %d iterations", target.Display(), maxIterations)
			return outcome
		}
		if err := ctx.Err(); err != nil {
			outcome.Kind = wikiwalk.KindCancelled
			outcome.Reason = err.Error()
			return outcome
		}

		notify(progress, ProgressEvent{Type: ProgressVisited, Iteration: iteration, Title: current})

		doc, err := w.Fetcher.FetchPage(ctx, current)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				outcome.Kind = wikiwalk.KindCancelled
				outcome.Reason = err.Error()
				return outcome
			}
			outcome.Kind = wikiwalk.KindFetchFailed
			outcome.FailedTitle = current
			outcome.Reason = wikiwalk.ErrorMessage(err)
			return outcome
		}

		region, err := w.Locators.GetForDocument(doc).Locate(doc)
		if err != nil {
			return deadEnd(outcome, current, wikiwalk.ErrorMessage(err))
		}

		candidates, err := w.Extractor.ExtractLinks(region, current)
		if err != nil {
			return deadEnd(outcome, current, wikiwalk.ErrorMessage(err))
		}
		if len(candidates) == 0 {
			return deadEnd(outcome, current, "no qualifying link found")
		}

		next := candidates[0].Title.Canonical()
		if next == target {
			outcome.Path = append(outcome.Path, wikiwalk.Visit{Title: next, Seq: len(outcome.Path)})
			outcome.Kind = wikiwalk.KindReached
			return outcome
		}

		if outcome.Path.Contains(next) {
			// Single escape attempt: substitute the second-ranked
			// candidate for this step only; escapes never cascade and
			// never pop history.
			if len(candidates) > 1 && !outcome.Path.Contains(candidates[1].Title) {
				escape := candidates[1].Title.Canonical()
				outcome.Escapes++
				notify(progress, ProgressEvent{Type: ProgressEscaped, Iteration: iteration, Title: escape})
				outcome.Path = append(outcome.Path, wikiwalk.Visit{Title: escape, Seq: len(outcome.Path)})
				if escape == target {
					outcome.Kind = wikiwalk.KindReached
					return outcome
				}
				current = escape
				continue
			}

			// The loop point is appended so the repeat is visible in
			// the reported path.
			outcome.Path = append(outcome.Path, wikiwalk.Visit{Title: next, Seq: len(outcome.Path)})
			outcome.Kind = wikiwalk.KindLoop
			outcome.FailedTitle = next
			outcome.Reason = fmt.Sprintf("revisited %q with no usable alternative link", next.Display())
			return outcome
		}

		outcome.Path = append(outcome.Path, wikiwalk.Visit{Title: next, Seq: len(outcome.Path)})
		current = next
	}
}

// deadEnd finalizes an outcome for a step that cannot continue.
func deadEnd(outcome *wikiwalk.Outcome, title wikiwalk.Title, reason string) *wikiwalk.Outcome {
	outcome.Kind = wikiwalk.KindDeadEnd
	outcome.FailedTitle = title
	outcome.Reason = reason
	return outcome
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
