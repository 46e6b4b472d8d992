package wikiwalk

import "time"

// Visit records one page in a traversal path.
type Visit struct {
	Title Title `json:"title"`
	Seq   int   `json:"seq"`
}

// Path is the ordered, append-only sequence of visited titles, owned
// exclusively by the traversal engine for the lifetime of one run.
// A title appears at most twice before the run is forced to terminate
// by loop-escape failure.
type Path []Visit

// Titles returns the visited titles in order.
func (p Path) Titles() []Title {
	titles := make([]Title, len(p))
	for i, visit := range p {
		titles[i] = visit.Title
	}
	return titles
}

// Contains reports whether the title already appears in the path.
// Comparison is by canonical title.
func (p Path) Contains(title Title) bool {
	canonical := title.Canonical()
	for _, visit := range p {
		if visit.Title.Canonical() == canonical {
			return true
		}
	}
	return false
}

// TerminalKind identifies how a traversal ended.
type TerminalKind string

// Terminal kinds. Every run ends in exactly one of these.
const (
	KindReached     TerminalKind = "reached"
	KindLoop        TerminalKind = "loop"
	KindLimit       TerminalKind = "limit"
	KindFetchFailed TerminalKind = "fetch_failed"
	KindDeadEnd     TerminalKind = "dead_end"
	KindCancelled   TerminalKind = "cancelled"
)

// Outcome is the terminal value of one traversal run. The engine always
// produces an Outcome; failures are reported through Kind and Reason,
// never as errors.
type Outcome struct {
	RunID string       `json:"runId"`
	Kind  TerminalKind `json:"kind"`
	Path  Path         `json:"path"`

	// FailedTitle is the title on which the run failed, set for
	// fetch_failed, dead_end, and loop outcomes.
	FailedTitle Title  `json:"failedTitle,omitempty"`
	Reason      string `json:"reason,omitempty"`

	Steps    int           `json:"steps"`
	Escapes  int           `json:"escapes"`
	Duration time.Duration `json:"duration"`
}

// Reached reports whether the traversal reached the target.
func (o *Outcome) Reached() bool {
	return o.Kind == KindReached
}
