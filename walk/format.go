package walk

import (
	"fmt"
	"time"

	"github.com/fwojciec/wikiwalk"
)

// FormatOutcome returns a one-line human-readable description of a
// terminal outcome.
func FormatOutcome(o *wikiwalk.Outcome) string {
	switch o.Kind {
	case wikiwalk.KindReached:
		return fmt.Sprintf("Reached %q in %d clicks", lastTitle(o).Display(), o.Steps)
	case wikiwalk.KindLoop:
		return fmt.Sprintf("Unrecoverable loop at %q", o.FailedTitle.Display())
	case wikiwalk.KindLimit:
		return fmt.Sprintf("Gave up after %d steps: %s", o.Steps, o.Reason)
	case wikiwalk.KindFetchFailed:
		return fmt.Sprintf("Failed to fetch %q: %s", o.FailedTitle.Display(), o.Reason)
	case wikiwalk.KindDeadEnd:
		return fmt.Sprintf("Dead end at %q: %s", o.FailedTitle.Display(), o.Reason)
	case wikiwalk.KindCancelled:
		return "Cancelled"
	default:
		return string(o.Kind)
	}
}

// lastTitle returns the final title of the outcome's path.
func lastTitle(o *wikiwalk.Outcome) wikiwalk.Title {
	if len(o.Path) == 0 {
		return ""
	}
	return o.Path[len(o.Path)-1].Title
}

// FormatDuration rounds a duration for display.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return d.Round(time.Second).String()
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	default:
		return d.Round(time.Millisecond).String()
	}
}

// TruncateTitle shortens a title for display, keeping the start which
// carries the distinguishing words.
func TruncateTitle(title string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(title) <= maxLen {
		return title
	}
	if maxLen < 4 {
		return title[:maxLen]
	}
	return title[:maxLen-3] + "..."
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
