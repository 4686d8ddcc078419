// Package display renders search progress and results on the terminal.
//
// DisplayManager is the consumer side of the search pipeline: it drains the
// match and status streams without ever blocking the producer, keeps a live
// status line updated, and prints matches the moment they arrive. All output
// goes through an injected io.Writer so the package is fully testable; the
// animated status line is only rendered when the writer is a terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/seek/internal/search"
)

// spinnerFrames are the braille frames cycled on the status line.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	// pollInterval bounds CPU use between polling passes.
	pollInterval = 10 * time.Millisecond

	// refreshInterval forces a status refresh when both streams are idle,
	// covering the gap before the worker's first message.
	refreshInterval = 100 * time.Millisecond

	// matchBatch caps how many matches are drained per pass so status
	// events are still serviced fairly.
	matchBatch = 10
)

// Tally is the consumer-side aggregate returned by ProcessResults. The
// caller folds it into the final search result together with the elapsed
// time measured from the searcher's clock.
type Tally struct {
	Found            int
	FilesScanned     int
	PermissionErrors int
	LimitReached     bool
	TimedOut         bool
}

// DisplayManager drives the terminal during a search run.
type DisplayManager struct {
	writer      io.Writer
	interactive bool

	frame            int
	lineActive       bool
	currentPath      string
	fileCount        int
	foundCount       int
	permissionErrors int
	maxFiles         int
}

// NewDisplayManager creates a DisplayManager writing to stdout. The status
// line is enabled only when stdout is a terminal.
func NewDisplayManager() *DisplayManager {
	return NewDisplayManagerWithWriter(os.Stdout, isatty.IsTerminal(os.Stdout.Fd()))
}

// NewDisplayManagerWithWriter creates a DisplayManager with an explicit
// writer and status-line toggle.
func NewDisplayManagerWithWriter(w io.Writer, interactive bool) *DisplayManager {
	return &DisplayManager{
		writer:      w,
		interactive: interactive,
		currentPath: "...",
	}
}

// ProcessResults drains both streams until the worker's Done event, printing
// matches as they arrive and keeping the status line current. Neither stream
// is ever blocked on: both are polled, with a short sleep bounding CPU use.
func (d *DisplayManager) ProcessResults(results *search.Queue[string], status *search.Queue[search.StatusEvent]) Tally {
	var tally Tally
	received := false
	lastRefresh := time.Now()

	for {
		updated := false

		if ev, ok := status.TryPop(); ok {
			received = true
			updated = true

			switch ev.Kind {
			case search.StatusCurrentPath:
				d.currentPath = ev.Path
				d.refresh()
			case search.StatusFileCount:
				d.fileCount = ev.Count
				d.maxFiles = ev.Cap
				d.refresh()
			case search.StatusPermissionErrors:
				d.permissionErrors = ev.Count
				d.refresh()
			case search.StatusTimeout:
				// Terminal condition, but keep draining: matches may
				// still be in flight.
				tally.TimedOut = true
				d.setLine(fmt.Sprintf("Search timed out after %d seconds! (%d scanned, %d found)",
					ev.Seconds, d.fileCount, d.foundCount))
			case search.StatusLimitReached:
				tally.LimitReached = true
				d.setLine(fmt.Sprintf("File limit reached (%d)! Finishing search...", ev.Count))
			case search.StatusDone:
				d.clearLine()
				tally.Found = d.foundCount
				tally.FilesScanned = d.fileCount
				tally.PermissionErrors = d.permissionErrors
				return tally
			}
		}

		for n := 0; n < matchBatch; n++ {
			path, ok := results.TryPop()
			if !ok {
				break
			}
			d.foundCount++
			updated = true
			d.printMatch(path)
			if d.foundCount == 1 || d.foundCount%5 == 0 {
				d.refresh()
			}
		}

		if !updated && time.Since(lastRefresh) > refreshInterval {
			if received {
				d.refresh()
			} else {
				d.setLine("Preparing search...")
			}
			lastRefresh = time.Now()
		}

		time.Sleep(pollInterval)
	}
}

// Finish prints the final summary for the run.
func (d *DisplayManager) Finish(result *search.Result, basePath string) {
	d.clearLine()

	// Floor the elapsed time so near-instant runs never read as 0.0s.
	elapsed := result.Elapsed
	if elapsed < 100*time.Millisecond {
		elapsed = 100 * time.Millisecond
	}

	permissionNote := ""
	if result.PermissionErrors > 0 {
		permissionNote = fmt.Sprintf(", %d permission errors", result.PermissionErrors)
	}

	switch {
	case result.TimedOut:
		color.New(color.FgYellow).Fprintf(d.writer, "Search timed out after %.1fs! %s in %s (scanned %d files%s)\n",
			elapsed.Seconds(), matchText(result.Matches), basePath, result.FilesScanned, permissionNote)
	case result.LimitReached:
		color.New(color.FgYellow).Fprintf(d.writer, "Search stopped at file limit! %s in %s (%.1fs%s)\n",
			matchText(result.Matches), basePath, elapsed.Seconds(), permissionNote)
	default:
		color.New(color.FgGreen).Fprintf(d.writer, "Search complete! %s in %s (%.1fs, %d files%s)\n",
			matchText(result.Matches), basePath, elapsed.Seconds(), result.FilesScanned, permissionNote)
	}
}

// PermissionHint suggests re-running with elevated privileges after a run
// with many permission errors.
func PermissionHint(w io.Writer, permissionErrors int, path, pattern string, darwin bool) {
	if permissionErrors <= 5 {
		return
	}

	yellow := color.New(color.FgYellow)
	yellow.Fprintln(w, "\nHint: Many permission errors encountered. Try running with sudo:")
	yellow.Fprintf(w, "      sudo seek %q %q\n", path, pattern)

	if darwin {
		yellow.Fprintln(w, "\nOn macOS, some directories may still be restricted due to System Integrity Protection.")
		yellow.Fprintln(w, "For searching user data directories, you may need to grant Terminal 'Full Disk Access'")
		yellow.Fprintln(w, "in System Preferences → Privacy & Security → Full Disk Access.")
	}
}

// matchText phrases the match count for a summary line.
func matchText(matches int) string {
	switch matches {
	case 0:
		return "No matches found"
	case 1:
		return "Found 1 match"
	default:
		return fmt.Sprintf("Found %d matches", matches)
	}
}

// printMatch prints a matched path, clearing the status line first so
// output never interleaves mid-line.
func (d *DisplayManager) printMatch(path string) {
	d.clearLine()
	color.New(color.FgGreen).Fprintln(d.writer, path)
	d.renderLine(d.statusMessage())
}

// refresh re-renders the status line with current stats.
func (d *DisplayManager) refresh() {
	d.renderLine(d.statusMessage())
}

// setLine replaces the status line with an explicit message.
func (d *DisplayManager) setLine(msg string) {
	d.renderLine(msg)
}

// renderLine draws the spinner and message in place. Off-terminal this is a
// no-op: matches and summaries are the only non-interactive output.
func (d *DisplayManager) renderLine(msg string) {
	if !d.interactive {
		return
	}
	frame := spinnerFrames[d.frame%len(spinnerFrames)]
	d.frame++
	fmt.Fprintf(d.writer, "\r\x1b[K%s %s", frame, msg)
	d.lineActive = true
}

// clearLine erases the status line if one is showing.
func (d *DisplayManager) clearLine() {
	if !d.interactive || !d.lineActive {
		return
	}
	fmt.Fprint(d.writer, "\r\x1b[K")
	d.lineActive = false
}

// statusMessage composes the running status text from observed stats.
func (d *DisplayManager) statusMessage() string {
	// Early finds get a louder message so the first hits are obvious.
	if d.foundCount > 0 && d.foundCount < 5 {
		plural := "es"
		if d.foundCount == 1 {
			plural = ""
		}
		return fmt.Sprintf("Found %d match%s! Continuing search...", d.foundCount, plural)
	}

	countMsg := "searching"
	if d.fileCount > 0 {
		countMsg = fmt.Sprintf("%d scanned", d.fileCount)
	}

	foundMsg := ""
	if d.foundCount > 0 {
		foundMsg = fmt.Sprintf(", %d found", d.foundCount)
	}

	permissionMsg := ""
	if d.permissionErrors > 0 {
		permissionMsg = fmt.Sprintf(", %d permission errors", d.permissionErrors)
	}

	remaining := ""
	if d.maxFiles > 0 && d.maxFiles > d.fileCount {
		remaining = fmt.Sprintf(", %d remaining", d.maxFiles-d.fileCount)
	}

	return fmt.Sprintf("Searching in: %s (%s%s%s%s)", d.currentPath, countMsg, foundMsg, permissionMsg, remaining)
}
