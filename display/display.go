package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"compressor/models"
)

// recentEvents is how many finished units the status line remembers
const recentEvents = 5

// Display renders batch progress as a single rewritten terminal line
// and keeps a short ring of recent per-file events. Safe for use from
// the progress callbacks of concurrent workers.
type Display struct {
	mu sync.Mutex
	w  io.Writer

	total     int
	done      int
	fractions map[string]float64 // unit ID -> last reported fraction
	recent    []string

	lineWidth int // widest line written so far, for clean rewrites
}

// New creates a display writing to w
func New(w io.Writer, total int) *Display {
	return &Display{
		w:         w,
		total:     total,
		fractions: make(map[string]float64),
	}
}

// Progress records a per-unit progress report and redraws the status line
func (d *Display) Progress(ev models.ProgressEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fractions[ev.UnitID] = ev.Fraction
	d.redraw(fmt.Sprintf("%s %3.0f%%", filepath.Base(ev.Source), ev.Fraction*100))
}

// Finished records a completed unit and pushes an event into the ring
func (d *Display) Finished(o models.Outcome) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.done++
	delete(d.fractions, o.UnitID)

	name := filepath.Base(o.Source)
	var event string
	switch o.Kind {
	case models.OutcomeCompleted:
		event = fmt.Sprintf("done     %s", name)
	case models.OutcomeSkipped:
		event = fmt.Sprintf("skipped  %s", name)
	case models.OutcomeCancelled:
		event = fmt.Sprintf("stopped  %s", name)
	case models.OutcomeFailed:
		event = fmt.Sprintf("FAILED   %s: %s", name, o.Reason)
	}

	d.recent = append(d.recent, event)
	if len(d.recent) > recentEvents {
		d.recent = d.recent[1:]
	}

	// Finished files get their own scrolling line above the status
	d.clearLine()
	fmt.Fprintf(d.w, "%s\n", event)
	d.redraw("")
}

// Recent returns the ring of recent events, oldest first
func (d *Display) Recent() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, len(d.recent))
	copy(out, d.recent)
	return out
}

// Summary clears the status line and prints the final batch report,
// then rings the terminal bell.
func (d *Display) Summary(state models.BatchState) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.clearLine()

	fmt.Fprintln(d.w, "═══════════════════════════════════════════════════════════")
	if state.Interrupted {
		fmt.Fprintln(d.w, "                 Batch Interrupted                        ")
	} else {
		fmt.Fprintln(d.w, "                 Batch Complete                           ")
	}
	fmt.Fprintln(d.w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(d.w, "Processed:      %d of %d\n", state.Processed, state.TotalUnits)
	fmt.Fprintf(d.w, "Encoded:        %d\n", state.Encoded)
	fmt.Fprintf(d.w, "Skipped:        %d\n", state.Skipped)
	if state.Cancelled > 0 {
		fmt.Fprintf(d.w, "Cancelled:      %d\n", state.Cancelled)
	}
	if state.Failed > 0 {
		fmt.Fprintf(d.w, "Failed:         %d\n", state.Failed)
	}
	if state.Encoded > 0 {
		fmt.Fprintf(d.w, "Source Size:    %s\n", formatBytes(state.SourceBytes))
		fmt.Fprintf(d.w, "Output Size:    %s\n", formatBytes(state.OutputBytes))
		fmt.Fprintf(d.w, "Space Saved:    %s (%.1f%%)\n", formatBytes(state.SpaceSaved()), state.SavedPercent())
	}
	fmt.Fprintln(d.w, "═══════════════════════════════════════════════════════════")
	fmt.Fprint(d.w, "\a")
}

// redraw rewrites the in-place status line. Caller holds the lock.
func (d *Display) redraw(detail string) {
	line := fmt.Sprintf("[%d/%d]", d.done, d.total)
	if n := len(d.fractions); n > 0 {
		line += fmt.Sprintf(" %d running", n)
	}
	if detail != "" {
		line += " " + detail
	}

	pad := ""
	if len(line) < d.lineWidth {
		pad = strings.Repeat(" ", d.lineWidth-len(line))
	} else {
		d.lineWidth = len(line)
	}

	fmt.Fprintf(d.w, "\r%s%s", line, pad)
}

// clearLine blanks the status line so normal output can follow. Caller holds the lock.
func (d *Display) clearLine() {
	if d.lineWidth > 0 {
		fmt.Fprintf(d.w, "\r%s\r", strings.Repeat(" ", d.lineWidth))
	}
}

// formatBytes renders a byte count in a human friendly unit
func formatBytes(n int64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)

	switch {
	case n >= gib:
		return fmt.Sprintf("%.2f GiB", float64(n)/gib)
	case n >= mib:
		return fmt.Sprintf("%.2f MiB", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.2f KiB", float64(n)/kib)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
