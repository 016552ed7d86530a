// Package progress provides ports.ProgressSink implementations. The
// default ConsoleSink pairs a spinner with colored per-file status lines,
// replacing the teacher's reliance on a package-global log.Printf with an
// injected sink (spec.md §9's logging note).
package progress

import (
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/jordanro2/rotable/internal/ports"
)

// ConsoleSink prints a colored OK/FAIL line per converted file, with a
// spinner running between reports.
type ConsoleSink struct {
	spin *spinner.Spinner
	ok   *color.Color
	fail *color.Color
}

// NewConsoleSink constructs a ConsoleSink with its spinner started.
func NewConsoleSink() *ConsoleSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Prefix = "Converting... "
	s.Start()
	return &ConsoleSink{
		spin: s,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed),
	}
}

// Report prints one file's outcome, pausing the spinner so the line
// doesn't get overwritten mid-frame.
func (c *ConsoleSink) Report(input, output string, err error) {
	c.spin.Stop()
	if err != nil {
		c.fail.Printf("FAIL %s: %v\n", input, err)
	} else {
		c.ok.Printf("OK   %s -> %s\n", input, output)
	}
	c.spin.Start()
}

// Stop halts the spinner; call once the batch has fully drained.
func (c *ConsoleSink) Stop() {
	c.spin.Stop()
}

var _ ports.ProgressSink = (*ConsoleSink)(nil)

// Printf-style summary helper used by cmd/rotable after a batch completes.
func PrintSummary(total, failed int) {
	if failed == 0 {
		color.New(color.FgGreen).Printf("%d file(s) converted successfully.\n", total)
		return
	}
	color.New(color.FgYellow).Printf("%d/%d file(s) converted, %d failed.\n", total-failed, total, failed)
}
