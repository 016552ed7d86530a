package progress

import "github.com/jordanro2/rotable/internal/ports"

// NoopSink discards every report. Used by tests and any caller that wants
// a silent ConversionService.
type NoopSink struct{}

// Report does nothing.
func (NoopSink) Report(input, output string, err error) {}

var _ ports.ProgressSink = NoopSink{}
