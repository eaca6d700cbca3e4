package event

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Appender appends one event to a log.
type Appender interface {
	Append(ctx context.Context, eventType string) error
}

// Recorder wraps an Appender for fire-and-forget usage logging. A
// failed write must never block or break the main interaction, so
// failures are reported to stderr and swallowed.
type Recorder struct {
	log  Appender
	errw io.Writer
}

// NewRecorder returns a Recorder that reports failures to stderr.
func NewRecorder(log Appender) *Recorder {
	return &Recorder{log: log, errw: os.Stderr}
}

// NewRecorderWithWriter returns a Recorder that reports failures to w.
func NewRecorderWithWriter(log Appender, w io.Writer) *Recorder {
	return &Recorder{log: log, errw: w}
}

// Record appends one event, best-effort.
func (r *Recorder) Record(ctx context.Context, eventType string) {
	if err := r.log.Append(ctx, eventType); err != nil {
		if _, werr := fmt.Fprintf(r.errw, "failed to record %s event: %v\n", eventType, err); werr != nil {
			// Best-effort logging to stderr.
			_ = werr
		}
	}
}
