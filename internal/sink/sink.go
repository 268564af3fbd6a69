// Package sink implements the output destinations a log pipeline writes
// to, plus the buffering decorator that can wrap any of them.
package sink

import (
	"fmt"

	"github.com/orgoj/logpipe/internal/record"
)

// Sink is the final destination of a log record. The pipeline builder
// attaches a formatter to each sink; sinks serialize the records they
// receive themselves.
type Sink interface {
	// Log formats and writes a single record.
	Log(rec record.Record) error

	// Close releases the underlying resource and flushes anything buffered.
	Close() error

	// Kind returns the resolved output kind ("file", "stdout", "stderr",
	// "php", "gelf").
	Kind() string
}

// WriteError reports a failed write or flush on a sink. It is propagated
// to the caller of the logging call that triggered it.
type WriteError struct {
	Sink string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("sink %s: write failed: %v", e.Sink, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
