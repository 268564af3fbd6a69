// Package formatter converts log records into their serialized output
// representation. A formatter is attached to a sink by the pipeline
// builder; sinks format the records they receive.
package formatter

import "github.com/orgoj/logpipe/internal/record"

// Formatter serializes a single record into one output line. The
// returned bytes do not include a trailing newline; sinks append one
// where their transport needs it.
type Formatter interface {
	Format(rec record.Record) ([]byte, error)
}
