// Package logger assembles log pipelines from configuration and exposes
// the leveled front-end applications log through.
package logger

import (
	"github.com/gobwas/glob"
	"github.com/orgoj/logpipe/internal/processor"
	"github.com/orgoj/logpipe/internal/record"
	"github.com/orgoj/logpipe/internal/sink"
	"golang.org/x/time/rate"
)

// Logger is a resolved pipeline: a level threshold, the enrichment
// processors in registration order and exactly one sink, possibly
// wrapped in a buffering decorator. A Logger is built once per
// instantiation and is not reconfigured afterwards.
//
// A logging call runs the full enrichment-and-handler chain inline
// before returning. The Logger serializes nothing above the sinks; the
// single-writer-at-a-time discipline documented on the buffering
// decorator is the caller's to keep when sharing one Logger across
// goroutines with buffering enabled.
type Logger struct {
	name       string
	level      record.Level
	processors []processor.Processor
	sink       sink.Sink
	suppress   []glob.Glob
	limiter    *rate.Limiter
}

// Name returns the logger (channel) name.
func (l *Logger) Name() string { return l.name }

// Level returns the minimum level emitted.
func (l *Logger) Level() record.Level { return l.level }

// Kind returns the resolved output kind of the sink.
func (l *Logger) Kind() string { return l.sink.Kind() }

// Log emits one record through the pipeline: level filter, suppression
// and rate limiting, then the enrichment processors in order, then the
// sink. Sink I/O failures are returned to the caller, not swallowed.
func (l *Logger) Log(level record.Level, message string, context map[string]any) error {
	if level < l.level {
		return nil
	}

	for _, g := range l.suppress {
		if g.Match(message) {
			recordsDropped.WithLabelValues(l.name, dropSuppressed).Inc()
			return nil
		}
	}
	if l.limiter != nil && !l.limiter.Allow() {
		recordsDropped.WithLabelValues(l.name, dropRateLimited).Inc()
		return nil
	}

	rec := record.New(l.name, level, message, context)
	for _, p := range l.processors {
		rec = p.Process(rec)
	}

	if err := l.sink.Log(rec); err != nil {
		return err
	}
	recordsTotal.WithLabelValues(l.name).Inc()
	return nil
}

// Trace logs a message at TRACE level.
func (l *Logger) Trace(message string, context map[string]any) error {
	return l.Log(record.TRACE, message, context)
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(message string, context map[string]any) error {
	return l.Log(record.DEBUG, message, context)
}

// Info logs a message at INFO level.
func (l *Logger) Info(message string, context map[string]any) error {
	return l.Log(record.INFO, message, context)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(message string, context map[string]any) error {
	return l.Log(record.WARN, message, context)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(message string, context map[string]any) error {
	return l.Log(record.ERROR, message, context)
}

// Fatal logs a message at FATAL level. It does not terminate the
// process; that decision belongs to the caller.
func (l *Logger) Fatal(message string, context map[string]any) error {
	return l.Log(record.FATAL, message, context)
}

// Close flushes any buffered records and releases the sink.
func (l *Logger) Close() error {
	return l.sink.Close()
}
