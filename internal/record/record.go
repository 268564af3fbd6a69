// Package record defines the log record value passed through the
// enrichment and handler chain.
package record

import "time"

// Record is a single log entry. Records are treated as immutable values:
// enrichment returns a modified copy and never writes into the Context or
// Extra maps of its input, so concurrent holders of the same record are
// unaffected.
type Record struct {
	Channel string
	Level   Level
	Time    time.Time
	Message string
	Context map[string]any
	Extra   map[string]any
}

// New creates a record for the given channel, stamped with the current time.
func New(channel string, level Level, message string, context map[string]any) Record {
	return Record{
		Channel: channel,
		Level:   level,
		Time:    time.Now().UTC(),
		Message: message,
		Context: context,
		Extra:   nil,
	}
}

// WithContext returns a copy of the record using the given context map.
func (r Record) WithContext(context map[string]any) Record {
	r.Context = context
	return r
}

// CopyContext returns a shallow copy of the record's context map, never nil.
func (r Record) CopyContext() map[string]any {
	out := make(map[string]any, len(r.Context)+1)
	for k, v := range r.Context {
		out[k] = v
	}
	return out
}
