package sink

import "github.com/orgoj/logpipe/internal/record"

// Buffered is a sink decorator that accumulates records before
// forwarding them to the wrapped sink.
//
// A capacity of 0 buffers without an upper bound; the buffer then
// empties only on an explicit flush or on Close. With a positive
// capacity, a record arriving at a full buffer either forces a flush
// first (overflow-to-disk) or is discarded.
//
// Records at or above the flush level force an immediate flush of
// everything buffered so far, the record included.
//
// Buffered does not lock; the owning logger serializes access to a
// given pipeline (single writer at a time). Buffered-but-unflushed
// records are lost if the process exits without Close.
type Buffered struct {
	inner          Sink
	capacity       int
	flushLevel     record.Level
	overflowToDisk bool
	buf            []record.Record

	// OnDiscard, when set, is called for every record dropped on
	// overflow. Used for drop accounting.
	OnDiscard func(rec record.Record)
}

// NewBuffered wraps a sink in a buffering decorator.
func NewBuffered(inner Sink, capacity int, flushLevel record.Level, overflowToDisk bool) *Buffered {
	return &Buffered{
		inner:          inner,
		capacity:       capacity,
		flushLevel:     flushLevel,
		overflowToDisk: overflowToDisk,
	}
}

// Log buffers the record, applying the overflow policy when the buffer
// is full and flushing when the record reaches the flush level.
func (b *Buffered) Log(rec record.Record) error {
	if b.capacity > 0 && len(b.buf) >= b.capacity {
		if !b.overflowToDisk {
			if b.OnDiscard != nil {
				b.OnDiscard(rec)
			}
			return nil
		}
		if err := b.Flush(); err != nil {
			return err
		}
	}

	b.buf = append(b.buf, rec)

	if rec.Level >= b.flushLevel {
		return b.Flush()
	}
	return nil
}

// Flush forwards all buffered records to the wrapped sink in order. On a
// write error the failed record and everything after it stay buffered.
func (b *Buffered) Flush() error {
	for len(b.buf) > 0 {
		if err := b.inner.Log(b.buf[0]); err != nil {
			return err
		}
		b.buf = b.buf[1:]
	}
	return nil
}

// Len returns the number of buffered records.
func (b *Buffered) Len() int { return len(b.buf) }

// Capacity returns the configured line limit, 0 meaning unbounded.
func (b *Buffered) Capacity() int { return b.capacity }

// Close flushes the buffer and closes the wrapped sink. The sink is
// closed even if the flush fails; the flush error wins.
func (b *Buffered) Close() error {
	flushErr := b.Flush()
	closeErr := b.inner.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Kind reports the wrapped sink's kind.
func (b *Buffered) Kind() string { return b.inner.Kind() }

var _ Sink = (*Buffered)(nil)
