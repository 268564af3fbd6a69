package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/orgoj/logpipe/internal/formatter"
	"github.com/orgoj/logpipe/internal/record"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Standard streams, overridable in tests.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Rotation holds the optional rotation parameters of a file stream.
// Rotation itself is delegated to lumberjack; a zero value means a plain
// append-only file.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (r Rotation) enabled() bool {
	return r.MaxSizeMB > 0 || r.MaxBackups > 0 || r.MaxAgeDays > 0
}

// Stream writes formatted records to an io.Writer, one line per record.
type Stream struct {
	mu     sync.Mutex
	kind   string
	writer io.Writer
	closer io.Closer // nil for process-owned streams
	format formatter.Formatter
}

// NewStream creates a sink over an already-open writer. The writer is
// not closed by Close; use NewFile for streams the sink should own.
func NewStream(kind string, w io.Writer, f formatter.Formatter) *Stream {
	return &Stream{kind: kind, writer: w, format: f}
}

// NewStdout returns a sink on the process standard output.
func NewStdout(f formatter.Formatter) *Stream {
	return NewStream("stdout", Stdout, f)
}

// NewStderr returns a sink on the process standard error.
func NewStderr(f formatter.Formatter) *Stream {
	return NewStream("stderr", Stderr, f)
}

// NewFile opens a file stream sink at path, creating parent directories
// as needed. The file is opened once, at build time, and held for the
// lifetime of the sink. With rotation configured the stream is a
// lumberjack logger instead of a plain file.
func NewFile(path string, rot Rotation, f formatter.Formatter) (*Stream, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}

	var w io.WriteCloser
	if rot.enabled() {
		w = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    rot.MaxSizeMB,
			MaxBackups: rot.MaxBackups,
			MaxAge:     rot.MaxAgeDays,
			Compress:   rot.Compress,
			LocalTime:  false,
		}
	} else {
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		w = file
	}

	return &Stream{kind: "file", writer: w, closer: w, format: f}, nil
}

// Log formats the record and appends it as one line.
func (s *Stream) Log(rec record.Record) error {
	line, err := s.format.Format(rec)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.writer.Write(line); err != nil {
		return &WriteError{Sink: s.kind, Err: err}
	}
	return nil
}

// Close closes the underlying stream if the sink owns it.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// Kind returns the stream kind.
func (s *Stream) Kind() string { return s.kind }

var _ Sink = (*Stream)(nil)
