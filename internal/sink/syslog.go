package sink

import (
	"fmt"
	"log/syslog"

	"github.com/orgoj/logpipe/internal/formatter"
	"github.com/orgoj/logpipe/internal/record"
)

// SyslogWriter is the subset of *syslog.Writer the sink uses, extracted
// so tests can substitute a fake.
type SyslogWriter interface {
	Debug(m string) error
	Info(m string) error
	Warning(m string) error
	Err(m string) error
	Crit(m string) error
	Close() error
}

// SyslogDial connects to the host system log. Variable to allow mocking
// in tests.
var SyslogDial = func(tag string) (SyslogWriter, error) {
	return syslog.New(syslog.LOG_INFO|syslog.LOG_USER, tag)
}

// Syslog writes formatted records to the host operating system's system
// log. Its kind is "php", the driver name that selects it.
type Syslog struct {
	writer SyslogWriter
	format formatter.Formatter
}

// NewSyslog connects to the system log using the logger name as the tag.
func NewSyslog(tag string, f formatter.Formatter) (*Syslog, error) {
	w, err := SyslogDial(tag)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system log: %w", err)
	}
	return &Syslog{writer: w, format: f}, nil
}

// Log formats the record and writes it at the matching syslog severity.
func (s *Syslog) Log(rec record.Record) error {
	line, err := s.format.Format(rec)
	if err != nil {
		return err
	}

	msg := string(line)
	switch {
	case rec.Level <= record.DEBUG:
		err = s.writer.Debug(msg)
	case rec.Level <= record.INFO:
		err = s.writer.Info(msg)
	case rec.Level <= record.WARN:
		err = s.writer.Warning(msg)
	case rec.Level <= record.ERROR:
		err = s.writer.Err(msg)
	default:
		err = s.writer.Crit(msg)
	}
	if err != nil {
		return &WriteError{Sink: s.Kind(), Err: err}
	}
	return nil
}

// Close closes the system log connection.
func (s *Syslog) Close() error { return s.writer.Close() }

// Kind returns "php".
func (s *Syslog) Kind() string { return "php" }

var _ Sink = (*Syslog)(nil)
