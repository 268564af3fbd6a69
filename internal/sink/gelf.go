package sink

import (
	"fmt"
	"os"

	"github.com/orgoj/logpipe/internal/record"
	"gopkg.in/Graylog2/go-gelf.v2/gelf"
)

// Factory variables to allow mocking in tests.
var (
	gelfUDPWriterFactory = gelf.NewUDPWriter
	gelfTCPWriterFactory = gelf.NewTCPWriter
)

// GelfOptions configures a GELF sink.
type GelfOptions struct {
	Host        string
	Port        int
	Protocol    string // "udp" (default) or "tcp"
	Compression string // "none" (default), "gzip" or "zlib"
}

// Gelf sends records to a Graylog endpoint as structured GELF messages.
// No formatter is attached; GELF defines its own wire format.
type Gelf struct {
	writer   gelf.Writer
	hostname string
}

// NewGelf creates a GELF sink. UDP writers honor the configured
// compression type; TCP writers do not compress.
func NewGelf(opts GelfOptions) (*Gelf, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("host is required for the gelf driver")
	}
	if opts.Port <= 0 || opts.Port > 65535 {
		return nil, fmt.Errorf("invalid gelf port: %d", opts.Port)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)

	var writer gelf.Writer
	if opts.Protocol == "tcp" {
		writer, err = gelfTCPWriterFactory(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to create GELF TCP writer: %w", err)
		}
	} else {
		udpWriter, err := gelfUDPWriterFactory(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to create GELF UDP writer: %w", err)
		}
		switch opts.Compression {
		case "gzip":
			udpWriter.CompressionType = gelf.CompressGzip
		case "zlib":
			udpWriter.CompressionType = gelf.CompressZlib
		default:
			udpWriter.CompressionType = gelf.CompressNone
		}
		writer = udpWriter
	}

	return &Gelf{writer: writer, hostname: hostname}, nil
}

// Log converts the record into a GELF message and sends it. Context and
// extra fields become additional fields with the required underscore
// prefix; complex values are stringified since GELF only carries scalars.
func (g *Gelf) Log(rec record.Record) error {
	msg := &gelf.Message{
		Version:  "1.1",
		Host:     g.hostname,
		Short:    rec.Message,
		TimeUnix: float64(rec.Time.Unix()) + float64(rec.Time.Nanosecond())/1e9,
		Level:    syslogSeverity(rec.Level),
		Extra:    map[string]interface{}{"_logger": rec.Channel},
	}

	addExtraFields(msg.Extra, rec.Context)
	addExtraFields(msg.Extra, rec.Extra)

	if err := g.writer.WriteMessage(msg); err != nil {
		return &WriteError{Sink: g.Kind(), Err: err}
	}
	return nil
}

func addExtraFields(extra map[string]interface{}, fields map[string]any) {
	for k, v := range fields {
		key := k
		if key == "" || key[0] != '_' {
			key = "_" + key
		}
		switch v := v.(type) {
		case string, float64, float32, int, int32, int64, uint, uint32, uint64, bool:
			extra[key] = v
		default:
			extra[key] = fmt.Sprintf("%v", v)
		}
	}
}

// syslogSeverity maps the internal level scale to GELF's syslog levels.
func syslogSeverity(level record.Level) int32 {
	switch {
	case level <= record.DEBUG:
		return 7
	case level <= record.INFO:
		return 6
	case level <= record.WARN:
		return 4
	case level <= record.ERROR:
		return 3
	default:
		return 2
	}
}

// Close closes the GELF writer.
func (g *Gelf) Close() error { return g.writer.Close() }

// Kind returns "gelf".
func (g *Gelf) Kind() string { return "gelf" }

var _ Sink = (*Gelf)(nil)
