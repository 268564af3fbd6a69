package logger

import (
	"math"
	"strings"

	"github.com/gobwas/glob"
	"github.com/orgoj/logpipe/internal/config"
	"github.com/orgoj/logpipe/internal/formatter"
	"github.com/orgoj/logpipe/internal/processor"
	"github.com/orgoj/logpipe/internal/record"
	"github.com/orgoj/logpipe/internal/sink"
	"golang.org/x/time/rate"
)

// Build maps a declarative configuration into a concrete pipeline for
// the named logger: one sink with its formatter attached, the
// enrichment processors in order and the buffering decision. File paths
// are resolved against basePath.
//
// Unknown driver names behave like "php" and unknown ecs output values
// fall back to "stdout"; both are designed fallbacks, not errors. The
// only build-time failures are unusable file paths (ConfigurationError)
// and sinks whose resource cannot be opened.
func Build(name string, opts config.Options, basePath string) (*Logger, error) {
	set := config.Resolve(opts)

	var out sink.Sink
	var procs []processor.Processor
	var err error

	switch set.Driver {
	case "ecs":
		out, err = buildECSSink(name, set, basePath)
		if err != nil {
			return nil, err
		}

		procs = append(procs, processor.CollisionGuard{})
		if !set.Service.Empty() {
			procs = append(procs, processor.ServiceInjector{Metadata: processor.ServiceMetadata{
				Name:        set.Service.Name,
				Version:     set.Service.Version,
				Environment: set.Service.Environment,
				Type:        set.Service.Type,
			}})
		}

		if set.MaxBufferedLines > 0 {
			out = newBuffered(name, out, set)
		}

	case "gelf":
		out, err = sink.NewGelf(sink.GelfOptions{
			Host:        set.Host,
			Port:        set.Port,
			Protocol:    set.Protocol,
			Compression: set.Compression,
		})
		if err != nil {
			return nil, err
		}
		if set.MaxBufferedLines > 0 {
			out = newBuffered(name, out, set)
		}

	default:
		// "file", "php" and anything unrecognized: line formatting, and
		// unknown drivers silently behave like "php".
		lineFormat := formatter.NewLine(set.LineFormat, set.LineDatetime)

		if set.Driver == "file" {
			path, err := logFilePath(name, basePath, set.FilePath, set.FileFormat)
			if err != nil {
				return nil, err
			}
			out, err = sink.NewFile(path, rotation(set), lineFormat)
			if err != nil {
				return nil, err
			}
		} else {
			out, err = sink.NewSyslog(name, lineFormat)
			if err != nil {
				return nil, err
			}
		}

		// This branch always buffers, even at capacity 0 (unbounded,
		// flushed on close only). The ecs branch instead skips the
		// decorator at 0. The asymmetry is backward-compatible behavior
		// and is kept on purpose; see DESIGN.md.
		out = newBuffered(name, out, set)
	}

	l := &Logger{
		name:       name,
		level:      set.Level,
		processors: procs,
		sink:       out,
		suppress:   compileSuppress(set.Suppress),
		limiter:    newLimiter(set.RateLimit),
	}

	// The init diagnostic goes through the fully assembled chain, so it
	// is subject to the same level filter and buffering as any record.
	switch set.Driver {
	case "ecs":
		_ = l.Debug("ECS logger initialized", map[string]any{
			"logger.name":   name,
			"logger.level":  strings.ToLower(set.Level.String()),
			"logger.output": out.Kind(),
		})
	default:
		_ = l.Debug("Logger created successfully", map[string]any{
			"logger.name":  name,
			"logger.level": strings.ToLower(set.Level.String()),
		})
	}

	return l, nil
}

// buildECSSink selects the ecs driver's sink by its output value and
// attaches the ECS formatter bound to the configured tags.
func buildECSSink(name string, set config.Settings, basePath string) (sink.Sink, error) {
	ecsFormat := formatter.NewECS(set.Tags)

	switch set.Output {
	case "file":
		path, err := logFilePath(name, basePath, set.FilePath, set.FileFormat)
		if err != nil {
			return nil, err
		}
		return sink.NewFile(path, rotation(set), ecsFormat)
	case "stderr":
		return sink.NewStderr(ecsFormat), nil
	case "php":
		return sink.NewSyslog(name, ecsFormat)
	case "stdout":
		return sink.NewStdout(ecsFormat), nil
	default:
		// Designed fallback for unknown or missing output values.
		return sink.NewStdout(ecsFormat), nil
	}
}

func newBuffered(name string, inner sink.Sink, set config.Settings) *sink.Buffered {
	buffered := sink.NewBuffered(inner, set.MaxBufferedLines, set.Level, set.FlushOverflowToDisk)
	buffered.OnDiscard = func(record.Record) {
		recordsDropped.WithLabelValues(name, dropBufferOverflow).Inc()
	}
	return buffered
}

func rotation(set config.Settings) sink.Rotation {
	return sink.Rotation{
		MaxSizeMB:  set.Rotation.MaxSizeMB,
		MaxBackups: set.Rotation.MaxBackups,
		MaxAgeDays: set.Rotation.MaxAgeDays,
		Compress:   set.Rotation.Compress,
	}
}

// compileSuppress compiles the suppression globs, skipping patterns that
// do not compile; config validation reports those much earlier.
func compileSuppress(patterns []string) []glob.Glob {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		globs = append(globs, g)
	}
	return globs
}

func newLimiter(recordsPerSecond float64) *rate.Limiter {
	if recordsPerSecond <= 0 {
		return nil
	}
	burst := int(math.Ceil(recordsPerSecond))
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(recordsPerSecond), burst)
}
