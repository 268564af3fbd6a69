package config

import (
	"strings"

	"github.com/orgoj/logpipe/internal/formatter"
	"github.com/orgoj/logpipe/internal/record"
)

// Defaults applied by Resolve when a key is absent or empty.
const (
	DefaultLevel      = "error"
	DefaultDriver     = "php"
	DefaultFilePath   = "storage/log"
	DefaultFileFormat = "Y-m-d"
	DefaultOutput     = "stdout"
)

// Options is the configuration block of a single logger: a level, a
// selected driver name and the per-driver option sets. It is the
// already-parsed configuration object the pipeline builder consumes; an
// empty value means all defaults apply (driver "php", level "error", no
// buffering).
type Options struct {
	Level   string            `yaml:"level,omitempty"`
	Driver  string            `yaml:"driver,omitempty"`
	Drivers map[string]Driver `yaml:"drivers,omitempty" validate:"dive"`
}

// Driver holds the options of one named driver profile. Which fields
// apply depends on the driver; unused fields are ignored.
type Driver struct {
	// Generic buffering options, any driver.
	MaxBufferedLines    int  `yaml:"max_buffered_lines,omitempty" validate:"min=0"`
	FlushOverflowToDisk bool `yaml:"flush_overflow_to_disk,omitempty"`

	// File output ("file" driver, or "ecs" with output: file).
	FilePath   string   `yaml:"file_path,omitempty"`
	FileFormat string   `yaml:"file_format,omitempty"`
	Rotation   Rotation `yaml:"rotation,omitempty"`

	// Line formatting, non-structured drivers.
	LineFormat   string `yaml:"line_format,omitempty"`
	LineDatetime string `yaml:"line_datetime,omitempty"`

	// "ecs" driver.
	Output  string   `yaml:"output,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
	Service Service  `yaml:"service,omitempty"`

	// "gelf" driver.
	Host        string `yaml:"host,omitempty"`
	Port        int    `yaml:"port,omitempty" validate:"min=0,max=65535"`
	Protocol    string `yaml:"protocol,omitempty" validate:"omitempty,oneof=udp tcp"`
	Compression string `yaml:"compression,omitempty" validate:"omitempty,oneof=none gzip zlib"`

	// Record filtering, any driver.
	Suppress  []string `yaml:"suppress,omitempty"`
	RateLimit float64  `yaml:"rate_limit,omitempty" validate:"min=0"`
}

// Service is the static service identity attached to every record by
// the ECS service-metadata injector.
type Service struct {
	Name        string `yaml:"name,omitempty"`
	Version     string `yaml:"version,omitempty"`
	Environment string `yaml:"environment,omitempty"`
	Type        string `yaml:"type,omitempty"`
}

// Empty reports whether no identity field is set.
func (s Service) Empty() bool {
	return s.Name == "" && s.Version == "" && s.Environment == "" && s.Type == ""
}

// Rotation holds optional file rotation parameters, delegated to the
// rotating writer.
type Rotation struct {
	MaxSizeMB  int  `yaml:"max_size_mb,omitempty" validate:"min=0"`
	MaxBackups int  `yaml:"max_backups,omitempty" validate:"min=0"`
	MaxAgeDays int  `yaml:"max_age_days,omitempty" validate:"min=0"`
	Compress   bool `yaml:"compress,omitempty"`
}

// Settings is the fully-defaulted, strongly-typed result of resolving an
// Options value. The builder logic runs on Settings only, so "what are
// the defaults" stays separate from "what do we do with them".
type Settings struct {
	Level  record.Level
	Driver string // lower-cased

	MaxBufferedLines    int
	FlushOverflowToDisk bool

	FilePath   string
	FileFormat string
	Rotation   Rotation

	LineFormat   string
	LineDatetime string

	Output  string // lower-cased
	Tags    []string
	Service Service

	Host        string
	Port        int
	Protocol    string
	Compression string

	Suppress  []string
	RateLimit float64
}

// Resolve applies all defaults and returns the settings for the selected
// driver. Unrecognized level names resolve to the default level;
// unrecognized driver or output names are kept as-is, lower-cased, for
// the builder's documented fallback handling. Never fails.
func Resolve(opts Options) Settings {
	level, _ := record.ParseLevel(firstNonEmpty(opts.Level, DefaultLevel))
	driver := strings.ToLower(strings.TrimSpace(firstNonEmpty(opts.Driver, DefaultDriver)))

	drv := driverOptions(opts.Drivers, driver)

	return Settings{
		Level:  level,
		Driver: driver,

		MaxBufferedLines:    maxInt(drv.MaxBufferedLines, 0),
		FlushOverflowToDisk: drv.FlushOverflowToDisk,

		FilePath:   firstNonEmpty(drv.FilePath, DefaultFilePath),
		FileFormat: firstNonEmpty(drv.FileFormat, DefaultFileFormat),
		Rotation:   drv.Rotation,

		LineFormat:   firstNonEmpty(drv.LineFormat, formatter.DefaultLineFormat),
		LineDatetime: firstNonEmpty(drv.LineDatetime, formatter.DefaultLineDatetime),

		Output:  strings.ToLower(strings.TrimSpace(firstNonEmpty(drv.Output, DefaultOutput))),
		Tags:    drv.Tags,
		Service: drv.Service,

		Host:        drv.Host,
		Port:        drv.Port,
		Protocol:    firstNonEmpty(drv.Protocol, "udp"),
		Compression: firstNonEmpty(drv.Compression, "none"),

		Suppress:  drv.Suppress,
		RateLimit: drv.RateLimit,
	}
}

// driverOptions looks up the sub-config of the selected driver. The
// lookup is case-insensitive, matching the builder's driver-name
// comparison; a missing entry yields the zero value, i.e. all defaults.
func driverOptions(drivers map[string]Driver, name string) Driver {
	if drv, ok := drivers[name]; ok {
		return drv
	}
	for key, drv := range drivers {
		if strings.EqualFold(key, name) {
			return drv
		}
	}
	return Driver{}
}

func firstNonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func maxInt(value, floor int) int {
	if value < floor {
		return floor
	}
	return value
}
