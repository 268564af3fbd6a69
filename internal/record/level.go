package record

import "strings"

// Level is a Bunyan-style numeric log severity.
type Level int

const (
	TRACE Level = 10
	DEBUG Level = 20
	INFO  Level = 30
	WARN  Level = 40
	ERROR Level = 50
	FATAL Level = 60
)

var levelNames = map[Level]string{
	TRACE: "TRACE",
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// String returns the upper-case level name, or "ERROR" for unknown values.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "ERROR"
}

// ParseLevel converts a level name to a Level, case-insensitively.
// "warn" and "warning" are both accepted. Unknown or empty names resolve
// to ERROR, the configuration default; the second return value reports
// whether the name was recognized.
func ParseLevel(name string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return TRACE, true
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	case "FATAL":
		return FATAL, true
	}
	return ERROR, false
}
