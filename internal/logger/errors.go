package logger

import "fmt"

// ConfigurationError reports an unusable logger configuration detected
// at build time, before any sink is opened. Unknown driver or output
// names are not configuration errors; they degrade to documented
// fallbacks.
type ConfigurationError struct {
	Logger string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("logger %s: invalid configuration: %s", e.Logger, e.Reason)
}
