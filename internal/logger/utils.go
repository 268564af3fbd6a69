package logger

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/orgoj/logpipe/internal/formatter"
)

// logFilePath resolves the log file location as
// <basePath>/<filePath>/<date formatted with fileFormat>.log. It fails
// when the combined directory is unusable, which is the only
// configuration error the builder can raise.
func logFilePath(loggerName, basePath, filePath, fileFormat string) (string, error) {
	dir := filepath.Join(basePath, filePath)
	if strings.TrimSpace(dir) == "" || dir == "." {
		return "", &ConfigurationError{
			Logger: loggerName,
			Reason: "base_path and file_path resolve to an empty log directory",
		}
	}

	name := time.Now().Format(formatter.DateLayout(fileFormat)) + ".log"
	if name == ".log" {
		return "", &ConfigurationError{
			Logger: loggerName,
			Reason: "file_format resolves to an empty file name",
		}
	}

	return filepath.Join(dir, name), nil
}
