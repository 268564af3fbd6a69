package logger

import (
	"fmt"
	"sync"

	"github.com/orgoj/logpipe/internal/config"
)

// Manager owns the named logger instances built from a configuration
// file and handles their lifecycle.
type Manager struct {
	mu       sync.RWMutex
	loggers  map[string]*Logger
	basePath string
}

// NewManager creates a manager resolving log file paths against basePath.
func NewManager(basePath string) *Manager {
	return &Manager{
		loggers:  make(map[string]*Logger),
		basePath: basePath,
	}
}

// InitLoggers builds a pipeline for every configured logger. Existing
// loggers are closed first, so the manager can be re-initialized on a
// config reload. Loggers that fail to build are skipped and reported
// together after the rest have been initialized.
func (m *Manager) InitLoggers(loggers map[string]config.Options) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, l := range m.loggers {
		if err := l.Close(); err != nil {
			fmt.Printf("[WARN] Error closing existing logger '%s' during re-initialization: %v\n", name, err)
		}
	}
	m.loggers = make(map[string]*Logger, len(loggers))

	var initErrors []error
	for name, opts := range loggers {
		l, err := Build(name, opts, m.basePath)
		if err != nil {
			fmt.Printf("[ERROR] Failed to initialize logger '%s': %v\n", name, err)
			initErrors = append(initErrors, fmt.Errorf("logger '%s': %w", name, err))
			continue
		}
		m.loggers[name] = l
	}

	if len(initErrors) > 0 {
		return fmt.Errorf("failed to initialize some loggers: %v", initErrors)
	}
	return nil
}

// GetLogger retrieves a logger by name, or nil when not initialized.
func (m *Manager) GetLogger(name string) *Logger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loggers[name]
}

// Names returns the names of all initialized loggers.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.loggers))
	for name := range m.loggers {
		names = append(names, name)
	}
	return names
}

// CloseAll flushes and closes every managed logger.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, l := range m.loggers {
		if err := l.Close(); err != nil {
			fmt.Printf("[WARN] Error closing logger '%s': %v\n", name, err)
		}
	}
	m.loggers = make(map[string]*Logger)
}
