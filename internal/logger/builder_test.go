package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/orgoj/logpipe/internal/config"
	"github.com/orgoj/logpipe/internal/formatter"
	"github.com/orgoj/logpipe/internal/record"
	"github.com/orgoj/logpipe/internal/sink"
)

// discardSyslog satisfies sink.SyslogWriter without touching the host
// system log.
type discardSyslog struct{ lines []string }

func (d *discardSyslog) Debug(m string) error   { d.lines = append(d.lines, m); return nil }
func (d *discardSyslog) Info(m string) error    { d.lines = append(d.lines, m); return nil }
func (d *discardSyslog) Warning(m string) error { d.lines = append(d.lines, m); return nil }
func (d *discardSyslog) Err(m string) error     { d.lines = append(d.lines, m); return nil }
func (d *discardSyslog) Crit(m string) error    { d.lines = append(d.lines, m); return nil }
func (d *discardSyslog) Close() error           { return nil }

func withFakeSyslog(t *testing.T) *discardSyslog {
	t.Helper()
	fake := &discardSyslog{}
	orig := sink.SyslogDial
	sink.SyslogDial = func(tag string) (sink.SyslogWriter, error) { return fake, nil }
	t.Cleanup(func() { sink.SyslogDial = orig })
	return fake
}

func TestBuild_DefaultsToBufferedSyslog(t *testing.T) {
	withFakeSyslog(t)

	tests := []struct {
		name string
		opts config.Options
	}{
		{"empty options", config.Options{}},
		{"explicit php driver", config.Options{Driver: "php"}},
		{"case-insensitive driver", config.Options{Driver: "PHP"}},
		{"unknown driver falls back", config.Options{Driver: "email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Build("app", tt.opts, t.TempDir())
			if err != nil {
				t.Fatalf("Build() returned error: %v", err)
			}
			defer l.Close()

			if l.Level() != record.ERROR {
				t.Errorf("level = %v, expected default ERROR", l.Level())
			}

			buffered, ok := l.sink.(*sink.Buffered)
			if !ok {
				t.Fatalf("sink is %T, expected the always-on buffering decorator", l.sink)
			}
			if buffered.Capacity() != 0 {
				t.Errorf("capacity = %d, expected 0 (unbounded)", buffered.Capacity())
			}
			if buffered.Kind() != "php" {
				t.Errorf("Kind() = %q, expected php (system log)", buffered.Kind())
			}
			if len(l.processors) != 0 {
				t.Errorf("%d processors registered, enrichment is ECS-only", len(l.processors))
			}
		})
	}
}

func TestBuild_FileDriverResolvesPath(t *testing.T) {
	basePath := t.TempDir()
	opts := config.Options{
		Driver: "file",
		Drivers: map[string]config.Driver{
			"file": {FilePath: "logs", FileFormat: "Y-m-d"},
		},
	}

	l, err := Build("app", opts, basePath)
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	defer l.Close()

	expected := filepath.Join(basePath, "logs", time.Now().Format(formatter.DateLayout("Y-m-d"))+".log")
	if _, err := os.Stat(expected); err != nil {
		t.Errorf("log file not opened at %s: %v", expected, err)
	}

	if _, ok := l.sink.(*sink.Buffered); !ok {
		t.Errorf("file driver sink is %T, expected buffering decorator", l.sink)
	}
}

func TestBuild_ECSOutputSelection(t *testing.T) {
	withFakeSyslog(t)

	tests := []struct {
		output   string
		expected string
	}{
		{"file", "file"},
		{"stdout", "stdout"},
		{"stderr", "stderr"},
		{"php", "php"},
		{"STDERR", "stderr"},
		{"", "stdout"},
		{"bogus", "stdout"},
	}

	for _, tt := range tests {
		t.Run("output="+tt.output, func(t *testing.T) {
			opts := config.Options{
				Driver: "ecs",
				Drivers: map[string]config.Driver{
					"ecs": {Output: tt.output},
				},
			}
			l, err := Build("app", opts, t.TempDir())
			if err != nil {
				t.Fatalf("Build() returned error: %v", err)
			}
			defer l.Close()

			if l.Kind() != tt.expected {
				t.Errorf("Kind() = %q, expected %q", l.Kind(), tt.expected)
			}
		})
	}
}

func TestBuild_ECSProcessorRegistration(t *testing.T) {
	opts := config.Options{
		Driver: "ecs",
		Drivers: map[string]config.Driver{
			"ecs": {Output: "stdout"},
		},
	}
	l, err := Build("app", opts, t.TempDir())
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	defer l.Close()
	if len(l.processors) != 1 {
		t.Errorf("%d processors, expected only the collision guard without service config", len(l.processors))
	}

	opts.Drivers["ecs"] = config.Driver{
		Output:  "stdout",
		Service: config.Service{Name: "orders"},
	}
	l2, err := Build("app", opts, t.TempDir())
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	defer l2.Close()
	if len(l2.processors) != 2 {
		t.Errorf("%d processors, expected collision guard plus service injector", len(l2.processors))
	}
}

func TestBuild_ECSBuffersOnlyWhenConfigured(t *testing.T) {
	opts := config.Options{
		Driver: "ecs",
		Drivers: map[string]config.Driver{
			"ecs": {Output: "stdout"},
		},
	}
	l, err := Build("app", opts, t.TempDir())
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	defer l.Close()
	if _, ok := l.sink.(*sink.Buffered); ok {
		t.Error("ecs sink is buffered at max_buffered_lines 0; it must be used directly")
	}

	opts.Drivers["ecs"] = config.Driver{Output: "stdout", MaxBufferedLines: 3}
	l2, err := Build("app", opts, t.TempDir())
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	defer l2.Close()
	buffered, ok := l2.sink.(*sink.Buffered)
	if !ok {
		t.Fatalf("ecs sink is %T, expected buffering decorator at max_buffered_lines 3", l2.sink)
	}
	if buffered.Capacity() != 3 {
		t.Errorf("capacity = %d, expected 3", buffered.Capacity())
	}
}

func TestBuild_ECSEndToEndOnStdout(t *testing.T) {
	var out bytes.Buffer
	origStdout := sink.Stdout
	sink.Stdout = &out
	t.Cleanup(func() { sink.Stdout = origStdout })

	opts := config.Options{
		Level:  "debug",
		Driver: "ecs",
		Drivers: map[string]config.Driver{
			"ecs": {
				Output:  "stdout",
				Tags:    []string{"svcA"},
				Service: config.Service{Name: "orders"},
			},
		},
	}

	l, err := Build("app", opts, t.TempDir())
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	defer l.Close()

	// The init diagnostic must already have passed through the chain.
	var initDoc map[string]any
	if err := json.Unmarshal([]byte(strings.SplitN(out.String(), "\n", 2)[0]), &initDoc); err != nil {
		t.Fatalf("init record is not valid JSON: %v (output %q)", err, out.String())
	}
	if got := initDoc["logger.output"]; got != "stdout" {
		t.Errorf("init record logger.output = %v, expected stdout", got)
	}
	if got := initDoc["log.level"]; got != "debug" {
		t.Errorf("init record log.level = %v, expected debug", got)
	}
	if got := initDoc["logger.name"]; got != "app" {
		t.Errorf("init record logger.name = %v", got)
	}
	service, ok := initDoc["service"].(map[string]any)
	if !ok || service["name"] != "orders" {
		t.Errorf("init record service = %v, expected injected metadata", initDoc["service"])
	}

	// A caller-supplied message context field is renamed, never clobbered.
	out.Reset()
	if err := l.Info("order created", map[string]any{"message": "user text"}); err != nil {
		t.Fatalf("Info() returned error: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(bytes.TrimRight(out.Bytes(), "\n"), &doc); err != nil {
		t.Fatalf("record is not valid JSON: %v", err)
	}
	if got := doc["message"]; got != "order created" {
		t.Errorf("message = %v", got)
	}
	if got := doc["custom_message"]; got != "user text" {
		t.Errorf("custom_message = %v, expected renamed context field", got)
	}
	tags, ok := doc["tags"].([]any)
	if !ok || len(tags) != 1 || tags[0] != "svcA" {
		t.Errorf("tags = %v", doc["tags"])
	}
}

func TestBuild_LevelFiltersRecords(t *testing.T) {
	var out bytes.Buffer
	origStdout := sink.Stdout
	sink.Stdout = &out
	t.Cleanup(func() { sink.Stdout = origStdout })

	opts := config.Options{
		Driver: "ecs",
		Drivers: map[string]config.Driver{
			"ecs": {Output: "stdout"},
		},
	}
	l, err := Build("app", opts, t.TempDir())
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	defer l.Close()

	// Default level is error: the debug init record and info records
	// are filtered.
	if out.Len() != 0 {
		t.Errorf("output written below the error level: %q", out.String())
	}
	_ = l.Info("quiet", nil)
	if out.Len() != 0 {
		t.Errorf("info record passed an error-level filter: %q", out.String())
	}

	_ = l.Error("loud", nil)
	if !strings.Contains(out.String(), "loud") {
		t.Errorf("error record missing from output: %q", out.String())
	}
}

func TestBuild_RateLimitDropsExcessRecords(t *testing.T) {
	var out bytes.Buffer
	origStdout := sink.Stdout
	sink.Stdout = &out
	t.Cleanup(func() { sink.Stdout = origStdout })

	opts := config.Options{
		Level:  "debug",
		Driver: "ecs",
		Drivers: map[string]config.Driver{
			"ecs": {Output: "stdout", RateLimit: 5},
		},
	}
	l, err := Build("app", opts, t.TempDir())
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	defer l.Close()

	out.Reset()
	for i := 0; i < 20; i++ {
		if err := l.Info("burst", nil); err != nil {
			t.Fatalf("Info() returned error: %v", err)
		}
	}

	lines := strings.Count(out.String(), "\n")
	if lines >= 20 {
		t.Errorf("%d records written, expected the limiter to drop some", lines)
	}
	if lines == 0 {
		t.Error("limiter dropped everything, expected the first record through")
	}
}

func TestBuild_Suppress(t *testing.T) {
	var out bytes.Buffer
	origStdout := sink.Stdout
	sink.Stdout = &out
	t.Cleanup(func() { sink.Stdout = origStdout })

	opts := config.Options{
		Level:  "debug",
		Driver: "ecs",
		Drivers: map[string]config.Driver{
			"ecs": {Output: "stdout", Suppress: []string{"health check*"}},
		},
	}
	l, err := Build("app", opts, t.TempDir())
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	defer l.Close()

	out.Reset()
	if err := l.Info("health check ok", nil); err != nil {
		t.Fatalf("Info() returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("suppressed record reached the sink: %q", out.String())
	}

	if err := l.Info("real work", nil); err != nil {
		t.Fatalf("Info() returned error: %v", err)
	}
	if !strings.Contains(out.String(), "real work") {
		t.Errorf("unsuppressed record missing: %q", out.String())
	}
}

func TestBuild_GelfDriver(t *testing.T) {
	opts := config.Options{
		Driver: "gelf",
		Drivers: map[string]config.Driver{
			"gelf": {Host: "127.0.0.1", Port: 12201},
		},
	}
	l, err := Build("app", opts, t.TempDir())
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}
	defer l.Close()

	if l.Kind() != "gelf" {
		t.Errorf("Kind() = %q, expected gelf", l.Kind())
	}
}

func TestBuild_GelfDriverRequiresHost(t *testing.T) {
	opts := config.Options{Driver: "gelf"}
	if _, err := Build("app", opts, t.TempDir()); err == nil {
		t.Fatal("Build() expected an error for a gelf driver without a host")
	}
}
