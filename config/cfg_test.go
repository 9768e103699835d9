package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"stylekit/sheet"
	"stylekit/style"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Render.Normalize || cfg.Render.Header != "" {
		t.Errorf("Default render section = %+v", cfg.Render)
	}
	if cfg.Render.AnimationNames != "counter" || cfg.Render.AnimationPrefix != "animation-" {
		t.Errorf("Default animation naming = %q/%q", cfg.Render.AnimationNames, cfg.Render.AnimationPrefix)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("Default logging = %+v", cfg.Logging)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `version: 1
render:
  normalize: true
  header: "built by {{ .Tool }}"
  animation_names: uuid
  animation_prefix: fx-
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(dir, "logs", "test.log")+`
    mode: append
reporting:
  destination: `+filepath.Join(dir, "report.zip")+`
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if !cfg.Render.Normalize {
		t.Error("Expected Normalize to be true")
	}
	// header is not expanded
	if cfg.Render.Header != "built by {{ .Tool }}" {
		t.Errorf("Header = %q", cfg.Render.Header)
	}
	if cfg.Render.AnimationNames != "uuid" || cfg.Render.AnimationPrefix != "fx-" {
		t.Errorf("Animation naming = %q/%q", cfg.Render.AnimationNames, cfg.Render.AnimationPrefix)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("File logger mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
	// sanitizer creates directories for file destinations
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("log directory was not created: %v", err)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	cfg, err := LoadConfiguration(writeConfig(t, "version: 1\nrender:\n  normalize: true\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if !cfg.Render.Normalize {
		t.Error("Expected Normalize to be true")
	}
	if cfg.Render.AnimationPrefix != "animation-" {
		t.Errorf("AnimationPrefix = %q, want default", cfg.Render.AnimationPrefix)
	}
	if cfg.Reporting.Destination == "" {
		t.Error("Reporting destination lost default")
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nrender:\n  normalize: true\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"bad version", "version: 2\n"},
		{"bad namer", "version: 1\nrender:\n  animation_names: random\n"},
		{"prefix with space", "version: 1\nrender:\n  animation_prefix: \"a b\"\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: verbose\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadConfiguration() expected error")
			}
		})
	}

	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}
	if _, err := LoadConfiguration("", option); err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if strings.Contains(string(data), "{{") {
		t.Errorf("Prepare() left template actions:\n%s", data)
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Render:  RenderConfig{Header: "hdr", AnimationNames: "counter", AnimationPrefix: "a-"},
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none"},
		},
	}
	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	for _, want := range []string{"version: 1", "header: hdr", "animation_prefix: a-", "level: normal"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Dump() missing %q:\n%s", want, data)
		}
	}

	back, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("unmarshalConfig(Dump()) error = %v", err)
	}
	if back.Render != cfg.Render {
		t.Errorf("Render = %+v, want %+v", back.Render, cfg.Render)
	}
}

func TestRenderConfig_Namer(t *testing.T) {
	counter := (&RenderConfig{AnimationNames: "counter", AnimationPrefix: "fx-"}).Namer()
	if got := counter.Next(); got != "fx-1" {
		t.Errorf("counter Next() = %q, want fx-1", got)
	}
	if got := counter.Next(); got != "fx-2" {
		t.Errorf("counter Next() = %q, want fx-2", got)
	}

	u := (&RenderConfig{AnimationNames: "uuid", AnimationPrefix: "fx-"}).Namer()
	if _, ok := u.(style.UUIDNamer); !ok {
		t.Fatalf("uuid Namer() = %T", u)
	}
	a, b := u.Next(), u.Next()
	if !strings.HasPrefix(a, "fx-") || a == b {
		t.Errorf("uuid names %q, %q", a, b)
	}
}

func TestRenderConfig_Options(t *testing.T) {
	rc := &RenderConfig{Header: "top", AnimationNames: "counter", AnimationPrefix: "x-"}
	s := sheet.New(rc.Options()...)
	s.Animation("").At(0, style.New().Rule("opacity", 0))
	want := "/* top */\n\n@keyframes x-1 {\n    0% {\n        opacity: 0;\n    }\n}\n"
	if got := s.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}

	rc.Normalize = true
	if got := sheet.New(rc.Options()...).Render(); !strings.HasPrefix(got, "/* top */\n\n/*! normalize.css") {
		t.Errorf("normalized Render() starts with %q", got[:min(len(got), 40)])
	}
}
