package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/loggo/v2"
	"github.com/spf13/pflag"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", DefaultLogLevel, "")
	fs.String("output", FormatJSON, "")
	fs.Bool("compact", false, "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", newFlags(t))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.OutputFormat != FormatJSON {
		t.Errorf("OutputFormat = %q, want %q", cfg.OutputFormat, FormatJSON)
	}
	if cfg.OutputCompact {
		t.Error("OutputCompact = true, want false")
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "log:\n  level: DEBUG\noutput:\n  format: yaml\n  compact: true\n")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "DEBUG")
	}
	if cfg.OutputFormat != FormatYAML {
		t.Errorf("OutputFormat = %q, want %q", cfg.OutputFormat, FormatYAML)
	}
	if !cfg.OutputCompact {
		t.Error("OutputCompact = false, want true")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "output:\n  format: yaml\n")
	t.Setenv("SETTINGS_EXTENSION_OUTPUT_FORMAT", "json")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.OutputFormat != FormatJSON {
		t.Errorf("OutputFormat = %q, want %q", cfg.OutputFormat, FormatJSON)
	}
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("SETTINGS_EXTENSION_LOG_LEVEL", "ERROR")

	cfg, err := Load("", newFlags(t, "--log-level", "TRACE"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LogLevel != "TRACE" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "TRACE")
	}

	cfg, err = Load("", newFlags(t))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LogLevel != "ERROR" {
		t.Errorf("LogLevel without flag = %q, want %q", cfg.LogLevel, "ERROR")
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	_, err := Load("", newFlags(t, "--output", "xml"))
	if err == nil {
		t.Fatal("expected error for unknown output format, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestConfig_GetAndKeys(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := cfg.Get(KeyOutputFormat); got != FormatJSON {
		t.Errorf("Get(%q) = %q, want %q", KeyOutputFormat, got, FormatJSON)
	}
	keys := cfg.Keys()
	want := []string{KeyLogLevel, KeyOutputCompact, KeyOutputFormat}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
}

func TestConfigureLogging(t *testing.T) {
	var buf bytes.Buffer
	if err := ConfigureLogging(&buf, "debug"); err != nil {
		t.Fatalf("ConfigureLogging error: %v", err)
	}
	loggo.GetLogger("settings.test").Debugf("hello %s", "logs")
	if !strings.Contains(buf.String(), "hello logs") {
		t.Errorf("log output %q does not contain message", buf.String())
	}

	buf.Reset()
	if err := ConfigureLogging(&buf, "error"); err != nil {
		t.Fatalf("ConfigureLogging error: %v", err)
	}
	loggo.GetLogger("settings.test").Debugf("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below ERROR, got %q", buf.String())
	}
}

func TestConfigureLogging_InvalidLevel(t *testing.T) {
	if err := ConfigureLogging(&bytes.Buffer{}, "chatty"); err == nil {
		t.Fatal("expected error for unknown level, got nil")
	}
}

func TestPath(t *testing.T) {
	t.Setenv("SETTINGS_EXTENSION_CONFIG", "/etc/motd.yaml")

	if got := Path("custom.yaml"); got != "custom.yaml" {
		t.Errorf("Path(explicit) = %q, want custom.yaml", got)
	}
	if got := Path(""); got != "/etc/motd.yaml" {
		t.Errorf("Path(\"\") = %q, want the environment value", got)
	}

	t.Setenv("SETTINGS_EXTENSION_CONFIG", "")
	if got := Path(""); got != "" {
		t.Errorf("Path(\"\") = %q, want empty", got)
	}
}
