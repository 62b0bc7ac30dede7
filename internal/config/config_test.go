package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate(): %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tycoon.yaml")
	content := "remote_url: http://localhost:8088\nautosave_interval: 2s\nlog_level: debug\nlog_format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RemoteURL != "http://localhost:8088" {
		t.Errorf("remote url: got %q", cfg.RemoteURL)
	}
	if cfg.AutosaveInterval != 2*time.Second {
		t.Errorf("autosave: got %s, want 2s", cfg.AutosaveInterval)
	}
	if cfg.ProfileKey != DefaultProfileKey {
		t.Errorf("profile key default lost: %q", cfg.ProfileKey)
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Errorf("level: got %v, want debug", level)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.TickInterval = 0
	cfg.LogLevel = "loud"
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"tick_interval", "log_level", "log_format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestNewLoggerJSON(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "json"
	var buf bytes.Buffer
	cfg.NewLogger(&buf).Info("saved", "tier", 3)
	if !strings.Contains(buf.String(), `"tier":3`) {
		t.Errorf("json log output: %s", buf.String())
	}
}
