package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Interval() != 250*time.Millisecond {
		t.Errorf("expected default tick interval 250ms, got %v", cfg.Interval())
	}
	if cfg.Journal.Enabled {
		t.Error("journal should be disabled by default")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got %q", cfg.Log.Level)
	}
	if cfg.Theme.ColorFocus == "" || cfg.Theme.ColorBreak == "" {
		t.Error("default theme should define mode colors")
	}
}

func TestInterval_OutOfRangeFallsBack(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero", 0, DefaultTickInterval},
		{"negative", -time.Second, DefaultTickInterval},
		{"too slow", 5 * time.Second, DefaultTickInterval},
		{"fast", 100 * time.Millisecond, 100 * time.Millisecond},
		{"one second", time.Second, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{TickInterval: Duration(tt.in)}
			if got := cfg.Interval(); got != tt.want {
				t.Errorf("Interval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if time.Duration(d) != 90*time.Second {
		t.Errorf("got %v, want 1m30s", time.Duration(d))
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("UnmarshalText() should reject garbage")
	}
	text, _ := d.MarshalText()
	if string(text) != "1m30s" {
		t.Errorf("MarshalText() = %q", text)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.TickInterval = Duration(500 * time.Millisecond)
	cfg.Inline = true
	cfg.Journal.Enabled = true
	cfg.Storage.DataDir = dir
	cfg.Theme.ColorFocus = "#FF0000"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Interval() != 500*time.Millisecond {
		t.Errorf("tick interval = %v, want 500ms", loaded.Interval())
	}
	if !loaded.Inline || !loaded.Journal.Enabled {
		t.Errorf("booleans not round-tripped: %+v", loaded)
	}
	if loaded.Storage.DataDir != dir {
		t.Errorf("data dir = %q, want %q", loaded.Storage.DataDir, dir)
	}
	if loaded.Theme.ColorFocus != "#FF0000" {
		t.Errorf("theme color = %q", loaded.Theme.ColorFocus)
	}
	if GetDBPath(loaded) != filepath.Join(dir, "journal.db") {
		t.Errorf("GetDBPath() = %q", GetDBPath(loaded))
	}
	if GetLogPath(loaded) != filepath.Join(dir, "pomo.log") {
		t.Errorf("GetLogPath() = %q", GetLogPath(loaded))
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Load() error = %v, want does not exist", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	cfg := DefaultConfig()
	cfg.Storage.DataDir = dir
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Setenv("POMO_JOURNAL_ENABLED", "true")
	t.Setenv("POMO_LOG_LEVEL", "debug")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded.Journal.Enabled {
		t.Error("POMO_JOURNAL_ENABLED should enable the journal")
	}
	if loaded.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", loaded.Log.Level)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("POMO_TICK_INTERVAL", "100ms")
	t.Setenv("POMO_STORAGE_DATA_DIR", "/tmp/pomo-test")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Interval() != 100*time.Millisecond {
		t.Errorf("tick interval = %v, want 100ms", cfg.Interval())
	}
	if cfg.Storage.DataDir != "/tmp/pomo-test" {
		t.Errorf("data dir = %q", cfg.Storage.DataDir)
	}
}

func TestFromEnv_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Storage.DataDir != filepath.Join(home, ".pomo") {
		t.Errorf("data dir = %q, want %q", cfg.Storage.DataDir, filepath.Join(home, ".pomo"))
	}
}
