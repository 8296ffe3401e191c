package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workfetch", "config.toml")

	cfg, created, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load or create: %v", err)
	}
	if !created {
		t.Fatalf("expected config file to be created")
	}
	if cfg != Defaults() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	for _, want := range []string{"work_minutes = 480", "break_minutes = 45", "round_minutes = 15", `backend = "json"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %q in default config:\n%s", want, data)
		}
	}

	again, created, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if created {
		t.Fatalf("expected existing config to be reused")
	}
	if again != cfg {
		t.Fatalf("expected reloaded config to match defaults, got %+v", again)
	}
}

func TestLoadOrCreateAppliesFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[schedule]
work_minutes = 420
break_minutes = 30

[session]
earliest_wins = false

[storage]
backend = "sqlite"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Schedule.WorkMinutes != 420 || cfg.Schedule.BreakMinutes != 30 {
		t.Fatalf("unexpected schedule: %+v", cfg.Schedule)
	}
	if cfg.RoundMinutes != DefaultRoundMinutes {
		t.Fatalf("expected default rounding, got %d", cfg.RoundMinutes)
	}
	if cfg.EarliestWins {
		t.Fatalf("expected earliest_wins=false")
	}
	if cfg.Backend != BackendSQLite {
		t.Fatalf("expected sqlite backend, got %q", cfg.Backend)
	}
}

func TestLoadOrCreateKeepsNegativeDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[schedule]\nwork_minutes = -10\nbreak_minutes = 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Schedule.WorkMinutes != -10 || cfg.Schedule.BreakMinutes != 0 {
		t.Fatalf("expected durations passed through, got %+v", cfg.Schedule)
	}
}

func TestLoadOrCreateMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	original := "[schedule]\nwork_minutes = \"eight hours\"\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, created, err := LoadOrCreate(path)
	if err == nil {
		t.Fatalf("expected config error")
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
	if created {
		t.Fatalf("expected malformed config not to be replaced")
	}
	if cfg != Defaults() {
		t.Fatalf("expected defaults on error, got %+v", cfg)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(data) != original {
		t.Fatalf("expected malformed config to be left untouched")
	}
}

func TestLoadConfigRejectsBadPolicyValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"round too large", "[schedule]\nround_minutes = 90\n", "schedule.round_minutes"},
		{"round negative", "[schedule]\nround_minutes = -1\n", "schedule.round_minutes"},
		{"unknown backend", "[storage]\nbackend = \"redis\"\n", "storage.backend"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, err := LoadConfig(path)
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cerr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, cerr.Field)
			}
			if !IsConfigError(err) {
				t.Fatalf("expected IsConfigError to match")
			}
		})
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "workfetch", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultStatePath(); got != filepath.Join("/tmp/data", "workfetch", "last_session.json") {
		t.Fatalf("unexpected state path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "workfetch", "workfetch.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
