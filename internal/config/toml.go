// Package config provides configuration helpers and TOML parsing.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/workfetch/internal/model"
	"github.com/verte-zerg/workfetch/internal/schedule"
)

const (
	DefaultWorkMinutes  = 480
	DefaultBreakMinutes = 45
	DefaultRoundMinutes = schedule.DefaultRoundMinutes
	DefaultBackend      = BackendJSON
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Session  SessionConfig  `toml:"session"`
	Storage  StorageConfig  `toml:"storage"`
}

// ScheduleConfig maps work-day durations.
type ScheduleConfig struct {
	WorkMinutes  *int `toml:"work_minutes"`
	BreakMinutes *int `toml:"break_minutes"`
	RoundMinutes *int `toml:"round_minutes"`
}

// SessionConfig maps session start policy settings.
type SessionConfig struct {
	EarliestWins *bool `toml:"earliest_wins"`
}

// StorageConfig maps state storage settings.
type StorageConfig struct {
	Backend *string `toml:"backend"`
}

// ConfigError reports a config file that could not be used as written.
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid config %s: %s: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("invalid config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Defaults returns the resolved default settings.
func Defaults() model.Config {
	return model.Config{
		Schedule: model.Schedule{
			WorkMinutes:  DefaultWorkMinutes,
			BreakMinutes: DefaultBreakMinutes,
		},
		RoundMinutes: DefaultRoundMinutes,
		EarliestWins: true,
		Backend:      DefaultBackend,
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, &ConfigError{Path: path, Err: err}
	}
	if err := cfg.validate(path); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// LoadOrCreate loads the config at path, writing a default file when none
// exists. A *ConfigError is returned together with the defaults when the
// file exists but cannot be used; the file is left untouched in that case.
func LoadOrCreate(path string) (model.Config, bool, error) {
	cfg := Defaults()
	fileCfg, err := LoadConfig(path)
	if err != nil {
		return cfg, false, err
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if err := WriteDefault(path); err != nil {
			return cfg, false, err
		}
		return cfg, true, nil
	}
	fileCfg.Apply(&cfg)
	return cfg, false, nil
}

// Apply copies set values onto cfg.
func (f FileConfig) Apply(cfg *model.Config) {
	if f.Schedule.WorkMinutes != nil {
		cfg.Schedule.WorkMinutes = *f.Schedule.WorkMinutes
	}
	if f.Schedule.BreakMinutes != nil {
		cfg.Schedule.BreakMinutes = *f.Schedule.BreakMinutes
	}
	if f.Schedule.RoundMinutes != nil {
		cfg.RoundMinutes = *f.Schedule.RoundMinutes
	}
	if f.Session.EarliestWins != nil {
		cfg.EarliestWins = *f.Session.EarliestWins
	}
	if f.Storage.Backend != nil {
		cfg.Backend = *f.Storage.Backend
	}
}

func (f FileConfig) validate(path string) error {
	if f.Schedule.RoundMinutes != nil {
		if err := ValidateRoundMinutes(*f.Schedule.RoundMinutes); err != nil {
			return &ConfigError{Path: path, Field: "schedule.round_minutes", Err: err}
		}
	}
	if f.Storage.Backend != nil {
		if err := ValidateBackend(*f.Storage.Backend); err != nil {
			return &ConfigError{Path: path, Field: "storage.backend", Err: err}
		}
	}
	return nil
}

// ValidateRoundMinutes checks the rounding granularity.
func ValidateRoundMinutes(v int) error {
	if v < 0 || v > 60 {
		return fmt.Errorf("must be between 0 and 60, got %d", v)
	}
	return nil
}

// ValidateBackend checks the storage backend name.
func ValidateBackend(v string) error {
	switch v {
	case BackendJSON, BackendSQLite:
		return nil
	}
	return fmt.Errorf("unknown backend %q (want %q or %q)", v, BackendJSON, BackendSQLite)
}

// WriteDefault writes the default config file to path.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := DefaultTemplate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DefaultTemplate returns the contents of a fresh config file.
func DefaultTemplate() ([]byte, error) {
	work, brk, round := DefaultWorkMinutes, DefaultBreakMinutes, DefaultRoundMinutes
	earliest := true
	backend := DefaultBackend
	cfg := FileConfig{
		Schedule: ScheduleConfig{WorkMinutes: &work, BreakMinutes: &brk, RoundMinutes: &round},
		Session:  SessionConfig{EarliestWins: &earliest},
		Storage:  StorageConfig{Backend: &backend},
	}
	var buf bytes.Buffer
	buf.WriteString("# workfetch configuration\n# CLI flags override config values.\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// IsConfigError reports whether err is a *ConfigError.
func IsConfigError(err error) bool {
	var cerr *ConfigError
	return errors.As(err, &cerr)
}
