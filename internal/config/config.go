// Package config provides configuration management for pomo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// DefaultTickInterval is how often a running countdown is re-evaluated.
	DefaultTickInterval = 250 * time.Millisecond
	// MaxTickInterval keeps the display from lagging by more than a second.
	MaxTickInterval = time.Second

	envPrefix = "POMO"
)

// Config holds all configuration for pomo. The Focus and Break durations are
// fixed and deliberately absent.
type Config struct {
	TickInterval Duration      `mapstructure:"tick_interval"`
	Inline       bool          `mapstructure:"inline"`
	Journal      JournalConfig `mapstructure:"journal"`
	Storage      StorageConfig `mapstructure:"storage"`
	Log          LogConfig     `mapstructure:"log"`
	Theme        ThemeConfig   `mapstructure:"theme"`
}

// JournalConfig controls the transition journal.
type JournalConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	RetentionDays int  `mapstructure:"retention_days"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorFocus          string `mapstructure:"color_focus"`
	ColorBreak          string `mapstructure:"color_break"`
	ColorPaused         string `mapstructure:"color_paused"`
	ColorTitle          string `mapstructure:"color_title"`
	ColorTabInactive    string `mapstructure:"color_tab_inactive"`
	ColorHelp           string `mapstructure:"color_help"`
	FocusGradientStart  string `mapstructure:"focus_gradient_start"`
	FocusGradientEnd    string `mapstructure:"focus_gradient_end"`
	BreakGradientStart  string `mapstructure:"break_gradient_start"`
	BreakGradientEnd    string `mapstructure:"break_gradient_end"`
	PausedGradientStart string `mapstructure:"paused_gradient_start"`
	PausedGradientEnd   string `mapstructure:"paused_gradient_end"`
	IconApp             string `mapstructure:"icon_app"`
	IconPaused          string `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:          "#E0665A",
		ColorBreak:          "#4ECDC4",
		ColorPaused:         "#6B7280",
		ColorTitle:          "#6B7280",
		ColorTabInactive:    "#4B5563",
		ColorHelp:           "#95A5A6",
		FocusGradientStart:  "#E0665A",
		FocusGradientEnd:    "#F4A261",
		BreakGradientStart:  "#4ECDC4",
		BreakGradientEnd:    "#2ECC71",
		PausedGradientStart: "#6B7280",
		PausedGradientEnd:   "#4B5563",
		IconApp:             "🍅",
		IconPaused:          "⏸",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TickInterval: Duration(DefaultTickInterval),
		Journal: JournalConfig{
			Enabled:       false,
			RetentionDays: 30,
		},
		Storage: StorageConfig{
			DataDir: "~/.pomo",
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing default file is created with defaults. POMO_* environment
// variables override file values (POMO_JOURNAL_ENABLED=true).
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	v := newViper(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		if err := Save(DefaultConfig(), path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return decode(v)
}

// FromEnv builds a config from defaults and environment only.
func FromEnv() (*Config, error) {
	return decode(newViper(""))
}

// Save writes cfg to path as TOML.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.Set("tick_interval", cfg.TickInterval.String())
	v.Set("inline", cfg.Inline)
	v.Set("journal.enabled", cfg.Journal.Enabled)
	v.Set("journal.retention_days", cfg.Journal.RetentionDays)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	setTheme(v.Set, cfg.Theme)

	return v.WriteConfig()
}

// GetConfigPath returns the path to the default config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo", "config.toml"), nil
}

// GetDBPath returns the path to the journal database.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "journal.db")
}

// GetLogPath returns the log file path.
func GetLogPath(cfg *Config) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return filepath.Join(cfg.Storage.DataDir, "pomo.log")
}

// Interval returns the tick interval, falling back to the default when the
// configured value is out of range.
func (c *Config) Interval() time.Duration {
	d := time.Duration(c.TickInterval)
	if d <= 0 || d > MaxTickInterval {
		return DefaultTickInterval
	}
	return d
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "" || strings.HasPrefix(cfg.Storage.DataDir, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		rest := strings.TrimPrefix(strings.TrimPrefix(cfg.Storage.DataDir, "~"), "/")
		if rest == "" {
			rest = ".pomo"
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, rest)
	}

	return &cfg, nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("tick_interval", defaults.TickInterval.String())
	v.SetDefault("inline", defaults.Inline)
	v.SetDefault("journal.enabled", defaults.Journal.Enabled)
	v.SetDefault("journal.retention_days", defaults.Journal.RetentionDays)
	v.SetDefault("storage.data_dir", defaults.Storage.DataDir)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	setTheme(v.SetDefault, defaults.Theme)
}

func setTheme(set func(key string, value any), t ThemeConfig) {
	const prefix = "theme"
	set(prefix+".color_focus", t.ColorFocus)
	set(prefix+".color_break", t.ColorBreak)
	set(prefix+".color_paused", t.ColorPaused)
	set(prefix+".color_title", t.ColorTitle)
	set(prefix+".color_tab_inactive", t.ColorTabInactive)
	set(prefix+".color_help", t.ColorHelp)
	set(prefix+".focus_gradient_start", t.FocusGradientStart)
	set(prefix+".focus_gradient_end", t.FocusGradientEnd)
	set(prefix+".break_gradient_start", t.BreakGradientStart)
	set(prefix+".break_gradient_end", t.BreakGradientEnd)
	set(prefix+".paused_gradient_start", t.PausedGradientStart)
	set(prefix+".paused_gradient_end", t.PausedGradientEnd)
	set(prefix+".icon_app", t.IconApp)
	set(prefix+".icon_paused", t.IconPaused)
}
