// Package config provides configuration management for timerdeck.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/xvierd/timerdeck/internal/domain"
)

// HomeEnv overrides the configuration directory.
const HomeEnv = "TIMERDECK_HOME"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
)

// Config holds the static configuration of timerdeck. Runtime settings
// edited from the app (mode minutes, goals, flow flags) live in storage.
type Config struct {
	Storage       StorageConfig      `mapstructure:"storage"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Log           LogConfig          `mapstructure:"log"`
	Timer         TimerConfig        `mapstructure:"timer"`
	Interval      IntervalConfig     `mapstructure:"interval"`
	Breath        BreathConfig       `mapstructure:"breath"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// ThemeConfig holds the TUI colors per mode category.
type ThemeConfig struct {
	ColorFocus    string `mapstructure:"color_focus"`
	ColorWellness string `mapstructure:"color_wellness"`
	ColorFitness  string `mapstructure:"color_fitness"`
	ColorTools    string `mapstructure:"color_tools"`
	ColorPaused   string `mapstructure:"color_paused"`
	ColorTitle    string `mapstructure:"color_title"`
	ColorHelp     string `mapstructure:"color_help"`
	GradientStart string `mapstructure:"gradient_start"`
	GradientEnd   string `mapstructure:"gradient_end"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:    "#7C6FE0",
		ColorWellness: "#4ECDC4",
		ColorFitness:  "#F59E0B",
		ColorTools:    "#60A5FA",
		ColorPaused:   "#6B7280",
		ColorTitle:    "#6B7280",
		ColorHelp:     "#95A5A6",
		GradientStart: "#7C6FE0",
		GradientEnd:   "#A78BFA",
	}
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
	Backend string `mapstructure:"backend"`
}

// LogConfig holds the log file settings. An empty file means
// timerdeck.log in the data directory.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// TimerConfig holds the fixed mode lengths and engine delays.
type TimerConfig struct {
	GraceDelay       Duration `mapstructure:"grace_delay"`
	Countdown        Duration `mapstructure:"countdown"`
	Grill            Duration `mapstructure:"grill"`
	Grounding        Duration `mapstructure:"grounding"`
	Microbreak       Duration `mapstructure:"microbreak"`
	FlowtimeMinBreak Duration `mapstructure:"flowtime_min_break"`
}

// IntervalConfig holds the default workout.
type IntervalConfig struct {
	Work   Duration `mapstructure:"work"`
	Rest   Duration `mapstructure:"rest"`
	Cycles int      `mapstructure:"cycles"`
}

// BreathConfig holds the breathing pattern used until one is chosen in
// the app, and the seed values of the custom pattern.
type BreathConfig struct {
	Pattern         string `mapstructure:"pattern"`
	CustomInhale    int    `mapstructure:"custom_inhale"`
	CustomHold      int    `mapstructure:"custom_hold"`
	CustomExhale    int    `mapstructure:"custom_exhale"`
	CustomEmptyHold int    `mapstructure:"custom_empty_hold"`
	CustomMinutes   int    `mapstructure:"custom_minutes"`
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

// Seconds returns the duration in whole seconds.
func (d Duration) Seconds() int {
	return int(time.Duration(d) / time.Second)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	fixed := domain.DefaultFixedDurations()
	interval := domain.DefaultInterval()
	return &Config{
		Storage: StorageConfig{
			DataDir: "~/.timerdeck",
			Backend: BackendSQLite,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Timer: TimerConfig{
			GraceDelay:       Duration(3 * time.Second),
			Countdown:        Duration(time.Duration(fixed.Countdown) * time.Second),
			Grill:            Duration(time.Duration(fixed.Grill) * time.Second),
			Grounding:        Duration(time.Duration(fixed.Grounding) * time.Second),
			Microbreak:       Duration(time.Duration(fixed.Microbreak) * time.Second),
			FlowtimeMinBreak: Duration(time.Minute),
		},
		Interval: IntervalConfig{
			Work:   Duration(time.Duration(interval.WorkSeconds) * time.Second),
			Rest:   Duration(time.Duration(interval.RestSeconds) * time.Second),
			Cycles: interval.TotalCycles,
		},
		Breath: BreathConfig{
			Pattern:       domain.PatternBox,
			CustomInhale:  4,
			CustomExhale:  4,
			CustomMinutes: 3,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the default config file, creating it
// with defaults when missing.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from configPath.
func LoadFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(DefaultConfig(), configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := expandHome(cfg.Storage.DataDir, configDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.Backend != BackendDiskv {
		cfg.Storage.Backend = BackendSQLite
	}

	return &cfg, nil
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(cfg, configPath)
}

// SaveTo writes cfg as TOML to configPath.
func SaveTo(cfg *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("timer.grace_delay", cfg.Timer.GraceDelay.String())
	v.Set("timer.countdown", cfg.Timer.Countdown.String())
	v.Set("timer.grill", cfg.Timer.Grill.String())
	v.Set("timer.grounding", cfg.Timer.Grounding.String())
	v.Set("timer.microbreak", cfg.Timer.Microbreak.String())
	v.Set("timer.flowtime_min_break", cfg.Timer.FlowtimeMinBreak.String())
	v.Set("interval.work", cfg.Interval.Work.String())
	v.Set("interval.rest", cfg.Interval.Rest.String())
	v.Set("interval.cycles", cfg.Interval.Cycles)
	v.Set("breath.pattern", cfg.Breath.Pattern)
	v.Set("breath.custom_inhale", cfg.Breath.CustomInhale)
	v.Set("breath.custom_hold", cfg.Breath.CustomHold)
	v.Set("breath.custom_exhale", cfg.Breath.CustomExhale)
	v.Set("breath.custom_empty_hold", cfg.Breath.CustomEmptyHold)
	v.Set("breath.custom_minutes", cfg.Breath.CustomMinutes)
	v.Set("mcp.enabled", cfg.MCP.Enabled)
	v.Set("theme.color_focus", cfg.Theme.ColorFocus)
	v.Set("theme.color_wellness", cfg.Theme.ColorWellness)
	v.Set("theme.color_fitness", cfg.Theme.ColorFitness)
	v.Set("theme.color_tools", cfg.Theme.ColorTools)
	v.Set("theme.color_paused", cfg.Theme.ColorPaused)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.gradient_start", cfg.Theme.GradientStart)
	v.Set("theme.gradient_end", cfg.Theme.GradientEnd)

	return v.WriteConfig()
}

// GetConfigDir returns the configuration directory, ~/.timerdeck unless
// TIMERDECK_HOME is set.
func GetConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".timerdeck"), nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetDBPath returns the path to the SQLite database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "timerdeck.db")
}

// GetDiskvPath returns the directory of the diskv backend.
func GetDiskvPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "store")
}

// GetLogPath returns the log file path.
func GetLogPath(cfg *Config) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return filepath.Join(cfg.Storage.DataDir, "timerdeck.log")
}

// expandHome resolves the default "~/.timerdeck" data directory to the
// config directory and expands a leading ~ elsewhere.
func expandHome(dir, configDir string) (string, error) {
	if dir == "" || dir == "~/.timerdeck" {
		return configDir, nil
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("failed to expand data directory: %w", err)
	}
	return expanded, nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.sound", true)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", "")
	v.SetDefault("timer.grace_delay", d.Timer.GraceDelay.String())
	v.SetDefault("timer.countdown", d.Timer.Countdown.String())
	v.SetDefault("timer.grill", d.Timer.Grill.String())
	v.SetDefault("timer.grounding", d.Timer.Grounding.String())
	v.SetDefault("timer.microbreak", d.Timer.Microbreak.String())
	v.SetDefault("timer.flowtime_min_break", d.Timer.FlowtimeMinBreak.String())
	v.SetDefault("interval.work", d.Interval.Work.String())
	v.SetDefault("interval.rest", d.Interval.Rest.String())
	v.SetDefault("interval.cycles", d.Interval.Cycles)
	v.SetDefault("breath.pattern", d.Breath.Pattern)
	v.SetDefault("breath.custom_inhale", d.Breath.CustomInhale)
	v.SetDefault("breath.custom_hold", d.Breath.CustomHold)
	v.SetDefault("breath.custom_exhale", d.Breath.CustomExhale)
	v.SetDefault("breath.custom_empty_hold", d.Breath.CustomEmptyHold)
	v.SetDefault("breath.custom_minutes", d.Breath.CustomMinutes)
	v.SetDefault("mcp.enabled", true)

	// Theme defaults
	v.SetDefault("theme.color_focus", d.Theme.ColorFocus)
	v.SetDefault("theme.color_wellness", d.Theme.ColorWellness)
	v.SetDefault("theme.color_fitness", d.Theme.ColorFitness)
	v.SetDefault("theme.color_tools", d.Theme.ColorTools)
	v.SetDefault("theme.color_paused", d.Theme.ColorPaused)
	v.SetDefault("theme.color_title", d.Theme.ColorTitle)
	v.SetDefault("theme.color_help", d.Theme.ColorHelp)
	v.SetDefault("theme.gradient_start", d.Theme.GradientStart)
	v.SetDefault("theme.gradient_end", d.Theme.GradientEnd)
}

// FixedDurations converts the timer section to the mode registry's fixed
// lengths. Non-positive values fall back to the registry defaults.
func (c *Config) FixedDurations() domain.FixedDurations {
	return domain.FixedDurations{
		Countdown:  c.Timer.Countdown.Seconds(),
		Grill:      c.Timer.Grill.Seconds(),
		Grounding:  c.Timer.Grounding.Seconds(),
		Microbreak: c.Timer.Microbreak.Seconds(),
	}
}

// IntervalSession converts the interval section to a normalized workout.
func (c *Config) IntervalSession() domain.IntervalSession {
	return domain.IntervalSession{
		WorkSeconds: c.Interval.Work.Seconds(),
		RestSeconds: c.Interval.Rest.Seconds(),
		TotalCycles: c.Interval.Cycles,
	}.Normalize()
}

// BreathPreference converts the breath section. Unknown patterns select
// box breathing.
func (c *Config) BreathPreference() domain.BreathPreference {
	pattern := strings.ToLower(strings.TrimSpace(c.Breath.Pattern))
	if _, ok := domain.BreathCatalog()[pattern]; !ok && pattern != domain.PatternCustom {
		pattern = domain.PatternBox
	}
	return domain.BreathPreference{
		Pattern: pattern,
		Custom: domain.CustomBreath{
			Inhale:       c.Breath.CustomInhale,
			Hold:         c.Breath.CustomHold,
			Exhale:       c.Breath.CustomExhale,
			EmptyHold:    c.Breath.CustomEmptyHold,
			TotalMinutes: c.Breath.CustomMinutes,
		},
	}
}
