// internal/config/config.go

// Package config holds the typed application configuration, loaded through
// viper from config.yaml, environment variables (ANCHORPOP_ prefix) and
// flags, in that order of increasing precedence.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the entire application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Browser   BrowserConfig   `mapstructure:"browser" yaml:"browser"`
	Placement PlacementConfig `mapstructure:"placement" yaml:"placement"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels in console
// format.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// BrowserConfig configures the CDP session the collaborators run against.
type BrowserConfig struct {
	// Headless launches a fresh headless browser. Ignored when DevToolsURL
	// points at a running instance.
	Headless bool `mapstructure:"headless" yaml:"headless"`
	// DevToolsURL attaches to a running browser's DevTools websocket
	// (ws://host:port) instead of launching one.
	DevToolsURL       string        `mapstructure:"devtools_url" yaml:"devtools_url"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	EvalTimeout       time.Duration `mapstructure:"eval_timeout" yaml:"eval_timeout"`
}

// PlacementConfig carries the placement defaults applied when a flag is not
// given on the command line.
type PlacementConfig struct {
	XDir  string  `mapstructure:"x_dir" yaml:"x_dir"`
	YDir  string  `mapstructure:"y_dir" yaml:"y_dir"`
	Scale float64 `mapstructure:"scale" yaml:"scale"`
	Swap  bool    `mapstructure:"swap" yaml:"swap"`
	Space int     `mapstructure:"space" yaml:"space"`
	// SettleDelay defers placement after a reparenting move so the element
	// settles in the layout tree first.
	SettleDelay time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "anchorpop")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// Browser defaults
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.devtools_url", "")
	v.SetDefault("browser.navigation_timeout", "90s")
	v.SetDefault("browser.eval_timeout", "10s")

	// Placement defaults mirror the engine defaults.
	v.SetDefault("placement.x_dir", "between")
	v.SetDefault("placement.y_dir", "below")
	v.SetDefault("placement.scale", 1.0)
	v.SetDefault("placement.swap", true)
	v.SetDefault("placement.space", 8)
	v.SetDefault("placement.settle_delay", "0s")
}

// Load unmarshals the viper state into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the engine documents as precondition
// violations rather than letting them produce undefined geometry.
func (c *Config) Validate() error {
	if c.Placement.Scale <= 0 {
		return fmt.Errorf("placement.scale must be > 0, got %v", c.Placement.Scale)
	}
	if c.Placement.Space < 0 {
		return fmt.Errorf("placement.space must be >= 0, got %d", c.Placement.Space)
	}
	return nil
}
