package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Client      ClientConfig      `mapstructure:"client"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Filter      FilterConfig      `mapstructure:"filter"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// ClientConfig holds the NHL API transport settings
type ClientConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	SSLVerify       bool          `mapstructure:"ssl_verify"`
	FollowRedirects bool          `mapstructure:"follow_redirects"`
	Debug           bool          `mapstructure:"debug"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// FilterConfig contains named filter expressions. Preset names are
// case-insensitive.
type FilterConfig struct {
	// DefaultExpression applies to standings when no --filter or --preset is given
	DefaultExpression string            `mapstructure:"default_expression"`
	Presets           map[string]string `mapstructure:"presets"`
	GamePresets       map[string]string `mapstructure:"game_presets"`
}

// ConcurrencyConfig bounds parallel game fetches
type ConcurrencyConfig struct {
	MaxParallel int `mapstructure:"max_parallel"`
}

// MetricsConfig controls the request summary printed after each command
type MetricsConfig struct {
	Summary bool `mapstructure:"summary"`
}
