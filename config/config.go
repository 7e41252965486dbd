package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/nhlapi/nhl"
)

// EnvPrefix prefixes environment overrides, e.g. NHLAPI_CLIENT_TIMEOUT=30s
const EnvPrefix = "NHLAPI"

// Load loads the configuration from file. Every setting has a default, so a
// missing config file is only an error when configPath names it explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".nhlapi"))
		}

		// Check /etc
		v.AddConfigPath("/etc/nhlapi/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	defaults := nhl.DefaultClientConfig()

	// Client defaults
	v.SetDefault("client.timeout", defaults.Timeout)
	v.SetDefault("client.ssl_verify", defaults.SSLVerify)
	v.SetDefault("client.follow_redirects", defaults.FollowRedirects)
	v.SetDefault("client.debug", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Filter defaults
	v.SetDefault("filter.default_expression", "")
	v.SetDefault("filter.presets", map[string]string{})
	v.SetDefault("filter.game_presets", map[string]string{})

	v.SetDefault("concurrency.max_parallel", nhl.DefaultParallelism)

	v.SetDefault("metrics.summary", false)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Client.Timeout <= 0 {
		return fmt.Errorf("client.timeout must be positive, got %s", cfg.Client.Timeout)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.Concurrency.MaxParallel < 1 || cfg.Concurrency.MaxParallel > nhl.MaxParallelism {
		return fmt.Errorf("concurrency.max_parallel must be between 1 and %d, got %d", nhl.MaxParallelism, cfg.Concurrency.MaxParallel)
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter.presets.%s has an empty expression", name)
		}
	}
	for name, expression := range cfg.Filter.GamePresets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter.game_presets.%s has an empty expression", name)
		}
	}

	return nil
}

// ClientOptions maps the client section onto nhl client options
func (c *Config) ClientOptions() []nhl.Option {
	return []nhl.Option{
		nhl.WithConfig(nhl.ClientConfig{
			Timeout:         c.Client.Timeout,
			SSLVerify:       c.Client.SSLVerify,
			FollowRedirects: c.Client.FollowRedirects,
			Debug:           c.Client.Debug,
		}),
	}
}

// Preset looks up a standings preset by name
func (c *Config) Preset(name string) (string, bool) {
	expression, ok := c.Filter.Presets[strings.ToLower(name)]
	return expression, ok
}

// GamePreset looks up a schedule preset by name
func (c *Config) GamePreset(name string) (string, bool) {
	expression, ok := c.Filter.GamePresets[strings.ToLower(name)]
	return expression, ok
}
