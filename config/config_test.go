package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/nhlapi/nhl"
)

// isolate keeps the search paths from picking up a real config file.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, nhl.DefaultTimeout, cfg.Client.Timeout)
	assert.True(t, cfg.Client.SSLVerify)
	assert.True(t, cfg.Client.FollowRedirects)
	assert.False(t, cfg.Client.Debug)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
	assert.Equal(t, nhl.DefaultParallelism, cfg.Concurrency.MaxParallel)
	assert.Empty(t, cfg.Filter.DefaultExpression)
	assert.False(t, cfg.Metrics.Summary)
}

func TestLoad_File(t *testing.T) {
	isolate(t)

	path := writeConfig(t, `
client:
  timeout: 30s
  ssl_verify: false
  follow_redirects: false
  debug: true
logging:
  level: debug
  format: json
  color: false
filter:
  default_expression: "Points > 0"
  presets:
    Contenders: "Points >= 100"
    atlantic: 'inDivision("A")'
  game_presets:
    live: "IsLive"
concurrency:
  max_parallel: 12
metrics:
  summary: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.False(t, cfg.Client.SSLVerify)
	assert.False(t, cfg.Client.FollowRedirects)
	assert.True(t, cfg.Client.Debug)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 12, cfg.Concurrency.MaxParallel)
	assert.True(t, cfg.Metrics.Summary)
	assert.Equal(t, "Points > 0", cfg.Filter.DefaultExpression)

	expression, ok := cfg.Preset("CONTENDERS")
	require.True(t, ok)
	assert.Equal(t, "Points >= 100", expression)

	expression, ok = cfg.GamePreset("live")
	require.True(t, ok)
	assert.Equal(t, "IsLive", expression)

	_, ok = cfg.Preset("missing")
	assert.False(t, ok)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("NHLAPI_CLIENT_TIMEOUT", "3s")
	t.Setenv("NHLAPI_LOGGING_LEVEL", "warn")
	t.Setenv("NHLAPI_CONCURRENCY_MAX_PARALLEL", "2")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Concurrency.MaxParallel)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "logging:\n  level: chatty\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Client:      ClientConfig{Timeout: time.Second},
			Logging:     LoggingConfig{Level: "info", Format: "console"},
			Concurrency: ConcurrencyConfig{MaxParallel: 4},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero timeout", func(c *Config) { c.Client.Timeout = 0 }, "client.timeout"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "invalid logging format"},
		{"parallel too low", func(c *Config) { c.Concurrency.MaxParallel = 0 }, "max_parallel"},
		{"parallel too high", func(c *Config) { c.Concurrency.MaxParallel = nhl.MaxParallelism + 1 }, "max_parallel"},
		{"parallel at cap", func(c *Config) { c.Concurrency.MaxParallel = nhl.MaxParallelism }, ""},
		{"empty preset", func(c *Config) { c.Filter.Presets = map[string]string{"x": " "} }, "filter.presets.x"},
		{"empty game preset", func(c *Config) { c.Filter.GamePresets = map[string]string{"y": ""} }, "filter.game_presets.y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &Config{Client: ClientConfig{Timeout: 7 * time.Second, SSLVerify: true, Debug: true}}

	client, err := nhl.NewClient(zerolog.Nop(), cfg.ClientOptions()...)
	require.NoError(t, err)

	assert.Equal(t, nhl.ClientConfig{Timeout: 7 * time.Second, SSLVerify: true, Debug: true}, client.Config())
}
