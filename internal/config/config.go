// Package config loads and validates prscrub configuration from YAML files,
// .env files, and environment variables.
package config

import (
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	serrors "git.home.luguber.info/inful/prscrub/internal/errors"
)

// Config is the root configuration for prscrub.
type Config struct {
	// RedirectHost is substituted for github.com in outgoing issue/PR link
	// targets. Empty means links keep their original host.
	RedirectHost string `yaml:"redirect_host"`

	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ServerConfig configures the scrub HTTP service.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// MaxBodyBytes caps the accepted request body size for POST /scrub.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// WatchConfig configures the directory watcher.
type WatchConfig struct {
	// DebounceMS is the quiet period after a file event before the file is
	// rescrubbed. Editors often emit several events per save.
	DebounceMS int `yaml:"debounce_ms"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: string(LogLevelInfo), Format: string(LogFormatText)},
		Server:  ServerConfig{Addr: ":8080", MaxBodyBytes: 4 << 20},
		Watch:   WatchConfig{DebounceMS: 500},
	}
}

// Load reads configuration from the given YAML file path, then applies .env
// files and environment variable overrides. A missing config file is not an
// error; defaults are used.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, serrors.Wrap(err, serrors.CategoryFileSystem, serrors.SeverityError, "failed to read config file").
				WithContext("path", path)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, serrors.Wrap(err, serrors.CategoryConfig, serrors.SeverityError, "failed to parse config file").
			WithContext("path", path)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Environment variable override keys.
const (
	EnvRedirectHost = "PRSCRUB_REDIRECT_HOST"
	EnvListenAddr   = "PRSCRUB_LISTEN_ADDR"
	EnvLogLevel     = "PRSCRUB_LOG_LEVEL"
	EnvLogFormat    = "PRSCRUB_LOG_FORMAT"
	EnvDebounceMS   = "PRSCRUB_WATCH_DEBOUNCE_MS"
)

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvRedirectHost); v != "" {
		c.RedirectHost = v
	}
	if v := os.Getenv(EnvListenAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvDebounceMS); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			c.Watch.DebounceMS = ms
		}
	}
}

// hostPattern accepts a bare host with optional port, no scheme or path.
var hostPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?(:\d{1,5})?$`)

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.RedirectHost != "" && !hostPattern.MatchString(c.RedirectHost) {
		return serrors.New(serrors.CategoryConfig, serrors.SeverityError,
			"redirect_host must be a bare host name (no scheme or path)").
			WithContext("redirect_host", c.RedirectHost)
	}
	if _, err := logLevels.NormalizeStrict(c.Logging.Level); err != nil {
		return serrors.Wrap(err, serrors.CategoryConfig, serrors.SeverityError, "invalid logging.level")
	}
	if _, err := logFormats.NormalizeStrict(c.Logging.Format); err != nil {
		return serrors.Wrap(err, serrors.CategoryConfig, serrors.SeverityError, "invalid logging.format")
	}
	if c.Watch.DebounceMS < 0 {
		return serrors.New(serrors.CategoryConfig, serrors.SeverityError, "watch.debounce_ms must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return serrors.New(serrors.CategoryConfig, serrors.SeverityError, "server.max_body_bytes must be positive")
	}
	return nil
}
