package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/rdom/internal/errors"
	"github.com/vango-dev/rdom/pkg/scheduler"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "rdom.yaml"

	// DefaultAddr is the default inspector server address.
	DefaultAddr = ":8080"

	// DefaultRateLimit is the default per-connection message rate, per second.
	DefaultRateLimit = 20.0

	// DefaultBurst is the default per-connection message burst.
	DefaultBurst = 40

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "rdom"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"
)

// Config represents the complete rdom.yaml configuration.
type Config struct {
	// Scheduler contains job queue configuration.
	Scheduler SchedulerConfig `yaml:"scheduler,omitempty"`

	// Server contains inspector server configuration.
	Server ServerConfig `yaml:"server,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `yaml:"metrics,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `yaml:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// SchedulerConfig contains job queue configuration.
type SchedulerConfig struct {
	// RecursionLimit caps how often one job may run in a single flush.
	RecursionLimit int `yaml:"recursionLimit,omitempty"`
}

// ServerConfig contains inspector server configuration.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr,omitempty"`

	// RateLimit is the sustained websocket message rate per connection.
	RateLimit float64 `yaml:"rateLimit,omitempty"`

	// Burst is the websocket message burst per connection.
	Burst int `yaml:"burst,omitempty"`
}

// MetricsConfig contains Prometheus configuration.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace,omitempty"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`

	// Format is text or json.
	Format string `yaml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from rdom.yaml in the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads configuration from the given file path. Missing fields take
// their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, errors.New(errors.CodeConfigParse).Wrap(err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New(errors.CodeConfigInvalid).WithDetail("config has no path; use SaveTo")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigInvalid).WithDetail(path).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Scheduler.RecursionLimit == 0 {
		c.Scheduler.RecursionLimit = scheduler.DefaultRecursionLimit
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = DefaultRateLimit
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = DefaultBurst
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch {
	case c.Scheduler.RecursionLimit < 0:
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("scheduler.recursionLimit must not be negative")
	case c.Server.RateLimit < 0:
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("server.rateLimit must not be negative")
	case c.Server.Burst < 0:
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("server.burst must not be negative")
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("log.format %q is not text or json", c.Log.Format)
	}
	return nil
}

// LogLevel returns the configured slog level, falling back to info.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

// Logger builds a logger writing to w in the configured format and level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel()}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
