package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/common/model"
	"gopkg.in/yaml.v3"

	"github.com/feather-dev/feather/internal/errors"
	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/feather"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "feather.yaml"

	// DefaultAddr is the default live server address.
	DefaultAddr = "localhost:3000"

	// DefaultReadTimeout bounds reading one HTTP request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultMetricsNamespace prefixes every exported metric.
	DefaultMetricsNamespace = "feather"

	// DefaultTracerName names the OpenTelemetry tracer.
	DefaultTracerName = "github.com/feather-dev/feather"
)

// Config represents feather.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`

	// Events lists the event kinds the router subscribes to.
	// Empty means dom.DefaultEventKinds.
	Events []string `yaml:"events,omitempty"`

	Runtime RuntimeConfig `yaml:"runtime"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`

	// path stores the file the config was loaded from, if any.
	path string
}

// ServerConfig configures the live server.
type ServerConfig struct {
	Addr        string        `yaml:"addr,omitempty"`
	ReadTimeout time.Duration `yaml:"read_timeout,omitempty"`
}

// RuntimeConfig maps onto feather.Options.
type RuntimeConfig struct {
	MaxFlushPasses int  `yaml:"max_flush_passes,omitempty"`
	StrictHooks    bool `yaml:"strict_hooks,omitempty"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	Namespace string `yaml:"namespace,omitempty"`
}

// TracingConfig configures the OpenTelemetry tracer.
type TracingConfig struct {
	TracerName string `yaml:"tracer_name,omitempty"`
}

// New returns a Config with every default applied.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        DefaultAddr,
			ReadTimeout: DefaultReadTimeout,
		},
		Runtime: RuntimeConfig{
			MaxFlushPasses: feather.DefaultMaxFlushPasses,
		},
		Log:     LogConfig{Level: "info"},
		Metrics: MetricsConfig{Namespace: DefaultMetricsNamespace},
		Tracing: TracingConfig{TracerName: DefaultTracerName},
	}
}

// LoadOptional reads feather.yaml from dir if present, and returns the
// defaults otherwise.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	cfg, err := Load(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E201").
			WithDetailf("Failed to read %s", path).
			Wrap(err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes and validates feather.yaml content. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.New("E201").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check the YAML syntax and key names")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills keys the file set to empty values.
func (c *Config) applyDefaults() {
	def := New()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if c.Runtime.MaxFlushPasses == 0 {
		c.Runtime.MaxFlushPasses = def.Runtime.MaxFlushPasses
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = def.Metrics.Namespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = def.Tracing.TracerName
	}
	for i, e := range c.Events {
		c.Events[i] = strings.ToLower(strings.TrimSpace(e))
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Server.ReadTimeout < 0 {
		return errors.New("E201").
			WithDetailf("server.read_timeout must not be negative, got %s", c.Server.ReadTimeout)
	}
	if c.Runtime.MaxFlushPasses < 0 {
		return errors.New("E201").
			WithDetailf("runtime.max_flush_passes must be positive, got %d", c.Runtime.MaxFlushPasses).
			WithSuggestion("Remove the key to use the default of " + strconv.Itoa(feather.DefaultMaxFlushPasses))
	}
	for _, e := range c.Events {
		if e == "" {
			return errors.New("E201").WithDetail("events must not contain empty names")
		}
	}
	if _, err := c.LogLevel(); err != nil {
		return errors.New("E201").
			WithDetailf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if !model.IsValidMetricName(model.LabelValue(c.Metrics.Namespace)) {
		return errors.New("E201").
			WithDetailf("metrics.namespace %q is not a valid Prometheus name", c.Metrics.Namespace)
	}
	return nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// EventKinds returns the configured event kinds, or the router defaults.
func (c *Config) EventKinds() []string {
	if len(c.Events) == 0 {
		return slices.Clone(dom.DefaultEventKinds)
	}
	return c.Events
}

// Options builds runtime options from the config.
func (c *Config) Options(logger *slog.Logger, obs feather.Observer) feather.Options {
	return feather.Options{
		Logger:         logger,
		Observer:       obs,
		MaxFlushPasses: c.Runtime.MaxFlushPasses,
		StrictHooks:    c.Runtime.StrictHooks,
		EventKinds:     c.EventKinds(),
	}
}
