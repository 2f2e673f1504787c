// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Resolve] and [Load] read the
// config path from.
const EnvironmentVariable = "GEARADMIN_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Output formats accepted by output.format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCBOR  = "cbor"
)

// Color modes accepted by output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the master configuration for gearadmin.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Server identifies the gearmand instance to administer.
	Server ServerConfig `yaml:"server"`

	// Parse configures response parsing.
	Parse ParseConfig `yaml:"parse"`

	// Output configures how results are printed.
	Output OutputConfig `yaml:"output"`

	// Watch configures the live dashboard.
	Watch WatchConfig `yaml:"watch"`

	// Per-environment overrides, applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Server *ServerConfig `yaml:"server,omitempty"`
	Parse  *ParseConfig  `yaml:"parse,omitempty"`
	Output *OutputConfig `yaml:"output,omitempty"`
	Watch  *WatchConfig  `yaml:"watch,omitempty"`
}

// ServerConfig identifies the gearmand admin endpoint.
type ServerConfig struct {
	// Host is the server host name or address.
	// Default: 127.0.0.1
	Host string `yaml:"host"`

	// Port is the server TCP port.
	// Default: 4730
	Port int `yaml:"port"`

	// Timeout bounds connecting and each full command exchange, as a
	// Go duration string.
	// Default: 500ms
	Timeout string `yaml:"timeout"`
}

// ParseConfig configures response parsing.
type ParseConfig struct {
	// Strict reports response lines that were skipped for having the
	// wrong shape, in addition to lines with unparseable numbers.
	// Default: false (true in production without overrides)
	Strict bool `yaml:"strict"`
}

// OutputConfig configures result printing.
type OutputConfig struct {
	// Format is one of table, json, cbor.
	// Default: table
	Format string `yaml:"format"`

	// Color is one of auto, always, never.
	// Default: auto
	Color string `yaml:"color"`
}

// WatchConfig configures the live dashboard.
type WatchConfig struct {
	// Interval is the refresh period, as a Go duration string.
	// Default: 2s
	Interval string `yaml:"interval"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Environment: Development,
		Server: ServerConfig{
			Host:    "127.0.0.1",
			Port:    4730,
			Timeout: "500ms",
		},
		Output: OutputConfig{
			Format: FormatTable,
			Color:  ColorAuto,
		},
		Watch: WatchConfig{
			Interval: "2s",
		},
	}
}

// Resolve picks the config source: an explicit path (typically from
// --config) wins, then GEARADMIN_CONFIG, then [Default]. The returned
// string is the file that was loaded, or empty for defaults.
func Resolve(path string) (*Config, string, error) {
	if path == "" {
		path = os.Getenv(EnvironmentVariable)
	}
	if path == "" {
		cfg := Default()
		return cfg, "", cfg.Validate()
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Load loads configuration from the GEARADMIN_CONFIG environment
// variable. Fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your gearadmin.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads and validates configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile decodes a single configuration file on top of the current
// values.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: report every line the parser drops.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Parse: &ParseConfig{Strict: true},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Server != nil {
		if overrides.Server.Host != "" {
			c.Server.Host = overrides.Server.Host
		}
		if overrides.Server.Port != 0 {
			c.Server.Port = overrides.Server.Port
		}
		if overrides.Server.Timeout != "" {
			c.Server.Timeout = overrides.Server.Timeout
		}
	}

	if overrides.Parse != nil {
		// Strict is a bool, so it is always applied from overrides.
		c.Parse.Strict = overrides.Parse.Strict
	}

	if overrides.Output != nil {
		if overrides.Output.Format != "" {
			c.Output.Format = overrides.Output.Format
		}
		if overrides.Output.Color != "" {
			c.Output.Color = overrides.Output.Color
		}
	}

	if overrides.Watch != nil && overrides.Watch.Interval != "" {
		c.Watch.Interval = overrides.Watch.Interval
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} in server.host.
func (c *Config) expandVariables() {
	c.Server.Host = expandVars(c.Server.Host)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns from the
// process environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Server.Host == "" {
		errs = append(errs, fmt.Errorf("server.host is required"))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.WatchInterval(); err != nil {
		errs = append(errs, err)
	}

	formats := []string{FormatTable, FormatJSON, FormatCBOR}
	if !slices.Contains(formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", formats))
	}

	colors := []string{ColorAuto, ColorAlways, ColorNever}
	if !slices.Contains(colors, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colors))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Address returns host:port for dialing.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Timeout parses server.timeout.
func (c *Config) Timeout() (time.Duration, error) {
	return parsePositiveDuration("server.timeout", c.Server.Timeout)
}

// WatchInterval parses watch.interval.
func (c *Config) WatchInterval() (time.Duration, error) {
	return parsePositiveDuration("watch.interval", c.Watch.Interval)
}

func parsePositiveDuration(field, value string) (time.Duration, error) {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", field, value)
	}
	return duration, nil
}
