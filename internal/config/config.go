// Package config loads forge settings from an optional YAML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the config file, FORGE_*
// environment variables. The file is checked against an embedded CUE
// schema before it is decoded, so typos and out-of-range values are
// reported with the offending field.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// ErrInvalid is returned for configuration that fails validation.
var ErrInvalid = errors.New("invalid config")

// Environment variables that override file settings.
const (
	EnvConfig      = "FORGE_CONFIG"
	EnvDatabase    = "FORGE_DB"
	EnvTimezone    = "FORGE_TZ"
	EnvEnergyBonus = "FORGE_ENERGY_BONUS"
	EnvLogLevel    = "FORGE_LOG_LEVEL"
)

// Config holds all forge settings.
type Config struct {
	Database     string `yaml:"database"`
	Timezone     string `yaml:"timezone"`
	EnergyBonus  bool   `yaml:"energy_bonus"`
	SyncDebounce string `yaml:"sync_debounce"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	RecentDays   int    `yaml:"recent_days"`

	loc      *time.Location
	debounce time.Duration
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Database:     "forge.db",
		Timezone:     "UTC",
		SyncDebounce: "500ms",
		LogLevel:     "info",
		LogFormat:    "text",
		RecentDays:   7,
		loc:          time.UTC,
		debounce:     500 * time.Millisecond,
	}
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults without consulting the
// environment.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return Config{}, err
	}
	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := validateSchema(data); err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// validateSchema unifies the document with #Config and requires a
// concrete, conflict-free result.
func validateSchema(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: parse YAML: %v", ErrInvalid, err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	val := def.Unify(ctx.Encode(doc))
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDatabase); ok && v != "" {
		c.Database = v
	}
	if v, ok := lookup(EnvTimezone); ok && v != "" {
		c.Timezone = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvEnergyBonus); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvEnergyBonus, v, err)
		}
		c.EnergyBonus = b
	}
	return nil
}

// resolve validates the fields the schema cannot check and caches their
// parsed forms.
func (c *Config) resolve() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalid, c.Timezone, err)
	}
	d, err := time.ParseDuration(c.SyncDebounce)
	if err != nil || d <= 0 {
		return fmt.Errorf("%w: sync_debounce %q must be a positive duration", ErrInvalid, c.SyncDebounce)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	c.loc = loc
	c.debounce = d
	return nil
}

// Location returns the timezone in which calendar days are observed.
func (c Config) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Debounce returns the score sync coalescing window.
func (c Config) Debounce() time.Duration {
	if c.debounce <= 0 {
		return 500 * time.Millisecond
	}
	return c.debounce
}

// Level returns the configured log level.
func (c Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalid, s)
}
