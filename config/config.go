// Package config loads the engine configuration from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/agiangrant/stagelayout/layout"
)

// Config represents a stagelayout.toml configuration file
type Config struct {
	Layout  LayoutConfig  `toml:"layout"`
	Window  WindowConfig  `toml:"window"`
	Logging LoggingConfig `toml:"logging"`
}

type LayoutConfig struct {
	// Display scale used to turn device independent points into pixels
	DPI float32 `toml:"dpi"`
	// Tolerance of the flex wrap convergence loop
	Epsilon float32 `toml:"epsilon"`
	// Upper bound on flex wrap passes, 0 for none
	MaxWrapPasses int `toml:"max_wrap_passes"`
}

type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{
			DPI:           1,
			Epsilon:       layout.DefaultEpsilon,
			MaxWrapPasses: layout.DefaultMaxWrapPasses,
		},
		Window: WindowConfig{
			Width:  800,
			Height: 600,
		},
		Logging: LoggingConfig{
			Level: "normal",
		},
	}
}

// Parse decodes TOML on top of the defaults. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("unknown configuration keys:\n%s", strict.String())
		}
		return cfg, fmt.Errorf("failed to parse configuration: %w", err)
	}

	// Apply defaults for empty values
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "normal"
	}
	return cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Dump returns the TOML form of cfg.
func Dump(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path.
func Save(path string, cfg Config) error {
	data, err := Dump(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid value, not just the first.
func (c Config) Validate() error {
	var err error
	positive := func(name string, v float32) {
		if !(v > 0) || math.IsInf(float64(v), 0) {
			err = multierr.Append(err, fmt.Errorf("%s must be a positive number, got %v", name, v))
		}
	}
	positive("layout.dpi", c.Layout.DPI)
	positive("layout.epsilon", c.Layout.Epsilon)
	positive("window.width", c.Window.Width)
	positive("window.height", c.Window.Height)
	if c.Layout.MaxWrapPasses < 0 {
		err = multierr.Append(err, fmt.Errorf("layout.max_wrap_passes must not be negative, got %d", c.Layout.MaxWrapPasses))
	}
	if _, ok := levels[c.Logging.Level]; !ok {
		err = multierr.Append(err, fmt.Errorf("logging.level must be one of none, normal, debug, got %q", c.Logging.Level))
	}
	return err
}

// Env builds the layout environment described by the configuration.
func (c Config) Env(log *zap.Logger) *layout.Env {
	env := layout.NewEnv(c.Layout.DPI)
	env.Epsilon = c.Layout.Epsilon
	env.MaxWrapPasses = c.Layout.MaxWrapPasses
	if log != nil {
		env.Log = log
	}
	return env
}
