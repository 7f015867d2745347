package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/simulate"
	"github.com/theirongolddev/valuate/internal/tui/theme"
)

// Config holds all valuate configuration.
type Config struct {
	Defaults   model.Inputs     `toml:"defaults"`
	Simulation SimulationConfig `toml:"simulation"`
	Appearance AppearanceConfig `toml:"appearance"`
	Export     ExportConfig     `toml:"export"`
	Server     ServerConfig     `toml:"server"`
}

// SimulationConfig holds Monte Carlo settings.
type SimulationConfig struct {
	Samples       int     `toml:"samples" env:"VALUATE_SAMPLES"`
	SpreadPercent float64 `toml:"spread_percent"`
	Seed          uint64  `toml:"seed,omitempty" env:"VALUATE_SEED"`
	Bins          int     `toml:"bins"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" env:"VALUATE_THEME"`
}

// ExportConfig holds CSV export settings.
type ExportConfig struct {
	Dir string `toml:"dir" env:"VALUATE_EXPORT_DIR"`
}

// ServerConfig holds the HTTP service settings.
type ServerConfig struct {
	Addr         string `toml:"addr" env:"VALUATE_ADDR"`
	EventsBuffer int    `toml:"events_buffer"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Defaults: model.DefaultInputs(),
		Simulation: SimulationConfig{
			Samples:       simulate.DefaultSamples,
			SpreadPercent: simulate.DefaultSpreadPercent,
			Bins:          simulate.DefaultBins,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8787",
			EventsBuffer: 200,
		},
	}
}

// SimulateOptions converts the simulation section into engine options.
func (c Config) SimulateOptions() simulate.Options {
	return simulate.Options{
		Samples:       c.Simulation.Samples,
		SpreadPercent: c.Simulation.SpreadPercent,
		Seed:          c.Simulation.Seed,
	}
}

// Validate checks the default inputs and simulation settings.
func (c Config) Validate() error {
	var errs []error
	if err := c.Defaults.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("defaults: %w", err))
	}
	if c.Simulation.Samples < 1 {
		errs = append(errs, fmt.Errorf("simulation.samples must be positive, got %d", c.Simulation.Samples))
	}
	if c.Simulation.SpreadPercent < 0 {
		errs = append(errs, fmt.Errorf("simulation.spread_percent must not be negative, got %g", c.Simulation.SpreadPercent))
	}
	if c.Simulation.Bins < 1 {
		errs = append(errs, fmt.Errorf("simulation.bins must be positive, got %d", c.Simulation.Bins))
	}
	if _, ok := theme.Lookup(c.Appearance.Theme); !ok {
		errs = append(errs, fmt.Errorf("appearance.theme %q is not one of %v", c.Appearance.Theme, theme.Names()))
	}
	return errors.Join(errs...)
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "valuate")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "valuate")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// LoadDotEnv loads KEY=value pairs from path into the process
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads the config file, returning defaults if it doesn't exist.
// VALUATE_* environment variables override file values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", Path(), err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
