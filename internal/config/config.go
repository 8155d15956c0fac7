// Package config loads traffic signal settings from TOML.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/randomizedcoder/traffic-signal/internal/tick"
)

// ErrInvalidConfig marks settings that fail validation.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultYield is the pause between unsuccessful receives in WaitForGreen.
const DefaultYield = time.Millisecond

// Config holds the runtime settings of one signal.
type Config struct {
	Name        string
	MinCycle    time.Duration
	MaxCycle    time.Duration
	Settle      time.Duration
	Yield       time.Duration
	Seed        uint64
	LogLevel    string
	MetricsAddr string
}

type fileConfig struct {
	Name        string `toml:"name"`
	MinCycle    string `toml:"min_cycle"`
	MaxCycle    string `toml:"max_cycle"`
	Settle      string `toml:"settle"`
	Yield       string `toml:"yield"`
	Seed        uint64 `toml:"seed"`
	LogLevel    string `toml:"log_level"`
	MetricsAddr string `toml:"metrics_addr"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Name:     "light",
		MinCycle: tick.DefaultMinCycle,
		MaxCycle: tick.DefaultMaxCycle,
		Settle:   tick.DefaultSettle,
		Yield:    DefaultYield,
		LogLevel: "info",
	}
}

// Load reads path and applies the keys it defines over DefaultConfig.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return apply(raw, meta)
}

// Parse is Load for in-memory TOML.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return apply(raw, meta)
}

func apply(raw fileConfig, meta toml.MetaData) (Config, error) {
	cfg := DefaultConfig()

	if meta.IsDefined("name") {
		if name := strings.TrimSpace(raw.Name); name != "" {
			cfg.Name = name
		}
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"min_cycle", raw.MinCycle, &cfg.MinCycle},
		{"max_cycle", raw.MaxCycle, &cfg.MaxCycle},
		{"settle", raw.Settle, &cfg.Settle},
		{"yield", raw.Yield, &cfg.Yield},
	}
	for _, d := range durations {
		if !meta.IsDefined(d.key) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if meta.IsDefined("seed") {
		cfg.Seed = raw.Seed
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the cycle bounds and delays.
func (c Config) Validate() error {
	if c.MinCycle <= 0 {
		return fmt.Errorf("%w: min_cycle must be positive, got %v", ErrInvalidConfig, c.MinCycle)
	}
	if c.MaxCycle < c.MinCycle {
		return fmt.Errorf("%w: max_cycle %v below min_cycle %v", ErrInvalidConfig, c.MaxCycle, c.MinCycle)
	}
	if c.Settle < 0 {
		return fmt.Errorf("%w: settle must not be negative, got %v", ErrInvalidConfig, c.Settle)
	}
	if c.Yield < 0 {
		return fmt.Errorf("%w: yield must not be negative, got %v", ErrInvalidConfig, c.Yield)
	}
	return nil
}
