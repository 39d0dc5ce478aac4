package config

// This file implements the environment override layer. A .env file in the
// working directory is loaded first (missing files are fine), then
// ICONGRAB_* variables are parsed. Flags are applied after LoadEnv, so the
// precedence is defaults < environment < flags.

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envOverrides mirrors the subset of Config that may be set from the
// environment. Zero values mean "not set" and leave the default alone.
type envOverrides struct {
	Extensions []string `env:"ICONGRAB_EXTENSIONS" envSeparator:","`
	Workers    int      `env:"ICONGRAB_WORKERS"`
	LogFile    string   `env:"ICONGRAB_LOG"`
	Color      string   `env:"ICONGRAB_COLOR"`
}

// LoadEnv applies .env and ICONGRAB_* environment variables onto cfg.
// Values are validated later by [Config.Validate], not here.
func LoadEnv(cfg *Config) error {
	_ = godotenv.Load()

	var e envOverrides
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if len(e.Extensions) > 0 {
		cfg.Extensions = e.Extensions
	}
	if e.Workers > 0 {
		cfg.Workers = e.Workers
	}
	if e.LogFile != "" {
		cfg.LogFile = e.LogFile
	}
	if e.Color != "" {
		cfg.ColorMode = ColorMode(e.Color)
	}
	return nil
}
