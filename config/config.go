// Package config loads application configuration from the environment.
package config

import (
	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Path to the SQLite database file. ":memory:" for a throwaway book.
	DBPath string `env:"KHATA_DB" envDefault:"khata.db"`

	// Logging
	LogLevel  string `env:"KHATA_LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"KHATA_LOG_FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
