// Package config holds runtime configuration, defaulted from
// constants and overridable through READER_* environment variables and
// command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	// File paths
	CSVPath string
	DBPath  string

	// Server settings
	ServerHost string
	ServerPort int
	APIKey     string

	// Refresh settings
	Interval     time.Duration
	FetchTimeout time.Duration

	// Log settings
	LogLevel zerolog.Level
}

// DefaultConfig returns an initial configuration with hardcoded defaults.
func DefaultConfig() *Config {
	logLevel, _ := zerolog.ParseLevel(DefaultLogLevel)

	return &Config{
		CSVPath:      DefaultCSVPath,
		DBPath:       DefaultDBPath,
		ServerHost:   DefaultServerHost,
		ServerPort:   DefaultServerPort,
		APIKey:       GetEnvString("READER_API_KEY", ""),
		Interval:     time.Duration(DefaultInterval) * time.Minute,
		FetchTimeout: time.Duration(DefaultFetchTimeout) * time.Second,
		LogLevel:     logLevel,
	}
}

// ListenAddr returns the formatted listen address for the HTTP server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}
