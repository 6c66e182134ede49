// Package config loads storefront process settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"storefront/catalog"
)

// Config is the process configuration.
type Config struct {
	Port            string        `env:"STOREFRONT_PORT" envDefault:"50210"`
	LogLevel        string        `env:"STOREFRONT_LOG_LEVEL" envDefault:"info"`
	LogDevelopment  bool          `env:"STOREFRONT_LOG_DEVELOPMENT" envDefault:"false"`
	CatalogPath     string        `env:"STOREFRONT_CATALOG_PATH"`
	Collation       string        `env:"STOREFRONT_COLLATION" envDefault:"en"`
	TraceStdout     bool          `env:"STOREFRONT_TRACE_STDOUT" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"STOREFRONT_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.CollationTag(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level returns the configured log level.
func (c Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// CollationTag returns the language product names are sorted by.
func (c Config) CollationTag() (language.Tag, error) {
	tag, err := language.Parse(c.Collation)
	if err != nil {
		return language.Und, fmt.Errorf("collation %q: %w", c.Collation, err)
	}
	return tag, nil
}

// NewLogger builds the process logger.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.LogDevelopment {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// LoadCatalog reads the catalog file, or returns the built-in catalog when
// no path is configured.
func (c Config) LoadCatalog() (*catalog.Catalog, error) {
	if c.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(c.CatalogPath)
}
