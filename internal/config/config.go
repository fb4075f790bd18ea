// Package config loads storefront settings: defaults, then an optional
// YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     string        `yaml:"port"`
	LogLevel string        `yaml:"log_level"`
	LogFile  string        `yaml:"log_file"`
	Catalog  CatalogConfig `yaml:"catalog"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Cart     CartConfig    `yaml:"cart"`
}

type CatalogConfig struct {
	// File is a YAML or JSON product list. Ignored when DSN or URL is set.
	File string `yaml:"file"`
	// DSN points at a Postgres database with a products table.
	DSN string `yaml:"dsn"`
	// URL is another storefront whose /products seeds this one.
	URL string `yaml:"url"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

type CartConfig struct {
	// RateLimit is the number of cart mutations allowed per client IP per
	// minute. Zero disables limiting.
	RateLimit int           `yaml:"rate_limit"`
	NoticeTTL time.Duration `yaml:"notice_ttl"`
}

func Default() *Config {
	return &Config{
		Port:     "8080",
		LogLevel: "info",
		LogFile:  "shop.log",
		Metrics:  MetricsConfig{Enabled: true},
		Cart: CartConfig{
			RateLimit: 120,
			NoticeTTL: 2 * time.Second,
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)
	str("CATALOG_FILE", &c.Catalog.File)
	str("CATALOG_DSN", &c.Catalog.DSN)
	str("CATALOG_URL", &c.Catalog.URL)
	str("METRICS_TOKEN", &c.Metrics.Token)

	if v, ok := lookup("METRICS_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("METRICS_ENABLED: %w", err)
		}
		c.Metrics.Enabled = b
	}
	if v, ok := lookup("CART_RATE_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CART_RATE_LIMIT: %w", err)
		}
		c.Cart.RateLimit = n
	}
	if v, ok := lookup("NOTICE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("NOTICE_TTL: %w", err)
		}
		c.Cart.NoticeTTL = d
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	if c.Cart.RateLimit < 0 {
		errs = append(errs, errors.New("cart rate limit must not be negative"))
	}
	if c.Cart.NoticeTTL <= 0 {
		errs = append(errs, errors.New("notice ttl must be positive"))
	}

	return errors.Join(errs...)
}

// Addr is the listen address for Port.
func (c *Config) Addr() string { return ":" + c.Port }
