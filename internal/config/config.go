// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the host configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Project types the host can run as.
const (
	ProjectLMS = "lms" // learning: students see the course
	ProjectCMS = "cms" // authoring: course teams build the course
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"PAYLINK_DB_PATH" envDefault:"./data/paylink.db"`
	ServerHost string `env:"PAYLINK_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PAYLINK_SERVER_PORT" envDefault:"8000"`
	Env        string `env:"PAYLINK_ENV" envDefault:"development"`
	LogLevel   string `env:"PAYLINK_LOG_LEVEL" envDefault:"info"`
	Project    string `env:"PAYLINK_PROJECT" envDefault:"lms"`

	// Commerce configuration
	EcommerceURL        string `env:"PAYLINK_ECOMMERCE_URL"`                               // Public ecommerce base URL; empty keeps payment URLs relative
	EcommerceBasketPath string `env:"PAYLINK_ECOMMERCE_BASKET_PATH" envDefault:"/basket/add/"` // Basket endpoint receiving ?sku=

	// Cache configuration
	RedisURL     string `env:"PAYLINK_REDIS_URL"`                           // Optional Redis URL for distributed caching
	CachePrefix  string `env:"PAYLINK_CACHE_PREFIX" envDefault:"paylink:"`  // Redis key prefix
	CacheTTL     int    `env:"PAYLINK_CACHE_TTL" envDefault:"300"`          // Course data cache TTL in seconds
	CacheMaxSize int    `env:"PAYLINK_CACHE_MAX_SIZE" envDefault:"10000"`   // Max memory cache entries

	// SubmitRateLimit is studio_submit requests per second per client.
	SubmitRateLimit float64 `env:"PAYLINK_SUBMIT_RATE_LIMIT" envDefault:"2"`

	// Seeding configuration
	DoSeed bool `env:"PAYLINK_DO_SEED" envDefault:"false"` // Seed the workbench demo course
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsStudio returns true if the host runs as the authoring tool.
func (c Config) IsStudio() bool {
	return c.Project == ProjectCMS
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	c.Project = strings.ToLower(strings.TrimSpace(c.Project))
	if c.Project != ProjectLMS && c.Project != ProjectCMS {
		return fmt.Errorf("PAYLINK_PROJECT must be %q or %q, got %q", ProjectLMS, ProjectCMS, c.Project)
	}

	if c.EcommerceURL != "" {
		u, err := url.Parse(c.EcommerceURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("PAYLINK_ECOMMERCE_URL must be an absolute URL, got %q", c.EcommerceURL)
		}
		c.EcommerceURL = strings.TrimRight(c.EcommerceURL, "/")
	}

	if !strings.HasPrefix(c.EcommerceBasketPath, "/") {
		c.EcommerceBasketPath = "/" + c.EcommerceBasketPath
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("PAYLINK_CACHE_TTL must be positive, got %d", c.CacheTTL)
	}
	if c.SubmitRateLimit <= 0 {
		return fmt.Errorf("PAYLINK_SUBMIT_RATE_LIMIT must be positive, got %v", c.SubmitRateLimit)
	}
	return nil
}
