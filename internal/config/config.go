// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Places    PlacesConfig    `koanf:"places"`
	Oracle    OracleConfig    `koanf:"oracle"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// PlacesConfig holds places provider connection settings.
type PlacesConfig struct {
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
	// RequestsPerSecond paces outbound calls below the provider quota.
	// Zero disables pacing.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	// CircuitBreaker wraps the provider client in a circuit breaker.
	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// OracleConfig holds LLM rerank settings. The oracle is strictly optional;
// when disabled the engine serves rule-based rankings only.
type OracleConfig struct {
	Enabled bool          `koanf:"enabled"`
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
}

// RecommendConfig tunes the recommendation pipeline.
type RecommendConfig struct {
	// MaxConcurrent bounds simultaneously processed recommendation
	// requests; excess requests queue.
	MaxConcurrent int `koanf:"max_concurrent"`
	// SmartCenter enables grid-based meeting point optimization by
	// default for every request.
	SmartCenter bool `koanf:"smart_center"`
}

// SecurityConfig holds API protection settings.
type SecurityConfig struct {
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Places: PlacesConfig{
			BaseURL:           "https://restapi.amap.com",
			APIKey:            "",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 0, // provider default quota is generous enough
			CircuitBreaker:    true,
		},
		Oracle: OracleConfig{
			Enabled: false, // opt-in only; rule ranking needs no LLM
			BaseURL: "",
			APIKey:  "",
			Model:   "",
			Timeout: 8 * time.Second,
		},
		Recommend: RecommendConfig{
			MaxConcurrent: 3,
			SmartCenter:   false,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: 1 * time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks cross-field constraints that koanf cannot express.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Places.APIKey == "" {
		return fmt.Errorf("places.api_key is required (set PLACES_API_KEY)")
	}
	if c.Places.BaseURL == "" {
		return fmt.Errorf("places.base_url is required")
	}
	if c.Recommend.MaxConcurrent < 1 {
		return fmt.Errorf("recommend.max_concurrent must be at least 1, got %d", c.Recommend.MaxConcurrent)
	}
	if c.Oracle.Enabled {
		if c.Oracle.BaseURL == "" {
			return fmt.Errorf("oracle.base_url is required when the oracle is enabled")
		}
		if c.Oracle.Model == "" {
			return fmt.Errorf("oracle.model is required when the oracle is enabled")
		}
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("security.rate_limit_reqs must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	return nil
}
