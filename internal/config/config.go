// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/travel-search/internal/amadeus"
)

// Amadeus environments.
const (
	EnvironmentTest       = amadeus.EnvironmentTest
	EnvironmentProduction = amadeus.EnvironmentProduction
)

// Environment variables that override file values for credentials and
// environment selection.
const (
	EnvClientID     = "AMADEUS_CLIENT_ID"
	EnvClientSecret = "AMADEUS_CLIENT_SECRET"
	EnvEnvironment  = "AMADEUS_ENV"
)

// Config is the top-level application configuration.
type Config struct {
	Server           ServerConfig           `yaml:"server"`
	Amadeus          AmadeusConfig          `yaml:"amadeus"`
	Search           SearchConfig           `yaml:"search"`
	InboundRateLimit InboundRateLimitConfig `yaml:"inbound_rate_limit"`
	Schedule         ScheduleConfig         `yaml:"schedule"`
	Telemetry        TelemetryConfig        `yaml:"telemetry"`
	Logging          LoggingConfig          `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AmadeusConfig defines provider credentials and request pipeline settings.
type AmadeusConfig struct {
	Environment   string        `yaml:"environment"` // test, production
	ClientID      string        `yaml:"client_id"`
	ClientSecret  string        `yaml:"client_secret"`
	BaseURL       string        `yaml:"base_url"`
	TokenURL      string        `yaml:"token_url"`
	MinDelay      time.Duration `yaml:"min_delay"`
	MaxAttempts   int           `yaml:"max_attempts"`
	BaseDelay     time.Duration `yaml:"base_delay"`
	MaxDelay      time.Duration `yaml:"max_delay"`
	Timeout       time.Duration `yaml:"timeout"`
	RefreshBuffer time.Duration `yaml:"refresh_buffer"`
}

// IsProduction reports whether the production host and quota apply.
func (a *AmadeusConfig) IsProduction() bool {
	return a.Environment == EnvironmentProduction
}

// SearchConfig defines search service settings.
type SearchConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	MaxHotelIDs     int           `yaml:"max_hotel_ids"`
	DefaultCurrency string        `yaml:"default_currency"`
}

// InboundRateLimitConfig defines the per-client limit on the HTTP API.
type InboundRateLimitConfig struct {
	Enabled   bool          `yaml:"enabled"`
	PerSecond float64       `yaml:"per_second"`
	Burst     int           `yaml:"burst"`
	IdleTTL   time.Duration `yaml:"idle_ttl"`
}

// ScheduleConfig defines cron intervals.
type ScheduleConfig struct {
	TokenWarmupInterval time.Duration `yaml:"token_warmup_interval"`
}

// TelemetryConfig defines OpenTelemetry export over OTLP/gRPC.
type TelemetryConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Endpoint        string        `yaml:"endpoint"` // host:port of the collector
	Insecure        bool          `yaml:"insecure"`
	ServiceName     string        `yaml:"service_name"`
	SampleRatio     float64       `yaml:"sample_ratio"`
	MetricsInterval time.Duration `yaml:"metrics_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	return finalize(cfg)
}

// LoadFromEnv builds a configuration from defaults and the AMADEUS_*
// environment variables alone.
func LoadFromEnv() (*Config, error) {
	return finalize(&Config{})
}

func finalize(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvClientID); v != "" {
		cfg.Amadeus.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		cfg.Amadeus.ClientSecret = v
	}
	if v := os.Getenv(EnvEnvironment); v != "" {
		cfg.Amadeus.Environment = v
	}
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyAmadeusDefaults(&cfg.Amadeus)
	applySearchDefaults(&cfg.Search)
	applyInboundRateLimitDefaults(&cfg.InboundRateLimit)
	applyScheduleDefaults(&cfg.Schedule)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
}

func applyAmadeusDefaults(a *AmadeusConfig) {
	a.Environment = strings.ToLower(strings.TrimSpace(a.Environment))
	if a.Environment == "" {
		a.Environment = EnvironmentTest
	}
	if a.BaseURL == "" {
		a.BaseURL = amadeus.BaseURLForEnvironment(a.Environment)
	}
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
	if a.TokenURL == "" {
		a.TokenURL = amadeus.TokenURLFor(a.BaseURL)
	}
	if a.MinDelay == 0 {
		a.MinDelay = amadeus.MinDelayForEnvironment(a.Environment)
	}
	if a.MaxAttempts == 0 {
		a.MaxAttempts = 3
	}
	if a.BaseDelay == 0 {
		a.BaseDelay = 500 * time.Millisecond
	}
	if a.MaxDelay == 0 {
		a.MaxDelay = 30 * time.Second
	}
	if a.Timeout == 0 {
		a.Timeout = 30 * time.Second
	}
	if a.RefreshBuffer == 0 {
		a.RefreshBuffer = 60 * time.Second
	}
}

func applySearchDefaults(s *SearchConfig) {
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.MaxHotelIDs == 0 {
		s.MaxHotelIDs = 20
	}
	if s.DefaultCurrency == "" {
		s.DefaultCurrency = "USD"
	}
	s.DefaultCurrency = strings.ToUpper(s.DefaultCurrency)
}

func applyInboundRateLimitDefaults(r *InboundRateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.IdleTTL == 0 {
		r.IdleTTL = 10 * time.Minute
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.TokenWarmupInterval == 0 {
		s.TokenWarmupInterval = 15 * time.Minute
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "travel-search"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
	if t.MetricsInterval == 0 {
		t.MetricsInterval = time.Minute
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	a := &cfg.Amadeus
	switch a.Environment {
	case EnvironmentTest, EnvironmentProduction:
	default:
		errs = append(
			errs,
			fmt.Errorf("amadeus.environment must be one of: test, production (got %q)", a.Environment),
		)
	}
	if a.ClientID == "" {
		errs = append(errs, fmt.Errorf("amadeus.client_id is required (or set %s)", EnvClientID))
	}
	if a.ClientSecret == "" {
		errs = append(errs, fmt.Errorf("amadeus.client_secret is required (or set %s)", EnvClientSecret))
	}
	if a.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("amadeus.max_attempts must be at least 1 (got %d)", a.MaxAttempts))
	}
	if a.BaseDelay > a.MaxDelay {
		errs = append(errs, fmt.Errorf("amadeus.base_delay (%s) exceeds amadeus.max_delay (%s)", a.BaseDelay, a.MaxDelay))
	}
	if a.MinDelay < 0 {
		errs = append(errs, fmt.Errorf("amadeus.min_delay cannot be negative"))
	}

	if cfg.Search.MaxHotelIDs < 1 || cfg.Search.MaxHotelIDs > 20 {
		errs = append(
			errs,
			fmt.Errorf("search.max_hotel_ids must be between 1 and 20 (got %d)", cfg.Search.MaxHotelIDs),
		)
	}
	if len(cfg.Search.DefaultCurrency) != 3 {
		errs = append(
			errs,
			fmt.Errorf("search.default_currency must be a 3-letter code (got %q)", cfg.Search.DefaultCurrency),
		)
	}

	if cfg.InboundRateLimit.PerSecond < 0 || cfg.InboundRateLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("inbound_rate_limit values cannot be negative"))
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(
			errs,
			fmt.Errorf("telemetry.sample_ratio must be between 0 and 1 (got %g)", cfg.Telemetry.SampleRatio),
		)
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}
