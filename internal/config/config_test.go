package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/travel-search/internal/amadeus"
)

// clearAmadeusEnv blanks the override variables so the host environment
// cannot leak into a test. Empty values are ignored by the loader.
func clearAmadeusEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvClientID, EnvClientSecret, EnvEnvironment} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
amadeus:
  client_id: my-id
  client_secret: my-secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "my-id", cfg.Amadeus.ClientID)
				assert.Equal(t, "my-secret", cfg.Amadeus.ClientSecret)
				assert.Equal(t, EnvironmentTest, cfg.Amadeus.Environment)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
amadeus:
  client_id: my-id
  client_secret: my-secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "https://test.api.amadeus.com", cfg.Amadeus.BaseURL)
				assert.Equal(t, "https://test.api.amadeus.com/v1/security/oauth2/token", cfg.Amadeus.TokenURL)
				assert.Equal(t, 100*time.Millisecond, cfg.Amadeus.MinDelay)
				assert.Equal(t, 3, cfg.Amadeus.MaxAttempts)
				assert.Equal(t, 500*time.Millisecond, cfg.Amadeus.BaseDelay)
				assert.Equal(t, 30*time.Second, cfg.Amadeus.MaxDelay)
				assert.Equal(t, 30*time.Second, cfg.Amadeus.Timeout)
				assert.Equal(t, time.Minute, cfg.Amadeus.RefreshBuffer)
				assert.Equal(t, 30*time.Second, cfg.Search.Timeout)
				assert.Equal(t, 20, cfg.Search.MaxHotelIDs)
				assert.Equal(t, "USD", cfg.Search.DefaultCurrency)
				assert.False(t, cfg.InboundRateLimit.Enabled)
				assert.Equal(t, 5.0, cfg.InboundRateLimit.PerSecond)
				assert.Equal(t, 10, cfg.InboundRateLimit.Burst)
				assert.Equal(t, 15*time.Minute, cfg.Schedule.TokenWarmupInterval)
				assert.False(t, cfg.Telemetry.Enabled)
				assert.Equal(t, "localhost:4317", cfg.Telemetry.Endpoint)
				assert.Equal(t, "travel-search", cfg.Telemetry.ServiceName)
				assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
				assert.Equal(t, time.Minute, cfg.Telemetry.MetricsInterval)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "production environment switches host and delay",
			yaml: `
amadeus:
  environment: Production
  client_id: my-id
  client_secret: my-secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.True(t, cfg.Amadeus.IsProduction())
				assert.Equal(t, "https://api.amadeus.com", cfg.Amadeus.BaseURL)
				assert.Equal(t, "https://api.amadeus.com/v1/security/oauth2/token", cfg.Amadeus.TokenURL)
				assert.Equal(t, 25*time.Millisecond, cfg.Amadeus.MinDelay)
				assert.Equal(t, amadeus.ProductionBaseURL, cfg.Amadeus.BaseURL)
				assert.Equal(t, amadeus.ProductionMinDelay, cfg.Amadeus.MinDelay)
			},
		},
		{
			name: "env var substitution",
			yaml: `
amadeus:
  client_id: my-id
  client_secret: "${TEST_AMADEUS_SECRET}"
`,
			envVars: map[string]string{
				"TEST_AMADEUS_SECRET": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Amadeus.ClientSecret)
			},
		},
		{
			name: "env overrides win over file",
			yaml: `
amadeus:
  environment: test
  client_id: file-id
  client_secret: file-secret
`,
			envVars: map[string]string{
				EnvClientID:     "env-id",
				EnvClientSecret: "env-secret",
				EnvEnvironment:  "production",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "env-id", cfg.Amadeus.ClientID)
				assert.Equal(t, "env-secret", cfg.Amadeus.ClientSecret)
				assert.True(t, cfg.Amadeus.IsProduction())
			},
		},
		{
			name:    "missing credentials",
			yaml:    `server: {port: 8081}`,
			wantErr: "amadeus.client_id is required (or set AMADEUS_CLIENT_ID)",
		},
		{
			name: "missing secret",
			yaml: `
amadeus:
  client_id: my-id
`,
			wantErr: "amadeus.client_secret is required",
		},
		{
			name: "invalid environment",
			yaml: `
amadeus:
  environment: staging
  client_id: my-id
  client_secret: my-secret
`,
			wantErr: `amadeus.environment must be one of: test, production (got "staging")`,
		},
		{
			name: "base delay above max delay",
			yaml: `
amadeus:
  client_id: my-id
  client_secret: my-secret
  base_delay: 1m
  max_delay: 10s
`,
			wantErr: "amadeus.base_delay (1m0s) exceeds amadeus.max_delay (10s)",
		},
		{
			name: "too many hotel ids",
			yaml: `
amadeus:
  client_id: my-id
  client_secret: my-secret
search:
  max_hotel_ids: 50
`,
			wantErr: "search.max_hotel_ids must be between 1 and 20 (got 50)",
		},
		{
			name: "bad log format",
			yaml: `
amadeus:
  client_id: my-id
  client_secret: my-secret
logging:
  format: xml
`,
			wantErr: `logging.format must be one of: text, json (got "xml")`,
		},
		{
			name: "sample ratio out of range",
			yaml: `
amadeus:
  client_id: my-id
  client_secret: my-secret
telemetry:
  sample_ratio: 1.5
`,
			wantErr: "telemetry.sample_ratio must be between 0 and 1 (got 1.5)",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 90s
amadeus:
  environment: test
  client_id: my-id
  client_secret: my-secret
  base_url: http://localhost:9999/
  min_delay: 200ms
  max_attempts: 5
  base_delay: 1s
  max_delay: 20s
  timeout: 10s
  refresh_buffer: 2m
search:
  timeout: 45s
  max_hotel_ids: 10
  default_currency: eur
inbound_rate_limit:
  enabled: true
  per_second: 2.5
  burst: 4
  idle_ttl: 1m
schedule:
  token_warmup_interval: 20m
telemetry:
  enabled: true
  endpoint: otel-collector:4317
  insecure: true
  sample_ratio: 0.25
  metrics_interval: 30s
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "http://localhost:9999", cfg.Amadeus.BaseURL)
				assert.Equal(t, "http://localhost:9999/v1/security/oauth2/token", cfg.Amadeus.TokenURL)
				assert.Equal(t, 200*time.Millisecond, cfg.Amadeus.MinDelay)
				assert.Equal(t, 5, cfg.Amadeus.MaxAttempts)
				assert.Equal(t, time.Second, cfg.Amadeus.BaseDelay)
				assert.Equal(t, 20*time.Second, cfg.Amadeus.MaxDelay)
				assert.Equal(t, 10*time.Second, cfg.Amadeus.Timeout)
				assert.Equal(t, 2*time.Minute, cfg.Amadeus.RefreshBuffer)
				assert.Equal(t, 45*time.Second, cfg.Search.Timeout)
				assert.Equal(t, 10, cfg.Search.MaxHotelIDs)
				assert.Equal(t, "EUR", cfg.Search.DefaultCurrency)
				assert.True(t, cfg.InboundRateLimit.Enabled)
				assert.Equal(t, 2.5, cfg.InboundRateLimit.PerSecond)
				assert.Equal(t, 4, cfg.InboundRateLimit.Burst)
				assert.Equal(t, time.Minute, cfg.InboundRateLimit.IdleTTL)
				assert.Equal(t, 20*time.Minute, cfg.Schedule.TokenWarmupInterval)
				assert.True(t, cfg.Telemetry.Enabled)
				assert.Equal(t, "otel-collector:4317", cfg.Telemetry.Endpoint)
				assert.True(t, cfg.Telemetry.Insecure)
				assert.Equal(t, 0.25, cfg.Telemetry.SampleRatio)
				assert.Equal(t, 30*time.Second, cfg.Telemetry.MetricsInterval)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearAmadeusEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			// Write YAML to a temp file.
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("credentials from env", func(t *testing.T) {
		clearAmadeusEnv(t)
		t.Setenv(EnvClientID, "env-id")
		t.Setenv(EnvClientSecret, "env-secret")

		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "env-id", cfg.Amadeus.ClientID)
		assert.Equal(t, EnvironmentTest, cfg.Amadeus.Environment)
		assert.Equal(t, 100*time.Millisecond, cfg.Amadeus.MinDelay)
	})

	t.Run("missing credentials", func(t *testing.T) {
		clearAmadeusEnv(t)

		_, err := LoadFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amadeus.client_id is required")
		assert.Contains(t, err.Error(), "amadeus.client_secret is required")
	})
}
