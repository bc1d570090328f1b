package main

import "errors"

// KnownMetrics is the set of metric names exported by travel-search plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"travel_http_request_duration_seconds": true,
	"travel_http_requests_total":           true,
	"travel_inbound_rate_limited_total":    true,

	// Health metrics.
	"travel_healthz_up": true,
	"travel_readyz_up":  true,

	// Token warm-up metrics.
	"travel_token_warmup_last_success_timestamp": true,
	"travel_token_warmup_next_timestamp":         true,
	"travel_token_warmup_failures_total":         true,

	// Amadeus API metrics.
	"travel_amadeus_requests_total":           true,
	"travel_amadeus_request_duration_seconds": true,
	"travel_amadeus_retries_total":            true,
	"travel_amadeus_token_refreshes_total":    true,
	"travel_amadeus_window_requests":          true,

	// Search metrics.
	"travel_search_duration_seconds":        true,
	"travel_search_results_total":           true,
	"travel_search_failures_total":          true,
	"travel_activity_branch_failures_total": true,
	"travel_records_rejected_total":         true,

	// Recording rules.
	"travel:http_requests:rate5m":    true,
	"travel:http_errors:rate5m":      true,
	"travel:amadeus_requests:rate5m": true,
	"travel:amadeus_errors:rate5m":   true,
	"travel:amadeus_retries:rate5m":  true,
	"travel:search_requests:rate5m":  true,
	"travel:search_failures:rate5m":  true,
	"travel:records_rejected:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
