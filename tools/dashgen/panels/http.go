package panels

import "github.com/grafana/grafana-foundation-sdk/go/timeseries"

const httpDuration = "travel_http_request_duration_seconds"

// RequestRate shows inbound API requests per second.
func RequestRate() *timeseries.PanelBuilder {
	return Series("Request Rate", "HTTP requests per second", ThirdWidth).
		WithTarget(PromQuery(`travel:http_requests:rate5m`, "req/s", "A")).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// LatencyPercentiles shows p50, p95 and p99 inbound request latency.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return Series("Latency Percentiles", "HTTP request duration percentiles", ThirdWidth).
		WithTarget(PromQuery(Quantile(0.50, httpDuration), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, httpDuration), "p95", "B")).
		WithTarget(PromQuery(Quantile(0.99, httpDuration), "p99", "C")).
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// ErrorRate shows 5xx responses as a percentage of all requests.
func ErrorRate() *timeseries.PanelBuilder {
	return Series("Error Rate %", "HTTP 5xx error rate as percentage of total requests", ThirdWidth).
		WithTarget(PromQuery(
			`travel:http_errors:rate5m / travel:http_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}

// InboundRateLimited shows API requests rejected by the per-client limit.
func InboundRateLimited() *timeseries.PanelBuilder {
	return Series("Rate Limited / min", "API requests rejected with 429 by the per-client limit", FullWidth).
		WithTarget(PromQuery(PerMinute("travel_inbound_rate_limited_total"), "rejected/min", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds())
}
