package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// AmadeusRequestRate shows outbound Amadeus attempts per second, total and
// failed.
func AmadeusRequestRate() *timeseries.PanelBuilder {
	return Series("Amadeus Requests", "Outbound Amadeus API attempts per second", ThirdWidth).
		WithTarget(PromQuery(`travel:amadeus_requests:rate5m`, "attempts/s", "A")).
		WithTarget(PromQuery(`travel:amadeus_errors:rate5m`, "errors/s", "B")).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// AmadeusLatency shows p95 logical request duration per endpoint. A logical
// request spans all of its retries.
func AmadeusLatency() *timeseries.PanelBuilder {
	return Series("Amadeus Latency (p95)",
		"95th percentile logical request duration by endpoint, including retries", ThirdWidth).
		WithTarget(PromQuery(
			Quantile(0.95, "travel_amadeus_request_duration_seconds", "endpoint"),
			"{{endpoint}}", "A",
		)).
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// AmadeusRetries shows retries per minute by reason.
func AmadeusRetries() *timeseries.PanelBuilder {
	return Series("Retries / min", "Amadeus request retries per minute by reason", ThirdWidth).
		WithTarget(PromQuery(PerMinute("travel_amadeus_retries_total", "reason"), "{{reason}}", "A")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(1, 10))
}

// WindowRequests tracks the one-second window counter against both
// environment quotas.
func WindowRequests() *timeseries.PanelBuilder {
	desc := fmt.Sprintf(
		"Requests in the current one-second window (test quota: %d, production quota: %d)",
		AmadeusTestTPS, AmadeusProductionTPS,
	)
	return Series("Window Requests", desc, TSWidth).
		WithTarget(PromQuery("max("+Sel("travel_amadeus_window_requests")+")", "requests", "A")).
		Thresholds(ThresholdsGreenYellowRed(AmadeusTestTPS, AmadeusProductionTPS)).
		ColorScheme(ColorSchemeThresholds())
}

func tokenExchanges(result string) string {
	return fmt.Sprintf("sum(increase(%s[24h]))",
		Sel("travel_amadeus_token_refreshes_total", fmt.Sprintf("result=%q", result)))
}

// TokenRefreshes shows successful OAuth2 exchanges over the last day.
func TokenRefreshes() *stat.PanelBuilder {
	return Single("Token Refreshes (24h)",
		"OAuth2 client-credentials exchanges in the last 24 hours", tokenExchanges("success"), TSHeight).
		Thresholds(ThresholdsGreenOnly()).
		GraphMode(common.BigValueGraphModeArea)
}

// TokenRefreshFailures shows failed OAuth2 exchanges over the last day.
func TokenRefreshFailures() *stat.PanelBuilder {
	return Single("Token Failures (24h)",
		"Failed OAuth2 exchanges in the last 24 hours", tokenExchanges("error"), TSHeight).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
