package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func probe(title, description, metric string) *stat.PanelBuilder {
	return Single(title, description, metric, StatHeight).
		Thresholds(ThresholdsRedGreen(1)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// HealthzStat shows the liveness probe (1 = ok, 0 = failing).
func HealthzStat() *stat.PanelBuilder {
	return probe("Healthz", "Health check status (1 = ok, 0 = failing)", "travel_healthz_up")
}

// ReadyzStat shows the readiness probe, which needs a usable Amadeus token.
func ReadyzStat() *stat.PanelBuilder {
	return probe("Readyz", "Readiness check status (1 = token available, 0 = not ready)", "travel_readyz_up")
}

// WindowGauge shows requests in the current one-second window as a
// percentage of the test quota.
func WindowGauge() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("Amadeus Window %").
		Description("Requests in the current one-second window relative to the test quota").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			fmt.Sprintf("max(%s) / %d * 100", Sel("travel_amadeus_window_requests"), AmadeusTestTPS),
			"", "A",
		)).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsGreenYellowRed(80, 95)).
		ColorScheme(ColorSchemeThresholds())
}

// UptimeStat shows time since process start.
func UptimeStat() *stat.PanelBuilder {
	return Single("Uptime", "Time since process start", "time() - "+Sel("process_start_time_seconds"), StatHeight).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		GraphMode(common.BigValueGraphModeNone)
}
