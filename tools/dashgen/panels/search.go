package panels

import "github.com/grafana/grafana-foundation-sdk/go/timeseries"

// SearchRate shows completed searches per second by service.
func SearchRate() *timeseries.PanelBuilder {
	return Series("Searches / s", "Completed flight, hotel and activity searches per second", ThirdWidth).
		WithTarget(PromQuery(`travel:search_requests:rate5m`, "{{service}}", "A")).
		Unit("reqps").
		Tooltip(MultiTooltip())
}

// SearchDuration shows p95 end-to-end search duration by service.
func SearchDuration() *timeseries.PanelBuilder {
	return Series("Search Duration (p95)", "95th percentile end-to-end search duration by service", ThirdWidth).
		WithTarget(PromQuery(Quantile(0.95, "travel_search_duration_seconds", "service"), "{{service}}", "A")).
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// SearchFailures shows the share of searches answered with success=false.
func SearchFailures() *timeseries.PanelBuilder {
	return Series("Search Failure %", "Searches answered with success=false as percentage of all searches", ThirdWidth).
		WithTarget(PromQuery(
			`travel:search_failures:rate5m / travel:search_requests:rate5m * 100`,
			"{{service}}", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(5, 20)).
		ColorScheme(ColorSchemeThresholds())
}

// ResultsPerSearch shows the average result count per search.
func ResultsPerSearch() *timeseries.PanelBuilder {
	return Series("Results / Search", "Average results returned per search by service", ThirdWidth).
		WithTarget(PromQuery(
			"sum(rate("+Sel("travel_search_results_total")+"[5m])) by (service) / travel:search_requests:rate5m",
			"{{service}}", "A",
		))
}

// ActivityBranchFailures shows which activity branch failed while the other
// still answered.
func ActivityBranchFailures() *timeseries.PanelBuilder {
	return Series("Activity Branch Failures / min", "Points-of-interest and tours branch failures per minute", ThirdWidth).
		WithTarget(PromQuery(PerMinute("travel_activity_branch_failures_total", "branch"), "{{branch}}", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5))
}

// RecordsRejected shows provider records dropped for missing required
// fields.
func RecordsRejected() *timeseries.PanelBuilder {
	return Series("Records Rejected / min", "Provider records dropped during normalization by kind", ThirdWidth).
		WithTarget(PromQuery(`travel:records_rejected:rate5m * 60`, "{{kind}}", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10))
}
