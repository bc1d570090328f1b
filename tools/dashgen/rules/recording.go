package rules

// RecordingRules returns the 5m rate series shared by the dashboard and the
// alerts.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("travel-recording-rules", RuleGroup{
		Name: "travel-recording",
		Rules: []Rule{
			record("travel:http_requests:rate5m", `sum(rate(travel_http_requests_total[5m]))`),
			record("travel:http_errors:rate5m", `sum(rate(travel_http_requests_total{status=~"5.."}[5m]))`),
			record("travel:amadeus_requests:rate5m", `sum(rate(travel_amadeus_requests_total[5m]))`),
			// status is "error" when no response arrived at all.
			record("travel:amadeus_errors:rate5m",
				`sum(rate(travel_amadeus_requests_total{status=~"error|4..|5.."}[5m]))`),
			record("travel:amadeus_retries:rate5m", `sum(rate(travel_amadeus_retries_total[5m])) by (reason)`),
			record("travel:search_requests:rate5m",
				`sum(rate(travel_search_duration_seconds_count[5m])) by (service)`),
			record("travel:search_failures:rate5m", `sum(rate(travel_search_failures_total[5m])) by (service)`),
			record("travel:records_rejected:rate5m", `sum(rate(travel_records_rejected_total[5m])) by (kind)`),
		},
	})
}
