package rules

var alerts = []alert{
	{
		name:        "TravelSearchDown",
		expr:        `absent(up{job="travel-search"})`,
		forDur:      "2m",
		severity:    "critical",
		summary:     "Travel search API is down",
		description: "The travel-search job has been absent for more than 2 minutes.",
	},
	{
		name:        "TravelSearchReadinessDown",
		expr:        `travel_readyz_up == 0`,
		forDur:      "2m",
		severity:    "critical",
		summary:     "Travel search cannot obtain an Amadeus token",
		description: "The readiness probe has been failing to acquire an access token for more than 2 minutes.",
	},
	{
		name:        "TravelSearchHighErrorRate",
		expr:        `travel:http_errors:rate5m / travel:http_requests:rate5m > 0.05`,
		forDur:      "5m",
		severity:    "warning",
		summary:     "High HTTP error rate on travel-search",
		description: "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
	},
	{
		name:        "TravelSearchAmadeusErrors",
		expr:        `travel:amadeus_errors:rate5m / travel:amadeus_requests:rate5m > 0.1`,
		forDur:      "5m",
		severity:    "warning",
		summary:     "Amadeus API error rate is elevated",
		description: "More than 10% of outbound Amadeus attempts have failed over the last 5 minutes.",
	},
	{
		name:     "TravelSearchAmadeusThrottled",
		expr:     `sum(travel:amadeus_retries:rate5m{reason="rate_limited"}) > 0.5`,
		forDur:   "5m",
		severity: "warning",
		summary:  "Amadeus is throttling requests",
		description: "Requests are being retried after 429 responses at more than 0.5/s. " +
			"Check the configured minimum delay.",
	},
	{
		name:        "TravelSearchSearchFailures",
		expr:        `sum(travel:search_failures:rate5m) / sum(travel:search_requests:rate5m) > 0.2`,
		forDur:      "10m",
		severity:    "warning",
		summary:     "Search failure rate is elevated",
		description: "More than 20% of searches have answered with success=false for 10 minutes.",
	},
	{
		name:     "TravelSearchTokenWarmupFailing",
		expr:     `increase(travel_token_warmup_failures_total[30m]) >= 2`,
		forDur:   "0m",
		severity: "warning",
		summary:  "Scheduled token warm-ups are failing",
		description: "Two or more scheduled token warm-ups failed in the last 30 minutes. " +
			"Check Amadeus credentials.",
	},
}

// AlertRules returns the operational alerts for travel-search.
func AlertRules() PrometheusRule {
	group := RuleGroup{Name: "travel-alerts", Rules: make([]Rule, 0, len(alerts))}
	for _, a := range alerts {
		group.Rules = append(group.Rules, a.rule())
	}
	return newPrometheusRule("travel-alerts", group)
}
