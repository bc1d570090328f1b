package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func warmupStat(title, description, expr string) *stat.PanelBuilder {
	return Single(title, description, expr, StatHeight).
		ColorMode(common.BigValueColorModeBackground)
}

// LastWarmup shows time since the last successful token warm-up.
func LastWarmup() *stat.PanelBuilder {
	return warmupStat("Last Token Warm-up", "Time since the last successful scheduled token warm-up",
		"time() - "+Sel("travel_token_warmup_last_success_timestamp")).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(1800, 3600)).
		GraphMode(common.BigValueGraphModeNone)
}

// NextWarmup shows time until the next scheduled token warm-up.
func NextWarmup() *stat.PanelBuilder {
	return warmupStat("Next Token Warm-up", "Time until the next scheduled token warm-up",
		Sel("travel_token_warmup_next_timestamp")+" - time()").
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		GraphMode(common.BigValueGraphModeNone)
}

// WarmupFailures shows failed warm-ups over the last day.
func WarmupFailures() *stat.PanelBuilder {
	return warmupStat("Warm-up Failures (24h)", "Scheduled token warm-ups that failed in the last 24 hours",
		"increase("+Sel("travel_token_warmup_failures_total")+"[24h])").
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		GraphMode(common.BigValueGraphModeArea)
}
