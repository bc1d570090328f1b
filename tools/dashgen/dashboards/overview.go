// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/travel-search/tools/dashgen/panels"
)

// BuildOverview constructs the travel-search overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Travel Search Overview").
		Uid("travel-overview").
		Tags([]string{"travel", "travel-search", "amadeus"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.WindowGauge()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.InboundRateLimited()))

	// Row 3: Amadeus API.
	b.WithRow(dashboard.NewRowBuilder("Amadeus API").
		WithPanel(panels.AmadeusRequestRate()).
		WithPanel(panels.AmadeusLatency()).
		WithPanel(panels.AmadeusRetries()).
		WithPanel(panels.WindowRequests()).
		WithPanel(panels.TokenRefreshes()).
		WithPanel(panels.TokenRefreshFailures()))

	// Row 4: Token warm-up.
	b.WithRow(dashboard.NewRowBuilder("Token Warm-up").
		WithPanel(panels.LastWarmup()).
		WithPanel(panels.NextWarmup()).
		WithPanel(panels.WarmupFailures()))

	// Row 5: Search.
	b.WithRow(dashboard.NewRowBuilder("Search").
		WithPanel(panels.SearchRate()).
		WithPanel(panels.SearchDuration()).
		WithPanel(panels.SearchFailures()).
		WithPanel(panels.ResultsPerSearch()).
		WithPanel(panels.ActivityBranchFailures()).
		WithPanel(panels.RecordsRejected()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
